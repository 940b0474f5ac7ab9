// Package task names the evaluation tasks and the annotation columns each
// of them scores.
package task

import (
	"fmt"
	"strings"
)

type Task string

const (
	NERCCoarse Task = "nerc_coarse"
	NERCFine   Task = "nerc_fine"
	NEL        Task = "nel"
)

var All = []Task{NERCCoarse, NERCFine, NEL}

// EvalType is what the matcher is asked to compare: entity classes or links.
type EvalType string

const (
	EvalNERC EvalType = "nerc"
	EvalNEL  EvalType = "nel"
)

const (
	ColCoarseLit  = "NE-COARSE-LIT"
	ColCoarseMeto = "NE-COARSE-METO"
	ColFineLit    = "NE-FINE-LIT"
	ColFineMeto   = "NE-FINE-METO"
	ColFineComp   = "NE-FINE-COMP"
	ColNested     = "NE-NESTED"
	ColNELLit     = "NEL-LIT"
	ColNELMeto    = "NEL-METO"
)

func Parse(s string) (Task, error) {
	t := Task(strings.ToLower(strings.TrimSpace(s)))
	switch t {
	case NERCCoarse, NERCFine, NEL:
		return t, nil
	default:
		return "", fmt.Errorf("unknown task %q, expected one of %v", s, All)
	}
}

func (t Task) IsNEL() bool { return t == NEL }

func (t Task) EvalType() EvalType {
	if t == NEL {
		return EvalNEL
	}
	return EvalNERC
}

// Columns returns the annotation columns scored independently for the task.
func (t Task) Columns() []string {
	switch t {
	case NERCCoarse:
		return []string{ColCoarseLit, ColCoarseMeto}
	case NERCFine:
		return []string{ColFineLit, ColFineMeto, ColFineComp, ColNested}
	case NEL:
		return []string{ColNELLit, ColNELMeto}
	default:
		return nil
	}
}
