package evaluator

import (
	"strings"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/task"
)

// Column is an annotation column, or a group of columns evaluated in
// lock-step under one name.
type Column struct {
	Name    string
	Members []string
}

func Single(name string) Column {
	return Column{Name: name, Members: []string{name}}
}

func Group(members ...string) Column {
	return Column{Name: strings.Join(members, "+"), Members: members}
}

// ColumnsFor returns the columns scored for a task. In union mode the two
// link columns form one group.
func ColumnsFor(t task.Task, union bool) []Column {
	if t.IsNEL() && union {
		return []Column{Group(task.ColNELLit, task.ColNELMeto)}
	}
	names := t.Columns()
	cols := make([]Column, len(names))
	for i, n := range names {
		cols[i] = Single(n)
	}
	return cols
}
