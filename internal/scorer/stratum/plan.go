package stratum

import (
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/task"
)

// Plan holds the parsed values of each axis. Noise and Periods always start
// with the unfiltered nil entry.
type Plan struct {
	Task    task.Task
	Noise   []*NoiseBand
	Periods []*Period
	// Cutoffs is only used by NEL tasks.
	Cutoffs []int
	Union   bool

	explicitCutoffs bool
}

// Request is the raw, user-facing form of the stratification axes.
type Request struct {
	NoiseLevels string
	TimePeriods string
	NBest       string
	Union       bool
}

// NewPlan parses every axis before anything is evaluated, so a malformed
// spec fails without a partial set of strata.
func NewPlan(t task.Task, req Request) (Plan, error) {
	noise, err := ParseNoiseLevels(req.NoiseLevels)
	if err != nil {
		return Plan{}, err
	}
	periods, err := ParseTimePeriods(req.TimePeriods)
	if err != nil {
		return Plan{}, err
	}

	p := Plan{
		Task:    t,
		Noise:   noise,
		Periods: periods,
		Union:   req.Union && t.IsNEL(),
	}

	if t.IsNEL() {
		p.Cutoffs, err = ParseCutoffs(req.NBest)
		if err != nil {
			return Plan{}, err
		}
		p.explicitCutoffs = strings.TrimSpace(req.NBest) != ""
	}

	return p, nil
}

// All yields the Cartesian product of the axes. NERC: noise x time.
// NEL: cutoff x noise x time.
func (p Plan) All() iter.Seq[Stratum] {
	return func(yield func(Stratum) bool) {
		cutoffs := p.Cutoffs
		if !p.Task.IsNEL() || len(cutoffs) == 0 {
			cutoffs = []int{0}
		}
		for _, n := range cutoffs {
			for _, noise := range p.Noise {
				for _, period := range p.Periods {
					s := Stratum{Noise: noise, Period: period, Cutoff: n, Union: p.Union}
					if !yield(s) {
						return
					}
				}
			}
		}
	}
}

func (p Plan) Strata() []Stratum {
	return slices.Collect(p.All())
}

// FileSuffix names the output files after the requested stratification and
// the user suffix. It is empty when neither was given.
func (p Plan) FileSuffix(userSuffix string) string {
	var parts []string
	if userSuffix != "" {
		parts = append(parts, userSuffix)
	}
	if p.Union {
		parts = append(parts, UnionPrefix)
	}
	for _, b := range p.Noise {
		if b != nil {
			parts = append(parts, b.Label())
		}
	}
	for _, period := range p.Periods {
		if period != nil {
			parts = append(parts, period.Label())
		}
	}
	if p.explicitCutoffs {
		for _, n := range p.Cutoffs {
			parts = append(parts, fmt.Sprintf("@%d", n))
		}
	}
	return strings.Join(parts, "-")
}
