package runner

import (
	"time"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/metrics"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/report"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/task"
)

// StratumResult is the outcome of one stratum: the rows it contributed and
// the bundle they were assembled from.
type StratumResult struct {
	Label  string
	Rows   []report.Row
	Bundle metrics.Bundle
}

// JobResult is everything one job produced.
type JobResult struct {
	JobName  string
	System   string
	Task     task.Task
	Paths    report.Paths
	Rows     []report.Row
	Strata   []StratumResult
	Started  time.Time
	Duration time.Duration
}

// Last returns the bundle of the final stratum, the one serialized to JSON.
func (jr *JobResult) Last() metrics.Bundle {
	if len(jr.Strata) == 0 {
		return nil
	}
	return jr.Strata[len(jr.Strata)-1].Bundle
}
