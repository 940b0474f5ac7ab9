package spec

import (
	"strings"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/apperr"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/stratum"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/task"
)

const DefaultOutdir = "."

// Validate checks the job before any file is read. Option combinations that
// cannot be honoured are ConfigErrors; malformed values are ValidationErrors.
func (j Job) Validate() error {
	if j.Ref == "" {
		return apperr.NewValidation("missing reference file")
	}
	if j.Pred == "" {
		return apperr.NewValidation("missing prediction file")
	}
	t, err := task.Parse(j.Task)
	if err != nil {
		return apperr.NewValidationWrap("invalid task", err)
	}

	nBest := strings.TrimSpace(j.NBest) != ""
	if !t.IsNEL() && (j.Union || nBest) {
		return apperr.NewConfig("Alternative annotations are only allowed for the NEL evaluation.")
	}
	if j.Union && nBest {
		return apperr.NewConfig("Restrict to a single evaluation schema for NEL, " +
			"either a ranked n-best list or the union of the metonymic and literal column.")
	}

	_, err = j.Plan()
	return err
}

// Plan parses the stratification axes of the job.
func (j Job) Plan() (stratum.Plan, error) {
	t, err := task.Parse(j.Task)
	if err != nil {
		return stratum.Plan{}, apperr.NewValidationWrap("invalid task", err)
	}
	return stratum.NewPlan(t, stratum.Request{
		NoiseLevels: j.NoiseLevel,
		TimePeriods: j.TimePeriod,
		NBest:       j.NBest,
		Union:       j.Union,
	})
}

func (j Job) OutputDir() string {
	if j.Outdir == "" {
		return DefaultOutdir
	}
	return j.Outdir
}
