package runner

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/evaluator"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/metrics"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/report"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/spec"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/stratum"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/task"
)

// MatcherFactory opens the matcher for a gold/prediction pair.
type MatcherFactory func(ref, pred, glueingCols string) (evaluator.Matcher, error)

type Runner struct {
	config Config
	open   MatcherFactory
	logger *slog.Logger
}

func New(cfg Config, open MatcherFactory, logger *slog.Logger) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{config: cfg, open: open, logger: logger}
}

// RunAll runs the jobs in order and stops at the first failure.
func (r *Runner) RunAll(ctx context.Context, rs *spec.RunSpec) ([]*JobResult, error) {
	results := make([]*JobResult, 0, len(rs.Jobs))
	for _, job := range rs.Jobs {
		jr, err := r.RunJob(ctx, job)
		if err != nil {
			return results, fmt.Errorf("run job %q: %w", job.Name, err)
		}
		results = append(results, jr)
	}
	return results, nil
}

// RunJob validates the job, evaluates every stratum and writes the TSV and
// JSON reports. All option errors surface before the matcher is opened.
func (r *Runner) RunJob(ctx context.Context, job spec.Job) (*JobResult, error) {
	started := time.Now()

	if err := job.Validate(); err != nil {
		return nil, err
	}
	plan, err := job.Plan()
	if err != nil {
		return nil, err
	}
	system, err := job.SystemName()
	if err != nil {
		return nil, err
	}

	var tags evaluator.Tagset
	if job.Tagset != "" {
		if tags, err = evaluator.LoadTagset(job.Tagset); err != nil {
			return nil, err
		}
	}

	m, err := r.open(job.Ref, job.Pred, job.GlueingCols)
	if err != nil {
		return nil, fmt.Errorf("open evaluation: %w", err)
	}

	r.logger.Info("evaluation started",
		"job", job.Name,
		"system", system,
		"task", plan.Task,
		"strata", len(plan.Strata()),
	)

	strata, err := r.Evaluate(ctx, m, Input{System: system, Plan: plan, Suffix: job.Suffix, Tags: tags})
	if err != nil {
		return nil, err
	}

	jr := &JobResult{
		JobName: job.Name,
		System:  system,
		Task:    plan.Task,
		Strata:  strata,
		Started: started,
	}
	for _, s := range strata {
		jr.Rows = append(jr.Rows, s.Rows...)
	}

	outdir := job.OutputDir()
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	jr.Paths = report.OutputPaths(job.Pred, outdir, string(plan.Task), plan.FileSuffix(job.Suffix))
	if err := report.Write(jr.Rows, jr.Last(), jr.Paths); err != nil {
		return nil, err
	}
	jr.Duration = time.Since(started)

	r.logger.Info("evaluation finished",
		"job", job.Name,
		"rows", len(jr.Rows),
		"tsv", jr.Paths.TSV,
		"json", jr.Paths.JSON,
		"duration", jr.Duration,
	)
	return jr, nil
}

// Input is one prediction file's stratified evaluation.
type Input struct {
	System string
	Plan   stratum.Plan
	Suffix string
	// Tags applies to NERC only.
	Tags evaluator.Tagset
}

// Evaluate invokes the matcher for every stratum of the plan and assembles
// the rows. Strata may run concurrently; results keep enumeration order and
// any failure aborts the whole evaluation.
func (r *Runner) Evaluate(ctx context.Context, m evaluator.Matcher, in Input) ([]StratumResult, error) {
	strata := in.Plan.Strata()
	cols := evaluator.ColumnsFor(in.Plan.Task, in.Plan.Union)
	evalType := in.Plan.Task.EvalType()
	inv := evaluator.NewInvoker(m, r.logger)

	tags := in.Tags
	if in.Plan.Task.IsNEL() {
		tags = nil
	}

	bundles := make([]metrics.Bundle, len(strata))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.config.Workers)
	for i, s := range strata {
		g.Go(func() error {
			b, err := inv.Invoke(gctx, cols, evalType, s, tags)
			if err != nil {
				return err
			}
			bundles[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	opts := assembleOptions(in.Plan.Task)
	table := report.NewTable()
	out := make([]StratumResult, len(strata))
	for i, s := range strata {
		opts.Suffix = s.Suffix(in.Suffix)
		rows := report.Assemble(in.System, bundles[i], opts)
		if err := table.Add(rows...); err != nil {
			return nil, fmt.Errorf("stratum %q: %w", s.Label(), err)
		}
		out[i] = StratumResult{Label: s.Label(), Rows: rows, Bundle: bundles[i]}

		r.logger.Debug("stratum assembled", "stratum", s.Label(), "rows", len(rows))
	}
	return out, nil
}

// assembleOptions: NEL reports the fuzzy regime of the ALL tag only.
func assembleOptions(t task.Task) report.Options {
	if t.IsNEL() {
		return report.Options{
			Regimes:        []metrics.Regime{metrics.Fuzzy},
			OnlyAggregated: true,
		}
	}
	return report.Options{}
}
