package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/nereval"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/evaluator"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/report"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/runner"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/storage"
	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/storage/factory"
	"github.com/impresso/CLEF-HIPE-2020-scorer/pkg/config/env"
	"github.com/impresso/CLEF-HIPE-2020-scorer/pkg/logger"
)

func evaluateCmd() *cobra.Command {
	var cfg cliConfig

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Score a system response against the gold standard",
		Example: `  hipe-scorer evaluate -r gold.tsv -p team_bundle1_de_1.tsv -t nerc_coarse
  hipe-scorer evaluate -r gold.tsv -p team_bundle2_fr_1.tsv -t nel -n 1,3,5 --noise-level 0.0-0.1,0.1-1.0
  hipe-scorer evaluate --spec runs.yaml --workers 4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEvaluate(cmd, cfg)
		},
	}

	bindFlags(cmd, &cfg)
	return cmd
}

func runEvaluate(cmd *cobra.Command, cfg cliConfig) error {
	logCfg := logger.DefaultConfig()
	logCfg.File = cfg.LogFile
	logCfg.Format = cfg.LogFormat

	log, closer, err := logger.New(logCfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rs, err := cfg.runSpec(cmd)
	if err != nil {
		log.Error("invalid run specification", "error", err)
		return err
	}

	sink, err := openSink(ctx, cfg, log)
	if err != nil {
		log.Error("failed to open result sink", "sink", cfg.Sink, "error", err)
		return err
	}
	if sink != nil {
		defer sink.Close()
	}

	r := runner.New(runner.Config{Workers: cfg.Workers}, openMatcher, log)
	for _, job := range rs.Jobs {
		jr, err := r.RunJob(ctx, job)
		if err != nil {
			log.Error("evaluation failed", "job", job.Name, "error", err)
			return err
		}

		report.WriteSummary(jr.Rows, cmd.OutOrStdout())
		fmt.Fprintf(cmd.OutOrStdout(), "\nReports written to %s and %s\n", jr.Paths.TSV, jr.Paths.JSON)

		if sink == nil {
			continue
		}
		run := storage.NewRun(jr.JobName, jr.System, string(jr.Task), job.Ref, job.Pred, jr.Rows)
		if err := sink.SaveRun(ctx, run); err != nil {
			log.Error("failed to persist results", "job", job.Name, "error", err)
			return fmt.Errorf("persist results of job %q: %w", job.Name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Results stored as run %s\n", run.ID)
	}

	return nil
}

func openSink(ctx context.Context, cfg cliConfig, log *slog.Logger) (storage.Sink, error) {
	t, err := storage.ParseType(cfg.Sink)
	if err != nil || t == storage.None {
		return nil, err
	}

	if err := env.LoadDotEnv(cfg.EnvPath); err != nil {
		return nil, err
	}
	sinkCfg, err := factory.LoadEnv()
	if err != nil {
		return nil, err
	}
	return factory.NewSink(ctx, t, *sinkCfg, log)
}

func openMatcher(ref, pred, glueingCols string) (evaluator.Matcher, error) {
	pairs, err := nereval.ParseGluePairs(glueingCols)
	if err != nil {
		return nil, err
	}
	e, err := nereval.Open(ref, pred, pairs)
	if err != nil {
		return nil, err
	}
	return e, nil
}
