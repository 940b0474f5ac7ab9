package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/impresso/CLEF-HIPE-2020-scorer/internal/scorer/spec"
	"github.com/impresso/CLEF-HIPE-2020-scorer/pkg/logger"
)

type cliConfig struct {
	Job       spec.Job
	SpecPath  string
	LogFile   string
	LogFormat string
	Workers   int
	Sink      string
	EnvPath   string
}

func bindFlags(cmd *cobra.Command, cfg *cliConfig) {
	f := cmd.Flags()
	f.StringVarP(&cfg.Job.Ref, "ref", "r", "", "path to the gold standard file")
	f.StringVarP(&cfg.Job.Pred, "pred", "p", "", "path to the system response file")
	f.StringVarP(&cfg.Job.Task, "task", "t", "", "evaluation task: nerc_coarse, nerc_fine or nel (required without --spec)")
	f.StringVar(&cfg.Job.GlueingCols, "glueing-cols", "", "columns to glue before evaluation, e.g. NE-COARSE-LIT+NE-COARSE-METO")
	f.StringVarP(&cfg.Job.NBest, "n-best", "n", "", "evaluate NEL at these n-best cutoffs, comma-separated")
	f.BoolVarP(&cfg.Job.Union, "union", "u", false, "evaluate NEL on the union of the literal and metonymic columns")
	f.BoolVarP(&cfg.Job.SkipCheck, "skip-check", "s", false, "skip the check of the system response file name")
	f.StringVarP(&cfg.Job.Outdir, "outdir", "o", spec.DefaultOutdir, "directory for the TSV and JSON reports")
	f.StringVar(&cfg.Job.Suffix, "suffix", "", "suffix appended to evaluation labels and report names")
	f.StringVar(&cfg.Job.Tagset, "tagset", "", "file with the tags to evaluate, one per line")
	f.StringVar(&cfg.Job.NoiseLevel, "noise-level", "", "OCR noise bands, e.g. 0.0-0.1,0.1-1.0")
	f.StringVar(&cfg.Job.TimePeriod, "time-period", "", "time periods, e.g. 1900-1950 or 1900/01/01-1950/12/31")

	f.StringVar(&cfg.SpecPath, "spec", "", "YAML run file with several jobs, replaces the job flags")
	f.StringVarP(&cfg.LogFile, "log", "l", logger.DefaultFile, "log file, truncated on every run")
	f.StringVar(&cfg.LogFormat, "log-format", "text", "log format: text or json")
	f.IntVar(&cfg.Workers, "workers", 1, "strata evaluated in parallel")
	f.StringVar(&cfg.Sink, "sink", "none", "persist results: none, pg or es")
	f.StringVar(&cfg.EnvPath, "env", ".env", "optional .env file with sink settings")
}

// runSpec returns the jobs to run: the YAML run file when given, the job
// flags otherwise.
func (c cliConfig) runSpec(cmd *cobra.Command) (*spec.RunSpec, error) {
	if c.SpecPath == "" {
		if !cmd.Flags().Changed("task") {
			return nil, errors.New(`required flag(s) "task" not set`)
		}
		job := c.Job
		job.Name = "cli"
		return &spec.RunSpec{Jobs: []spec.Job{job}}, nil
	}

	if cmd.Flags().Changed("ref") || cmd.Flags().Changed("pred") {
		return nil, errors.New("--spec cannot be combined with --ref or --pred")
	}
	return spec.LoadFromFile(c.SpecPath)
}
