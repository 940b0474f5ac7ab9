package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "hipe-scorer",
		Short: "Evaluate HIPE named entity recognition and linking system responses",
		Long: `hipe-scorer compares a system response against the gold standard and
writes precision, recall and F1 per column, tag, aggregation and matching
regime, optionally stratified by OCR noise level, time period and n-best
cutoff.

Run 'hipe-scorer evaluate --help' for the evaluation options.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		evaluateCmd(),
		versionCmd(),
	)
	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "hipe-scorer %s\n", version)
			fmt.Fprintf(out, "  commit: %s\n", commit)
			fmt.Fprintf(out, "  built:  %s\n", date)
		},
	}
}
