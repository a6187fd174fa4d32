package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/leofalp/fieldex/core/evaluate"
	"github.com/leofalp/fieldex/internal/utils"
)

var evaluateFlags struct {
	schema      string
	trials      int
	concurrency int
	markdown    bool
	json        bool
	showTrials  bool
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Score extractions against the ground truth of a schema",
	RunE:  runEvaluate,
}

func init() {
	f := evaluateCmd.Flags()
	f.StringVar(&evaluateFlags.schema, "schema", "", "Schema name from the catalogue (required)")
	f.IntVar(&evaluateFlags.trials, "trials", 0, "Extractions per ground-truth case (default from config)")
	f.IntVar(&evaluateFlags.concurrency, "concurrency", 0, "Trials run at once (default from config)")
	f.BoolVar(&evaluateFlags.markdown, "markdown", false, "Render tables as Markdown")
	f.BoolVar(&evaluateFlags.json, "json", false, "Print the full report as JSON")
	f.BoolVar(&evaluateFlags.showTrials, "show-trials", false, "Also print one row per trial")

	_ = evaluateCmd.MarkFlagRequired("schema")
}

func runEvaluate(cmd *cobra.Command, _ []string) error {
	entry, err := loadEntry(evaluateFlags.schema)
	if err != nil {
		return err
	}

	trials := cfg.Evaluation.Trials
	if evaluateFlags.trials > 0 {
		trials = evaluateFlags.trials
	}
	concurrency := cfg.Evaluation.Concurrency
	if evaluateFlags.concurrency > 0 {
		concurrency = evaluateFlags.concurrency
	}

	runner := evaluate.NewRunner(newExtractor(),
		evaluate.WithTrials(trials),
		evaluate.WithConcurrency(concurrency),
		evaluate.WithObserver(observer),
	)
	report, err := runner.Run(cmd.Context(), entry)
	if err != nil {
		return fmt.Errorf("evaluate %s: %w", entry.Schema.Name, err)
	}

	out := cmd.OutOrStdout()
	if evaluateFlags.json {
		fmt.Fprintln(out, utils.JSONToString(report, true))
		return nil
	}

	format := evaluate.FormatASCII
	if evaluateFlags.markdown {
		format = evaluate.FormatMarkdown
	}
	fmt.Fprintf(out, "Schema:   %s\n", report.Schema)
	fmt.Fprintf(out, "Run:      %s\n", report.RunID)
	fmt.Fprintf(out, "Trials:   %d (%d failed)\n", len(report.Trials), report.Failed)
	fmt.Fprintf(out, "Duration: %s\n\n", report.Duration.Round(time.Millisecond))
	fmt.Fprintln(out, report.FieldTable(format))
	if evaluateFlags.showTrials {
		fmt.Fprintln(out)
		fmt.Fprintln(out, report.TrialTable(format))
	}
	return nil
}
