package evaluate

import (
	"strings"
	"testing"

	"github.com/leofalp/fieldex/core/overview"
	"github.com/leofalp/fieldex/core/score"
)

func sampleReport() *Report {
	ov := overview.New()
	ov.AddAttempt()
	ov.RecordField("total", 3, overview.OutcomeDropped)

	return &Report{
		Schema: "invoice",
		Trials: []Trial{
			{Case: 0, Index: 0, Result: &score.MatchResult{Aggregate: 1}, Overview: ov},
			{Case: 1, Index: 0, Err: "upstream unavailable"},
		},
		Summary: score.Summary{
			Trials: 1, Mean: 0.875, Min: 0.875, Max: 0.875,
			Fields: []score.FieldStats{
				{Field: "vendor", Mean: 1, Min: 1, Max: 1, Count: 1},
				{Field: "total", Mean: 0.75, Min: 0.75, Max: 0.75, Count: 1},
			},
		},
	}
}

func TestReport_FieldTable(t *testing.T) {
	report := sampleReport()

	ascii := report.FieldTable(FormatASCII)
	for _, want := range []string{"FIELD", "vendor", "total", "100.0%", "75.0%", "OVERALL", "87.5%"} {
		if !strings.Contains(ascii, want) {
			t.Errorf("ASCII table missing %q:\n%s", want, ascii)
		}
	}

	md := report.FieldTable(FormatMarkdown)
	if !strings.Contains(strings.ToLower(md), "| field |") || !strings.Contains(md, "| vendor |") {
		t.Errorf("Markdown table malformed:\n%s", md)
	}
}

func TestReport_TrialTable(t *testing.T) {
	out := sampleReport().TrialTable(FormatASCII)
	for _, want := range []string{"100.0%", "upstream unavailable", " - "} {
		if !strings.Contains(out, want) {
			t.Errorf("trial table missing %q:\n%s", want, out)
		}
	}
}
