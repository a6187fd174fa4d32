package evaluate

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/leofalp/fieldex/core/overview"
)

// Format selects how a report table is rendered.
type Format int

const (
	FormatASCII    Format = iota // box-drawn terminal table
	FormatMarkdown               // GitHub-flavoured Markdown table
)

// FieldTable renders the per-field statistics of the report.
func (r *Report) FieldTable(format Format) string {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"Field", "Mean", "Min", "Max", "Trials"})
	for _, f := range r.Summary.Fields {
		w.AppendRow(table.Row{f.Field, percent(f.Mean), percent(f.Min), percent(f.Max), f.Count})
	}
	w.AppendFooter(table.Row{"overall", percent(r.Summary.Mean), percent(r.Summary.Min), percent(r.Summary.Max), r.Summary.Trials})
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 3, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 4, Align: text.AlignRight, AlignFooter: text.AlignRight},
		{Number: 5, Align: text.AlignRight, AlignFooter: text.AlignRight},
	})
	return render(w, format)
}

// TrialTable renders one row per trial.
func (r *Report) TrialTable(format Format) string {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"Case", "Trial", "Score", "Attempts", "Dropped", "Error"})
	for _, t := range r.Trials {
		scoreText, attempts, dropped := "-", 0, 0
		if t.Result != nil {
			scoreText = percent(t.Result.Aggregate)
		}
		if t.Overview != nil {
			attempts = t.Overview.Attempts
			dropped = len(t.Overview.FieldsWith(overview.OutcomeDropped))
		}
		w.AppendRow(table.Row{t.Case + 1, t.Index + 1, scoreText, attempts, dropped, t.Err})
	}
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 6, WidthMax: 60},
	})
	return render(w, format)
}

func render(w table.Writer, format Format) string {
	if format == FormatMarkdown {
		return w.RenderMarkdown()
	}
	return w.Render()
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
