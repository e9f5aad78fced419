package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"content_auditor/internal/domain"
)

// RenderSummary prints the summary, histogram and the worst results.
func RenderSummary(w io.Writer, report *domain.Report, worst int) {
	s := report.Summary

	t := newTable(w)
	t.SetTitle("Assessment %s", report.RunID)
	t.AppendHeader(table.Row{"Total", "High", "Medium", "Low", "Needs improvement", "Failed", "Avg score"})
	t.AppendRow(table.Row{s.Total, s.High, s.Medium, s.Low, s.NeedsImprovement, s.Failed, fmt.Sprintf("%.1f", s.AverageScore)})
	t.Render()

	h := newTable(w)
	h.AppendHeader(table.Row{"Score", "Posts"})
	for _, b := range report.Statistics.ScoreHistogram {
		h.AppendRow(table.Row{b.Label, b.Count})
	}
	h.Render()

	if worst <= 0 || len(report.Results) == 0 {
		return
	}

	r := newTable(w)
	r.AppendHeader(table.Row{"ID", "Title", "Score", "Priority", "Top reason"})
	for i, res := range report.Results {
		if i >= worst {
			break
		}
		reason := ""
		if len(res.Reasons) > 0 {
			reason = res.Reasons[0]
		}
		r.AppendRow(table.Row{res.ItemID, truncate(res.Item.Title, 50), res.OverallScore, res.Priority, reason})
	}
	r.Render()
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// newTable keeps header labels as written.
func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault
	return t
}
