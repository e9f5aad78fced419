package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"content_auditor/internal/domain"
)

const (
	resultsSheet = "Results"
	summarySheet = "Summary"
)

// WriteXLSX writes a workbook with the result rows and the summary figures.
func WriteXLSX(w io.Writer, report *domain.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", resultsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	if err := setRow(f, resultsSheet, 1, toCells(csvHeader)); err != nil {
		return err
	}
	for i, r := range report.Results {
		if err := setRow(f, resultsSheet, i+2, toCells(Row(r, report.CategoryNames))); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	for i, row := range summaryRows(report) {
		if err := setRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func summaryRows(report *domain.Report) [][]any {
	s := report.Summary
	rows := [][]any{
		{"Run", report.RunID},
		{"Generated", report.GeneratedAt.UTC().Format("2006-01-02 15:04:05")},
		{"Total", s.Total},
		{"High", s.High},
		{"Medium", s.Medium},
		{"Low", s.Low},
		{"Needs improvement", s.NeedsImprovement},
		{"Failed", s.Failed},
		{"Average score", s.AverageScore},
		{"Total time (ms)", s.TotalTimeMs},
		{},
		{"Score range", "Posts"},
	}
	for _, b := range report.Statistics.ScoreHistogram {
		rows = append(rows, []any{b.Label, b.Count})
	}
	rows = append(rows, []any{}, []any{"Top issue", "Count"})
	for _, issue := range report.Statistics.TopIssues {
		rows = append(rows, []any{issue.Reason, issue.Count})
	}
	return rows
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
