package report

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"content_auditor/internal/domain"
)

const (
	utf8BOM       = "\ufeff"
	listSeparator = "; "
)

var csvHeader = []string{
	"itemId",
	"ageScore",
	"aiTextScore",
	"misinformationScore",
	"overallScore",
	"priority",
	"reasons",
	"actions",
	"checkedAt",
	"processingTimeMs",
	"error",
	"needsImprovement",
	"title",
	"url",
	"categories",
}

// WriteCSV writes one row per result with a header row. Every field is
// double-quoted and the output starts with a byte-order mark so that
// spreadsheet applications detect UTF-8.
func WriteCSV(w io.Writer, report *domain.Report) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(utf8BOM); err != nil {
		return err
	}
	if err := writeRecord(bw, csvHeader); err != nil {
		return err
	}
	for _, r := range report.Results {
		if err := writeRecord(bw, Row(r, report.CategoryNames)); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Row flattens a result into the export column order.
func Row(r domain.AssessmentResult, categoryNames map[int64]string) []string {
	return []string{
		strconv.FormatInt(r.ItemID, 10),
		strconv.Itoa(r.SubScores.Age),
		strconv.Itoa(r.SubScores.AIText),
		strconv.Itoa(r.SubScores.Misinformation),
		strconv.Itoa(r.OverallScore),
		string(r.Priority),
		strings.Join(r.Reasons, listSeparator),
		strings.Join(r.Actions, listSeparator),
		r.CheckedAt.UTC().Format(time.RFC3339),
		strconv.FormatInt(r.ProcessingTimeMs, 10),
		r.Error,
		strconv.FormatBool(r.NeedsImprovement),
		r.Item.Title,
		r.Item.URL,
		categoryList(r.Item.Categories, categoryNames),
	}
}

func categoryList(ids []int64, names map[int64]string) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		if name, ok := names[id]; ok && name != "" {
			parts[i] = name
		} else {
			parts[i] = strconv.FormatInt(id, 10)
		}
	}
	return strings.Join(parts, listSeparator)
}

func writeRecord(w *bufio.Writer, fields []string) error {
	for i, f := range fields {
		if i > 0 {
			if err := w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(quote(f)); err != nil {
			return err
		}
	}
	_, err := w.WriteString("\r\n")
	return err
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
