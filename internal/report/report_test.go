package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"content_auditor/internal/domain"
)

func result(id int64, score int, priority domain.Priority, reasons ...string) domain.AssessmentResult {
	return domain.AssessmentResult{
		ItemID:       id,
		Item:         domain.ContentItem{ID: id, Title: fmt.Sprintf("Post %d", id)},
		OverallScore: score,
		Priority:     priority,
		Reasons:      reasons,
	}
}

func TestAggregate_SortsWorstFirst(t *testing.T) {
	results := []domain.AssessmentResult{
		result(1, 80, domain.PriorityLow),
		result(2, 35, domain.PriorityHigh),
		result(3, 50, domain.PriorityMedium),
		result(4, 10, domain.PriorityHigh),
		result(5, 45, domain.PriorityMedium),
	}

	rep := Aggregate(results, nil)

	var ids []int64
	for _, r := range rep.Results {
		ids = append(ids, r.ItemID)
	}
	assert.Equal(t, []int64{4, 2, 5, 3, 1}, ids)
	assert.Equal(t, int64(1), results[0].ItemID, "input must not be reordered")
}

func TestAggregate_Summary(t *testing.T) {
	results := []domain.AssessmentResult{
		result(1, 80, domain.PriorityLow),
		result(2, 35, domain.PriorityHigh),
		result(3, 50, domain.PriorityMedium),
	}
	results[1].NeedsImprovement = true
	results[1].Error = "boom"
	results[0].ProcessingTimeMs = 120
	results[2].ProcessingTimeMs = 30

	s := Aggregate(results, nil).Summary

	assert.Equal(t, domain.Summary{
		Total:            3,
		High:             1,
		Medium:           1,
		Low:              1,
		NeedsImprovement: 1,
		Failed:           1,
		AverageScore:     55,
		TotalTimeMs:      150,
	}, s)
}

func TestAggregate_EmptyResults(t *testing.T) {
	rep := Aggregate(nil, nil)

	assert.Equal(t, 0, rep.Summary.Total)
	assert.Zero(t, rep.Summary.AverageScore)
	assert.Len(t, rep.Statistics.ScoreHistogram, 5)
	assert.Empty(t, rep.Statistics.TopIssues)
	assert.Empty(t, rep.Statistics.CategoryBreakdown)
}

func TestAggregate_Histogram(t *testing.T) {
	var results []domain.AssessmentResult
	for i, score := range []int{0, 19, 20, 59, 79, 80, 100} {
		results = append(results, result(int64(i), score, domain.PriorityLow))
	}

	hist := Aggregate(results, nil).Statistics.ScoreHistogram

	require.Len(t, hist, 5)
	assert.Equal(t, "0-19", hist[0].Label)
	assert.Equal(t, "80-100", hist[4].Label)
	counts := make([]int, len(hist))
	for i, b := range hist {
		counts[i] = b.Count
	}
	assert.Equal(t, []int{2, 1, 1, 1, 2}, counts)
}

func TestAggregate_TopIssues(t *testing.T) {
	var results []domain.AssessmentResult
	for i := 0; i < 12; i++ {
		results = append(results, result(int64(i), 50, domain.PriorityMedium, fmt.Sprintf("reason %02d", i)))
	}
	results = append(results,
		result(100, 50, domain.PriorityMedium, "reason 05", "reason 05"),
		result(101, 50, domain.PriorityMedium, "reason 07"),
	)

	issues := Aggregate(results, nil).Statistics.TopIssues

	require.Len(t, issues, 10)
	assert.Equal(t, domain.IssueCount{Reason: "reason 05", Count: 3}, issues[0])
	assert.Equal(t, domain.IssueCount{Reason: "reason 07", Count: 2}, issues[1])
	assert.Equal(t, domain.IssueCount{Reason: "reason 00", Count: 1}, issues[2])
}

func TestAggregate_CategoryBreakdown(t *testing.T) {
	a := result(1, 40, domain.PriorityMedium)
	a.Item.Categories = []int64{7, 3}
	b := result(2, 90, domain.PriorityLow)
	b.Item.Categories = []int64{7}

	stats := Aggregate([]domain.AssessmentResult{a, b}, map[int64]string{7: "News"}).Statistics.CategoryBreakdown

	assert.Equal(t, []domain.CategoryStat{
		{CategoryID: 7, Name: "News", Posts: 2, AverageScore: 65},
		{CategoryID: 3, Name: "", Posts: 1, AverageScore: 40},
	}, stats)
}

func TestWriteCSV(t *testing.T) {
	r := result(9, 42, domain.PriorityMedium, `uses "stock" phrases`, "stale")
	r.Actions = []string{"rewrite"}
	r.Item.Title = `Say "hello", world`
	r.Item.URL = "https://example.com/9"
	r.Item.Categories = []int64{1, 2}
	r.CheckedAt = time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	rep := &domain.Report{Results: []domain.AssessmentResult{r}, CategoryNames: map[int64]string{1: "News"}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rep))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\ufeff"), "missing byte-order mark")

	lines := strings.Split(strings.TrimPrefix(out, "\ufeff"), "\r\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "", lines[2])
	assert.True(t, strings.HasPrefix(lines[0], `"itemId","ageScore",`))
	assert.Equal(t,
		`"9","0","0","0","42","medium","uses ""stock"" phrases; stale","rewrite","2025-03-04T05:06:07Z","0","","false",`+
			`"Say ""hello"", world","https://example.com/9","News; 2"`,
		lines[1])
}

func TestWriteXLSX(t *testing.T) {
	rep := Aggregate([]domain.AssessmentResult{
		result(1, 30, domain.PriorityHigh, "stale"),
		result(2, 90, domain.PriorityLow),
	}, nil)
	rep.RunID = "run-1"

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, rep))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(resultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "itemId", rows[0][0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "stale", rows[1][6])

	summary, err := f.GetRows(summarySheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Run", "run-1"}, summary[0])
	assert.Equal(t, []string{"Total", "2"}, summary[2])
}

func TestRenderSummary(t *testing.T) {
	rep := Aggregate([]domain.AssessmentResult{
		result(1, 30, domain.PriorityHigh, "stale"),
		result(2, 90, domain.PriorityLow),
	}, nil)

	var buf bytes.Buffer
	RenderSummary(&buf, rep, 1)

	out := buf.String()
	assert.Contains(t, out, "Avg score")
	assert.Contains(t, out, "60.0")
	assert.Contains(t, out, "Post 1")
	assert.NotContains(t, out, "Post 2")
}
