// Package report reduces assessment results into summary statistics and
// renders them for people and spreadsheets.
package report

import (
	"math"
	"sort"
	"strconv"

	"content_auditor/internal/domain"
)

const topIssueLimit = 10

var bucketBounds = [][2]int{{0, 19}, {20, 39}, {40, 59}, {60, 79}, {80, 100}}

// Aggregate builds the report body from a result list. The input slice is
// not modified; the report holds a sorted copy.
func Aggregate(results []domain.AssessmentResult, categoryNames map[int64]string) *domain.Report {
	sorted := make([]domain.AssessmentResult, len(results))
	copy(sorted, results)
	Sort(sorted)

	if categoryNames == nil {
		categoryNames = map[int64]string{}
	}

	return &domain.Report{
		Results: sorted,
		Summary: summarize(sorted),
		Statistics: domain.Statistics{
			ScoreHistogram:    histogram(sorted),
			TopIssues:         topIssues(sorted),
			CategoryBreakdown: categoryBreakdown(sorted, categoryNames),
		},
		CategoryNames: categoryNames,
	}
}

// Sort orders results by priority, most severe first, then worst score first.
func Sort(results []domain.AssessmentResult) {
	sort.SliceStable(results, func(i, j int) bool {
		ri, rj := results[i].Priority.Rank(), results[j].Priority.Rank()
		if ri != rj {
			return ri > rj
		}
		return results[i].OverallScore < results[j].OverallScore
	})
}

func summarize(results []domain.AssessmentResult) domain.Summary {
	s := domain.Summary{Total: len(results)}
	total := 0

	for _, r := range results {
		switch r.Priority {
		case domain.PriorityHigh:
			s.High++
		case domain.PriorityMedium:
			s.Medium++
		case domain.PriorityLow:
			s.Low++
		}
		if r.NeedsImprovement {
			s.NeedsImprovement++
		}
		if r.Error != "" {
			s.Failed++
		}
		total += r.OverallScore
		s.TotalTimeMs += r.ProcessingTimeMs
	}

	if len(results) > 0 {
		s.AverageScore = round1(float64(total) / float64(len(results)))
	}
	return s
}

func histogram(results []domain.AssessmentResult) []domain.HistogramBucket {
	buckets := make([]domain.HistogramBucket, len(bucketBounds))
	for i, b := range bucketBounds {
		buckets[i] = domain.HistogramBucket{
			Label: strconv.Itoa(b[0]) + "-" + strconv.Itoa(b[1]),
			Min:   b[0],
			Max:   b[1],
		}
	}

	for _, r := range results {
		idx := r.OverallScore / 20
		if idx < 0 {
			idx = 0
		}
		if idx >= len(buckets) {
			idx = len(buckets) - 1
		}
		buckets[idx].Count++
	}
	return buckets
}

// topIssues counts reason strings; ties keep first-seen order.
func topIssues(results []domain.AssessmentResult) []domain.IssueCount {
	counts := make(map[string]int)
	var order []string

	for _, r := range results {
		for _, reason := range r.Reasons {
			if counts[reason] == 0 {
				order = append(order, reason)
			}
			counts[reason]++
		}
	}

	issues := make([]domain.IssueCount, len(order))
	for i, reason := range order {
		issues[i] = domain.IssueCount{Reason: reason, Count: counts[reason]}
	}
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Count > issues[j].Count
	})

	if len(issues) > topIssueLimit {
		issues = issues[:topIssueLimit]
	}
	return issues
}

func categoryBreakdown(results []domain.AssessmentResult, names map[int64]string) []domain.CategoryStat {
	type acc struct {
		posts int
		total int
	}
	stats := make(map[int64]*acc)

	for _, r := range results {
		for _, id := range r.Item.Categories {
			a, ok := stats[id]
			if !ok {
				a = &acc{}
				stats[id] = a
			}
			a.posts++
			a.total += r.OverallScore
		}
	}

	out := make([]domain.CategoryStat, 0, len(stats))
	for id, a := range stats {
		out = append(out, domain.CategoryStat{
			CategoryID:   id,
			Name:         names[id],
			Posts:        a.posts,
			AverageScore: round1(float64(a.total) / float64(a.posts)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Posts != out[j].Posts {
			return out[i].Posts > out[j].Posts
		}
		return out[i].CategoryID < out[j].CategoryID
	})
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
