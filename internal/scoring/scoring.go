// Package scoring turns per-item sub-scores into an overall score, a
// priority tier, and the reasons and actions shown to the operator.
package scoring

import (
	"math"
	"time"

	"content_auditor/internal/domain"
)

const (
	agePenaltyPerMonth = 5

	highPriorityBelow   = 40
	mediumPriorityBelow = 70

	subscoreFlagBelow = 60
)

// Input gathers everything the engine needs about one analyzed item.
type Input struct {
	LastModifiedAt      time.Time
	AITextScore         int
	MisinformationScore int
	Findings            []domain.Finding
}

type Outcome struct {
	SubScores    domain.SubScores
	OverallScore int
	Priority     domain.Priority
	Reasons      []string
	Actions      []string
}

// Evaluate scores one item as of now.
func Evaluate(in Input, w domain.ScoringWeights, now time.Time) Outcome {
	sub := domain.SubScores{
		Age:            AgeScore(in.LastModifiedAt, now),
		AIText:         clamp(in.AITextScore),
		Misinformation: clamp(in.MisinformationScore),
	}

	overall := Overall(sub, w)
	reasons, actions := Explain(sub, in.Findings)

	return Outcome{
		SubScores:    sub,
		OverallScore: overall,
		Priority:     PriorityFor(overall),
		Reasons:      reasons,
		Actions:      actions,
	}
}

// AgeScore loses five points per full month since the last modification.
func AgeScore(lastModified, now time.Time) int {
	return clamp(100 - MonthsBetween(lastModified, now)*agePenaltyPerMonth)
}

// MonthsBetween counts whole calendar months from from to to, never negative.
func MonthsBetween(from, to time.Time) int {
	if from.IsZero() || !to.After(from) {
		return 0
	}
	from, to = from.UTC(), to.UTC()
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

// Overall is the rounded weighted sum of the sub-scores, clamped to [0,100].
func Overall(sub domain.SubScores, w domain.ScoringWeights) int {
	sum := float64(sub.Age)*w.Age +
		float64(sub.AIText)*w.AIText +
		float64(sub.Misinformation)*w.Misinformation
	return clamp(int(math.Round(sum)))
}

// PriorityFor maps an overall score to its tier. Lower scores are worse.
func PriorityFor(score int) domain.Priority {
	switch {
	case score < highPriorityBelow:
		return domain.PriorityHigh
	case score < mediumPriorityBelow:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// NeedsImprovement is the configurable gate, independent of priority tiers.
func NeedsImprovement(score, threshold int) bool {
	return score < threshold
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
