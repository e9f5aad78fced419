package domain

import (
	"fmt"
	"time"
)

// Check is one recognized analysis toggle.
type Check string

const (
	// Heuristic analyzer.
	CheckAIWritingDetection    Check = "aiWritingDetection"
	CheckExcessiveBulletPoints Check = "excessiveBulletPoints"
	CheckAIPhrasePatterns      Check = "aiPhrasePatterns"

	// Qualitative analyzer.
	CheckMisinformation     Check = "checkMisinformation"
	CheckRecency            Check = "checkRecency"
	CheckLogicalConsistency Check = "checkLogicalConsistency"
	CheckSEO                Check = "checkSEO"
	CheckReadability        Check = "checkReadability"
)

// AllChecks lists every toggle the engine recognizes.
var AllChecks = []Check{
	CheckAIWritingDetection,
	CheckExcessiveBulletPoints,
	CheckAIPhrasePatterns,
	CheckMisinformation,
	CheckRecency,
	CheckLogicalConsistency,
	CheckSEO,
	CheckReadability,
}

// EnabledChecks maps toggles to their state. Absent toggles are enabled.
type EnabledChecks map[Check]bool

func (e EnabledChecks) Enabled(c Check) bool {
	v, ok := e[c]
	return !ok || v
}

func (e EnabledChecks) Validate() error {
	for c := range e {
		if !c.known() {
			return fmt.Errorf("%w: %q", ErrUnknownCheck, string(c))
		}
	}
	return nil
}

func (c Check) known() bool {
	for _, k := range AllChecks {
		if k == c {
			return true
		}
	}
	return false
}

type ScoringWeights struct {
	Age            float64 `json:"age" yaml:"age"`
	AIText         float64 `json:"aiText" yaml:"ai_text"`
	Misinformation float64 `json:"misinformation" yaml:"misinformation"`
}

type DateRange struct {
	From time.Time `json:"from" yaml:"from"`
	To   time.Time `json:"to" yaml:"to"`
}

// Contains reports whether t falls inside the range. Zero bounds are open.
func (r *DateRange) Contains(t time.Time) bool {
	if r == nil {
		return true
	}
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

// AssessmentConfig selects the candidate items and tunes scoring.
type AssessmentConfig struct {
	StatusFilter   []string       `json:"statusFilter" yaml:"status_filter"`
	CategoryIDs    []int64        `json:"categoryIds,omitempty" yaml:"category_ids"`
	ExcludedIDs    []int64        `json:"excludedIds,omitempty" yaml:"excluded_ids"`
	DateRange      *DateRange     `json:"dateRange,omitempty" yaml:"date_range"`
	ScoringWeights ScoringWeights `json:"scoringWeights" yaml:"scoring_weights"`
	ScoreThreshold *int           `json:"scoreThreshold" yaml:"score_threshold"`
	EnabledChecks  EnabledChecks  `json:"enabledChecks" yaml:"enabled_checks"`
}

const (
	DefaultStatus         = "publish"
	DefaultScoreThreshold = 60
	DefaultAgeWeight      = 0.3
	DefaultAITextWeight   = 0.3
	DefaultMisinfoWeight  = 0.4
)

// DefaultAssessmentConfig returns the configuration used when nothing is set.
func DefaultAssessmentConfig() AssessmentConfig {
	return AssessmentConfig{
		StatusFilter: []string{DefaultStatus},
		ScoringWeights: ScoringWeights{
			Age:            DefaultAgeWeight,
			AIText:         DefaultAITextWeight,
			Misinformation: DefaultMisinfoWeight,
		},
		ScoreThreshold: ScoreThresholdOf(DefaultScoreThreshold),
		EnabledChecks:  EnabledChecks{},
	}
}

// SetDefaults fills zero-valued fields with the named defaults.
func (c *AssessmentConfig) SetDefaults() {
	def := DefaultAssessmentConfig()
	if len(c.StatusFilter) == 0 {
		c.StatusFilter = def.StatusFilter
	}
	if c.ScoringWeights == (ScoringWeights{}) {
		c.ScoringWeights = def.ScoringWeights
	}
	if c.ScoreThreshold == nil {
		c.ScoreThreshold = def.ScoreThreshold
	}
	if c.EnabledChecks == nil {
		c.EnabledChecks = EnabledChecks{}
	}
}

// Threshold is the needs-improvement cut-off. An explicit 0 disables it.
func (c AssessmentConfig) Threshold() int {
	if c.ScoreThreshold == nil {
		return DefaultScoreThreshold
	}
	return *c.ScoreThreshold
}

// ScoreThresholdOf returns a pointer for AssessmentConfig.ScoreThreshold.
func ScoreThresholdOf(v int) *int {
	return &v
}

func (c AssessmentConfig) Validate() error {
	w := c.ScoringWeights
	if w.Age < 0 || w.AIText < 0 || w.Misinformation < 0 {
		return fmt.Errorf("scoring weights must be non-negative: %+v", w)
	}
	if t := c.Threshold(); t < 0 || t > 100 {
		return fmt.Errorf("score threshold %d out of range [0,100]", t)
	}
	if c.DateRange != nil && !c.DateRange.From.IsZero() && !c.DateRange.To.IsZero() &&
		c.DateRange.To.Before(c.DateRange.From) {
		return fmt.Errorf("date range ends before it starts")
	}
	return c.EnabledChecks.Validate()
}
