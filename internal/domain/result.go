package domain

import "time"

// FindingKind identifies the heuristic rule that produced a finding.
type FindingKind string

const (
	FindingAIPhrase     FindingKind = "ai_phrase"
	FindingBullets      FindingKind = "excessive_bullets"
	FindingLongSentence FindingKind = "long_sentence"
	FindingMixedTone    FindingKind = "mixed_tone"
	FindingRepetition   FindingKind = "repetition"
)

type Finding struct {
	Kind     FindingKind `json:"kind"`
	Severity int         `json:"severity"`
	Detail   string      `json:"detail"`
}

// HeuristicResult is the AI-text-likelihood score (100 = human-like) and its findings.
type HeuristicResult struct {
	Score    int       `json:"score"`
	Findings []Finding `json:"findings"`
	Text     string    `json:"-"` // plain text the rules ran on
}

// QualitativeSection is one scored aspect of the generative analysis.
type QualitativeSection struct {
	Score           int      `json:"score"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}

// NeutralSection is substituted for disabled or unparseable sections.
func NeutralSection() QualitativeSection {
	return QualitativeSection{Score: 100, Issues: []string{}, Recommendations: []string{}}
}

type QualitativeResult struct {
	Misinformation     QualitativeSection `json:"misinformation"`
	Recency            QualitativeSection `json:"recency"`
	LogicalConsistency QualitativeSection `json:"logicalConsistency"`
	SEO                QualitativeSection `json:"seo"`
	Readability        QualitativeSection `json:"readability"`
}

// NeutralQualitativeResult has every section neutral.
func NeutralQualitativeResult() QualitativeResult {
	return QualitativeResult{
		Misinformation:     NeutralSection(),
		Recency:            NeutralSection(),
		LogicalConsistency: NeutralSection(),
		SEO:                NeutralSection(),
		Readability:        NeutralSection(),
	}
}

// QualitativeRequest is what the generative service is asked about one item.
type QualitativeRequest struct {
	Title  string
	Text   string
	Checks EnabledChecks
}

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities by severity, high first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

type SubScores struct {
	Age            int `json:"age"`
	AIText         int `json:"aiText"`
	Misinformation int `json:"misinformation"`
}

// AssessmentResult is produced once per item per run and never mutated afterwards.
type AssessmentResult struct {
	ItemID           int64              `json:"itemId"`
	Item             ContentItem        `json:"item"`
	SubScores        SubScores          `json:"subscores"`
	OverallScore     int                `json:"overallScore"`
	Priority         Priority           `json:"priority"`
	NeedsImprovement bool               `json:"needsImprovement"`
	Reasons          []string           `json:"reasons"`
	Actions          []string           `json:"actions"`
	Findings         []Finding          `json:"findings,omitempty"`
	Qualitative      *QualitativeResult `json:"qualitative,omitempty"`
	CheckedAt        time.Time          `json:"checkedAt"`
	ProcessingTimeMs int64              `json:"processingTimeMs"`
	Error            string             `json:"error,omitempty"`
}

type RunStatus string

const (
	RunIdle      RunStatus = "idle"
	RunFetching  RunStatus = "fetching"
	RunAnalyzing RunStatus = "analyzing"
	RunCompleted RunStatus = "completed"
	RunError     RunStatus = "error"
	RunCancelled RunStatus = "cancelled"
)

// Progress is reported synchronously after each item.
type Progress struct {
	Total        int       `json:"total"`
	Current      int       `json:"current"`
	CurrentTitle string    `json:"currentTitle"`
	Percentage   int       `json:"percentage"`
	Status       RunStatus `json:"status"`
	Errors       []string  `json:"errors"`
}

type Summary struct {
	Total            int     `json:"total"`
	High             int     `json:"high"`
	Medium           int     `json:"medium"`
	Low              int     `json:"low"`
	NeedsImprovement int     `json:"needsImprovement"`
	Failed           int     `json:"failed"`
	AverageScore     float64 `json:"avgScore"`
	TotalTimeMs      int64   `json:"totalTimeMs"`
}

type HistogramBucket struct {
	Label string `json:"label"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Count int    `json:"count"`
}

type IssueCount struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

type CategoryStat struct {
	CategoryID   int64   `json:"categoryId"`
	Name         string  `json:"name"`
	Posts        int     `json:"posts"`
	AverageScore float64 `json:"avgScore"`
}

type Statistics struct {
	ScoreHistogram    []HistogramBucket `json:"scoreHistogram"`
	TopIssues         []IssueCount      `json:"topIssues"`
	CategoryBreakdown []CategoryStat    `json:"categoryBreakdown"`
}

// Report is derived entirely from a result list.
type Report struct {
	RunID         string             `json:"runId"`
	GeneratedAt   time.Time          `json:"generatedAt"`
	Results       []AssessmentResult `json:"results"`
	Summary       Summary            `json:"summary"`
	Statistics    Statistics         `json:"statistics"`
	CategoryNames map[int64]string   `json:"-"`
}
