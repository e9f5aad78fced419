// Package heuristic scores how machine-generated a post reads, using a list
// of independent text rules.
package heuristic

import (
	"math"

	"content_auditor/internal/domain"
)

var basePenalty = map[domain.FindingKind]float64{
	domain.FindingAIPhrase:     15,
	domain.FindingBullets:      20,
	domain.FindingMixedTone:    10,
	domain.FindingRepetition:   5,
	domain.FindingLongSentence: 3,
}

// Analyzer runs its rules over the plain text of a post.
type Analyzer struct {
	rules []Rule
}

// NewAnalyzer builds an analyzer; without rules it uses DefaultRules.
func NewAnalyzer(rules ...Rule) *Analyzer {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Analyzer{rules: rules}
}

func DefaultRules() []Rule {
	return []Rule{
		NewPhraseRule(DefaultPhrases),
		BulletRule{},
		LongSentenceRule{},
		ToneRule{},
		RepetitionRule{},
	}
}

// Analyze strips the HTML body and evaluates every enabled rule. Turning
// off aiWritingDetection disables all rules.
func (a *Analyzer) Analyze(html string, checks domain.EnabledChecks) (*domain.HeuristicResult, error) {
	text, err := PlainText(html)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeText(text, checks), nil
}

func (a *Analyzer) AnalyzeText(text string, checks domain.EnabledChecks) *domain.HeuristicResult {
	findings := []domain.Finding{}
	if checks.Enabled(domain.CheckAIWritingDetection) {
		for _, rule := range a.rules {
			if !checks.Enabled(rule.Check()) {
				continue
			}
			findings = append(findings, rule.Evaluate(text)...)
		}
	}

	return &domain.HeuristicResult{
		Score:    Score(findings),
		Findings: findings,
		Text:     text,
	}
}

// Score starts at 100 and subtracts basePenalty(kind) * severity/2 per finding.
func Score(findings []domain.Finding) int {
	score := 100.0
	for _, f := range findings {
		score -= basePenalty[f.Kind] * float64(f.Severity) / 2
	}
	score = math.Round(score)
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score)
}
