package heuristic

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"content_auditor/internal/domain"
)

// Rule is one independent heuristic check over plain text.
type Rule interface {
	Kind() domain.FindingKind
	// Check is the toggle that enables the rule.
	Check() domain.Check
	Evaluate(text string) []domain.Finding
}

const (
	bulletRatioLimit   = 0.4
	longSentenceRunes  = 100
	toneMinorityMin    = 0.1
	toneMinorityMax    = 0.9
	repetitionMinRunes = 3
	repetitionLimit    = 5
)

// DefaultPhrases are stock phrases typical of generated prose.
var DefaultPhrases = []string{
	"いかがでしたか",
	"いかがでしたでしょうか",
	"結論から言うと",
	"まとめると",
	"ご紹介しました",
	"について解説します",
	"重要なポイント",
	"ぜひ参考にしてください",
	"in conclusion",
	"in today's fast-paced world",
	"it is important to note",
	"it's important to note",
	"delve into",
	"in the ever-evolving",
	"a testament to",
	"navigating the complexities",
	"unlock the potential",
	"without further ado",
}

// PhraseRule flags every occurrence of a stock phrase.
type PhraseRule struct {
	mu      sync.Mutex
	phrases []string
	matcher *ahocorasick.Matcher
}

func NewPhraseRule(phrases []string) *PhraseRule {
	lower := make([]string, len(phrases))
	for i, p := range phrases {
		lower[i] = strings.ToLower(p)
	}
	return &PhraseRule{
		phrases: lower,
		matcher: ahocorasick.NewStringMatcher(lower),
	}
}

func (r *PhraseRule) Kind() domain.FindingKind { return domain.FindingAIPhrase }
func (r *PhraseRule) Check() domain.Check      { return domain.CheckAIPhrasePatterns }

func (r *PhraseRule) Evaluate(text string) []domain.Finding {
	lower := strings.ToLower(text)

	// Matcher keeps per-call state.
	r.mu.Lock()
	hits := r.matcher.Match([]byte(lower))
	r.mu.Unlock()

	sort.Ints(hits)

	var findings []domain.Finding
	for _, idx := range hits {
		phrase := r.phrases[idx]
		for n := strings.Count(lower, phrase); n > 0; n-- {
			findings = append(findings, domain.Finding{
				Kind:     domain.FindingAIPhrase,
				Severity: 2,
				Detail:   phrase,
			})
		}
	}
	return findings
}

// BulletRule flags text where list lines dominate.
type BulletRule struct{}

func (BulletRule) Kind() domain.FindingKind { return domain.FindingBullets }
func (BulletRule) Check() domain.Check      { return domain.CheckExcessiveBulletPoints }

func (BulletRule) Evaluate(text string) []domain.Finding {
	lines := nonBlankLines(text)
	if len(lines) == 0 {
		return nil
	}

	bullets := 0
	for _, line := range lines {
		if isBulletLine(line) {
			bullets++
		}
	}

	ratio := float64(bullets) / float64(len(lines))
	if ratio <= bulletRatioLimit {
		return nil
	}
	return []domain.Finding{{
		Kind:     domain.FindingBullets,
		Severity: 2,
		Detail:   fmt.Sprintf("%d of %d lines are list items", bullets, len(lines)),
	}}
}

func isBulletLine(line string) bool {
	for _, p := range []string{"- ", "* ", "• ", "・", "●", "■", "◆"} {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	// "1. " / "2) "
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	return i > 0 && i+1 < len(line) && (line[i] == '.' || line[i] == ')') && line[i+1] == ' '
}

// LongSentenceRule flags each sentence over the length limit.
type LongSentenceRule struct{}

func (LongSentenceRule) Kind() domain.FindingKind { return domain.FindingLongSentence }
func (LongSentenceRule) Check() domain.Check      { return domain.CheckAIWritingDetection }

func (LongSentenceRule) Evaluate(text string) []domain.Finding {
	var findings []domain.Finding
	for _, s := range sentences(text) {
		if n := utf8.RuneCountInString(s); n > longSentenceRunes {
			findings = append(findings, domain.Finding{
				Kind:     domain.FindingLongSentence,
				Severity: 1,
				Detail:   fmt.Sprintf("%d characters: %s", n, preview(s, 30)),
			})
		}
	}
	return findings
}

var (
	formalEndings   = []string{"です", "ます", "でした", "ました", "ません", "でしょう", "ください"}
	informalEndings = []string{"である", "であった", "ではない", "だった", "だろう", "だ", "ない"}
)

// ToneRule flags text that mixes polite and plain sentence endings.
type ToneRule struct{}

func (ToneRule) Kind() domain.FindingKind { return domain.FindingMixedTone }
func (ToneRule) Check() domain.Check      { return domain.CheckAIWritingDetection }

func (ToneRule) Evaluate(text string) []domain.Finding {
	var formal, informal int
	for _, s := range sentences(text) {
		switch {
		case hasAnySuffix(s, formalEndings):
			formal++
		case hasAnySuffix(s, informalEndings):
			informal++
		}
	}

	total := formal + informal
	if total == 0 {
		return nil
	}
	minority := min(formal, informal)
	ratio := float64(minority) / float64(total)
	if ratio < toneMinorityMin || ratio > toneMinorityMax {
		return nil
	}
	return []domain.Finding{{
		Kind:     domain.FindingMixedTone,
		Severity: 1,
		Detail:   fmt.Sprintf("%d formal / %d informal endings", formal, informal),
	}}
}

func hasAnySuffix(s string, suffixes []string) bool {
	s = strings.TrimRight(s, "」』)）")
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

// RepetitionRule flags each token that appears too often.
type RepetitionRule struct{}

func (RepetitionRule) Kind() domain.FindingKind { return domain.FindingRepetition }
func (RepetitionRule) Check() domain.Check      { return domain.CheckAIWritingDetection }

func (RepetitionRule) Evaluate(text string) []domain.Finding {
	counts := make(map[string]int)
	var order []string
	for _, tok := range tokens(text) {
		if utf8.RuneCountInString(tok) < repetitionMinRunes {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}

	var findings []domain.Finding
	for _, tok := range order {
		if counts[tok] > repetitionLimit {
			findings = append(findings, domain.Finding{
				Kind:     domain.FindingRepetition,
				Severity: 1,
				Detail:   fmt.Sprintf("%q repeated %d times", tok, counts[tok]),
			})
		}
	}
	return findings
}
