// Package qualitative asks a generative service for a structured review of
// one item and turns whatever comes back into five scored sections.
package qualitative

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"content_auditor/internal/domain"
	"content_auditor/internal/heuristic"
	"content_auditor/internal/llm"
)

const (
	DefaultMaxBodyChars    = 8000
	DefaultMaxOutputTokens = 1500
)

var qualitativeChecks = []domain.Check{
	domain.CheckMisinformation,
	domain.CheckRecency,
	domain.CheckLogicalConsistency,
	domain.CheckSEO,
	domain.CheckReadability,
}

var checkInstructions = map[domain.Check]string{
	domain.CheckMisinformation:     `"misinformation": factual claims that look wrong, unverifiable or misleading`,
	domain.CheckRecency:            `"recency": statements, figures or references that are likely outdated as of %s`,
	domain.CheckLogicalConsistency: `"logicalConsistency": contradictions, gaps in reasoning or conclusions that do not follow`,
	domain.CheckSEO:                `"seo": title quality, heading structure and keyword focus`,
	domain.CheckReadability:        `"readability": sentence length, jargon and paragraph structure for a general reader`,
}

const systemPrompt = "You are a meticulous editor reviewing published articles. " +
	"Answer with a single JSON object and nothing else."

// Limiter refuses a call before it is sent when the quota is exhausted.
type Limiter interface {
	Acquire(model string, tokens int) error
}

type Options struct {
	MaxBodyChars    int
	MaxOutputTokens int
}

type Adapter struct {
	client  llm.Client
	limiter Limiter
	opts    Options
	logger  *slog.Logger
	now     func() time.Time
}

func NewAdapter(client llm.Client, limiter Limiter, opts Options, logger *slog.Logger) *Adapter {
	if opts.MaxBodyChars <= 0 {
		opts.MaxBodyChars = DefaultMaxBodyChars
	}
	if opts.MaxOutputTokens <= 0 {
		opts.MaxOutputTokens = DefaultMaxOutputTokens
	}
	return &Adapter{
		client:  client,
		limiter: limiter,
		opts:    opts,
		logger:  logger.With("component", "qualitative", "model", client.Model()),
		now:     time.Now,
	}
}

// Analyze returns an error only when the request could not be made at all
// (rate limit, transport, service error). A malformed answer is never an
// error: the affected sections are neutral.
func (a *Adapter) Analyze(ctx context.Context, req domain.QualitativeRequest) (*domain.QualitativeResult, error) {
	enabled := enabledChecks(req.Checks)
	if len(enabled) == 0 {
		res := domain.NeutralQualitativeResult()
		return &res, nil
	}

	prompt := a.buildPrompt(req, enabled)
	estimate := utf8.RuneCountInString(systemPrompt+prompt)/2 + a.opts.MaxOutputTokens

	if a.limiter != nil {
		if err := a.limiter.Acquire(a.client.Model(), estimate); err != nil {
			return nil, err
		}
	}

	completion, err := a.client.Complete(ctx, llm.Request{
		System:    systemPrompt,
		Prompt:    prompt,
		MaxTokens: a.opts.MaxOutputTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("request qualitative analysis: %w", err)
	}

	res, problems := Parse(completion.Text, req.Checks)
	if len(problems) > 0 {
		a.logger.Warn("malformed analysis response, using neutral values",
			"title", req.Title,
			"problems", problems,
			"response_chars", len(completion.Text))
	}
	a.logger.Debug("qualitative analysis done",
		"title", req.Title,
		"input_tokens", completion.InputTokens,
		"output_tokens", completion.OutputTokens)

	return &res, nil
}

func (a *Adapter) buildPrompt(req domain.QualitativeRequest, enabled []domain.Check) string {
	var b strings.Builder

	b.WriteString("Review the article below. For each of the following keys return an object ")
	b.WriteString(`{"score": 0-100 where 100 means no problems, "issues": [strings], "recommendations": [strings]}:`)
	b.WriteString("\n")
	for _, c := range enabled {
		line := checkInstructions[c]
		if c == domain.CheckRecency {
			line = fmt.Sprintf(line, a.now().Format("2006-01-02"))
		}
		b.WriteString("- ")
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("Write issues and recommendations in the language of the article.\n\n")
	b.WriteString("Title: ")
	b.WriteString(req.Title)
	b.WriteString("\n\n")
	b.WriteString(heuristic.Truncate(req.Text, a.opts.MaxBodyChars))

	return b.String()
}

func enabledChecks(checks domain.EnabledChecks) []domain.Check {
	var out []domain.Check
	for _, c := range qualitativeChecks {
		if checks.Enabled(c) {
			out = append(out, c)
		}
	}
	return out
}
