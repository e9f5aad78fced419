package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"content_auditor/internal/domain"
	"content_auditor/internal/report"
	"content_auditor/internal/scoring"
)

const analysisFailedReason = "analysis failed"

// ProgressFunc is called synchronously from the run loop.
type ProgressFunc func(domain.Progress)

// RunOutcome is what a run produced. Results hold every item processed so
// far even when the run was cancelled; Report is set only on completion.
type RunOutcome struct {
	RunID   string
	Status  domain.RunStatus
	Results []domain.AssessmentResult
	Report  *domain.Report
}

// Orchestrator runs one assessment at a time over the items of one site.
type Orchestrator struct {
	resolver    *TargetResolver
	source      ContentSource
	heuristic   HeuristicAnalyzer
	qualitative QualitativeAnalyzer
	itemDelay   time.Duration
	logger      *slog.Logger
	now         func() time.Time
	after       func(time.Duration) <-chan time.Time

	running   atomic.Bool
	status    atomic.Value
	cancelled atomic.Bool

	mu       sync.Mutex
	cancelCh chan struct{}
}

// NewOrchestrator wires the pipeline. qualitative may be nil, in which case
// every qualitative section is neutral.
func NewOrchestrator(
	source ContentSource,
	heuristic HeuristicAnalyzer,
	qualitative QualitativeAnalyzer,
	perPage int,
	itemDelay time.Duration,
	logger *slog.Logger,
) *Orchestrator {
	o := &Orchestrator{
		resolver:    NewTargetResolver(source, perPage, logger),
		source:      source,
		heuristic:   heuristic,
		qualitative: qualitative,
		itemDelay:   itemDelay,
		logger:      logger.With("site", source.ID(), "component", "orchestrator"),
		now:         time.Now,
		after:       time.After,
	}
	o.status.Store(domain.RunIdle)
	return o
}

// Status is the state of the current or most recent run.
func (o *Orchestrator) Status() domain.RunStatus {
	return o.status.Load().(domain.RunStatus)
}

// Cancel asks the current run to stop before its next item. The item being
// analyzed is finished first. It reports whether a run was signalled.
func (o *Orchestrator) Cancel() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.running.Load() {
		return false
	}
	if o.cancelled.CompareAndSwap(false, true) && o.cancelCh != nil {
		close(o.cancelCh)
	}
	return true
}

// Run resolves the targets, analyzes and scores them one by one, and
// aggregates the report. A second Run while one is active fails with
// domain.ErrAlreadyRunning.
func (o *Orchestrator) Run(ctx context.Context, cfg domain.AssessmentConfig, progress ProgressFunc) (*RunOutcome, error) {
	o.mu.Lock()
	if !o.running.CompareAndSwap(false, true) {
		o.mu.Unlock()
		return nil, domain.ErrAlreadyRunning
	}
	o.cancelCh = make(chan struct{})
	o.cancelled.Store(false)
	o.mu.Unlock()
	defer o.running.Store(false)

	if progress == nil {
		progress = func(domain.Progress) {}
	}

	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		o.status.Store(domain.RunError)
		return nil, fmt.Errorf("validate assessment config: %w", err)
	}

	outcome := &RunOutcome{RunID: uuid.NewString()}
	logger := o.logger.With("run_id", outcome.RunID)
	startTime := o.now()

	o.setStatus(outcome, domain.RunFetching)
	progress(domain.Progress{Status: domain.RunFetching, Errors: []string{}})

	targets, err := o.resolver.Resolve(ctx, cfg)
	if err != nil {
		o.setStatus(outcome, domain.RunError)
		progress(domain.Progress{Status: domain.RunError, Errors: []string{err.Error()}})
		return outcome, fmt.Errorf("resolve targets: %w", err)
	}

	logger.Info("starting assessment", "targets", len(targets))
	o.setStatus(outcome, domain.RunAnalyzing)

	var itemErrors []string
	total := len(targets)
	last := domain.Progress{Total: total, Errors: []string{}}

	for i, item := range targets {
		if o.stopRequested(ctx) {
			return o.cancel(outcome, logger, progress, last)
		}

		res, err := o.assess(ctx, item, cfg)
		if err != nil {
			if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
				return o.cancel(outcome, logger, progress, last)
			}
			logger.Warn("item analysis failed", "item_id", item.ID, "error", err)
			itemErrors = append(itemErrors, fmt.Sprintf("%d: %v", item.ID, err))
			res = o.placeholder(item, cfg, err)
		}
		outcome.Results = append(outcome.Results, res)

		last = domain.Progress{
			Total:        total,
			Current:      i + 1,
			CurrentTitle: item.Title,
			Percentage:   (i + 1) * 100 / total,
			Status:       domain.RunAnalyzing,
			Errors:       append([]string{}, itemErrors...),
		}
		progress(last)

		if i < total-1 && !o.sleep(ctx) {
			return o.cancel(outcome, logger, progress, last)
		}
	}

	names, err := o.source.Terms(ctx, domain.TaxonomyCategories)
	if err != nil {
		logger.Warn("category lookup failed, breakdown will show ids", "error", err)
	}

	rep := report.Aggregate(outcome.Results, names)
	rep.RunID = outcome.RunID
	rep.GeneratedAt = o.now()
	outcome.Report = rep

	o.setStatus(outcome, domain.RunCompleted)
	last.Status = domain.RunCompleted
	progress(last)

	logger.Info("assessment completed",
		"results", len(outcome.Results),
		"failed", rep.Summary.Failed,
		"high", rep.Summary.High,
		"avg_score", rep.Summary.AverageScore,
		"duration", o.now().Sub(startTime),
	)

	return outcome, nil
}

func (o *Orchestrator) assess(ctx context.Context, item domain.ContentItem, cfg domain.AssessmentConfig) (res domain.AssessmentResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during analysis: %v", r)
		}
	}()

	start := o.now()

	h, err := o.heuristic.Analyze(item.Body, cfg.EnabledChecks)
	if err != nil {
		return res, fmt.Errorf("heuristic analysis: %w", err)
	}

	qual := domain.NeutralQualitativeResult()
	if o.qualitative != nil {
		q, err := o.qualitative.Analyze(ctx, domain.QualitativeRequest{
			Title:  item.Title,
			Text:   h.Text,
			Checks: cfg.EnabledChecks,
		})
		if err != nil {
			return res, fmt.Errorf("qualitative analysis: %w", err)
		}
		qual = *q
	}

	checkedAt := o.now()
	out := scoring.Evaluate(scoring.Input{
		LastModifiedAt:      item.LastModifiedAt,
		AITextScore:         h.Score,
		MisinformationScore: qual.Misinformation.Score,
		Findings:            h.Findings,
	}, cfg.ScoringWeights, checkedAt)

	return domain.AssessmentResult{
		ItemID:           item.ID,
		Item:             item,
		SubScores:        out.SubScores,
		OverallScore:     out.OverallScore,
		Priority:         out.Priority,
		NeedsImprovement: scoring.NeedsImprovement(out.OverallScore, cfg.Threshold()),
		Reasons:          out.Reasons,
		Actions:          out.Actions,
		Findings:         h.Findings,
		Qualitative:      &qual,
		CheckedAt:        checkedAt,
		ProcessingTimeMs: checkedAt.Sub(start).Milliseconds(),
	}, nil
}

func (o *Orchestrator) placeholder(item domain.ContentItem, cfg domain.AssessmentConfig, cause error) domain.AssessmentResult {
	return domain.AssessmentResult{
		ItemID:           item.ID,
		Item:             item,
		OverallScore:     0,
		Priority:         domain.PriorityHigh,
		NeedsImprovement: scoring.NeedsImprovement(0, cfg.Threshold()),
		Reasons:          []string{analysisFailedReason},
		Actions:          []string{},
		CheckedAt:        o.now(),
		Error:            cause.Error(),
	}
}

func (o *Orchestrator) stopRequested(ctx context.Context) bool {
	return o.cancelled.Load() || ctx.Err() != nil
}

// sleep waits out the inter-item delay. It returns false when the run was
// cancelled while waiting.
func (o *Orchestrator) sleep(ctx context.Context) bool {
	if o.itemDelay <= 0 {
		return !o.stopRequested(ctx)
	}

	select {
	case <-o.after(o.itemDelay):
		return true
	case <-o.cancelCh:
		return false
	case <-ctx.Done():
		return false
	}
}

func (o *Orchestrator) cancel(outcome *RunOutcome, logger *slog.Logger, progress ProgressFunc, last domain.Progress) (*RunOutcome, error) {
	o.setStatus(outcome, domain.RunCancelled)
	last.Status = domain.RunCancelled
	progress(last)

	logger.Info("assessment cancelled", "processed", len(outcome.Results))
	return outcome, domain.ErrCancelled
}

func (o *Orchestrator) setStatus(outcome *RunOutcome, status domain.RunStatus) {
	outcome.Status = status
	o.status.Store(status)
}
