package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"content_auditor/internal/approval"
	"content_auditor/internal/domain"
)

// SuggestionService applies operator decisions to stored suggestions and
// hands fully approved ones to the apply step.
type SuggestionService struct {
	store     SuggestionStore
	txManager TransactionManager
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

// NewSuggestionService builds the service; publisher may be nil.
func NewSuggestionService(store SuggestionStore, txManager TransactionManager, publisher Publisher, logger *slog.Logger) *SuggestionService {
	return &SuggestionService{
		store:     store,
		txManager: txManager,
		publisher: publisher,
		logger:    logger.With("component", "suggestions"),
		now:       time.Now,
	}
}

// Import stores a suggestion document produced by the generator. Missing
// ids are assigned; decisions for unknown edits are dropped.
func (s *SuggestionService) Import(ctx context.Context, data []byte) (*domain.Suggestion, error) {
	var sug domain.Suggestion
	if err := json.Unmarshal(data, &sug); err != nil {
		return nil, fmt.Errorf("decode suggestion: %w", err)
	}
	if sug.TargetItemID <= 0 {
		return nil, fmt.Errorf("suggestion has no target item")
	}
	if len(sug.Edits) == 0 {
		return nil, fmt.Errorf("suggestion has no edits")
	}

	if sug.ID == "" {
		sug.ID = uuid.NewString()
	}
	seen := make(map[string]struct{}, len(sug.Edits))
	for i := range sug.Edits {
		e := &sug.Edits[i]
		if e.ID == "" {
			e.ID = uuid.NewString()
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("duplicate edit id %q", e.ID)
		}
		seen[e.ID] = struct{}{}
		if e.Priority == "" {
			e.Priority = domain.PriorityMedium
		}
	}
	for id, d := range sug.Decisions {
		if _, ok := seen[id]; !ok {
			delete(sug.Decisions, id)
			continue
		}
		if !d.Status.Valid() {
			return nil, fmt.Errorf("edit %q has unknown decision status %q", id, d.Status)
		}
	}
	if sug.Decisions == nil {
		sug.Decisions = make(map[string]domain.EditDecision, len(sug.Edits))
	}

	now := s.now()
	if sug.CreatedAt.IsZero() {
		sug.CreatedAt = now
	}
	sug.UpdatedAt = now

	if err := s.store.Save(ctx, &sug); err != nil {
		return nil, fmt.Errorf("save suggestion: %w", err)
	}

	s.logger.Info("imported suggestion",
		"suggestion_id", sug.ID,
		"item_id", sug.TargetItemID,
		"edits", len(sug.Edits),
	)
	return &sug, nil
}

func (s *SuggestionService) Get(ctx context.Context, id string) (*domain.Suggestion, error) {
	return s.store.Get(ctx, id)
}

func (s *SuggestionService) List(ctx context.Context) ([]domain.Suggestion, error) {
	return s.store.List(ctx)
}

func (s *SuggestionService) Approve(ctx context.Context, id, editID string) (*domain.Suggestion, error) {
	return s.mutate(ctx, id, func(sug *domain.Suggestion, now time.Time) error {
		return approval.Approve(sug, editID, now)
	})
}

func (s *SuggestionService) Reject(ctx context.Context, id, editID string) (*domain.Suggestion, error) {
	return s.mutate(ctx, id, func(sug *domain.Suggestion, now time.Time) error {
		return approval.Reject(sug, editID, now)
	})
}

func (s *SuggestionService) Modify(ctx context.Context, id, editID, text string) (*domain.Suggestion, error) {
	return s.mutate(ctx, id, func(sug *domain.Suggestion, now time.Time) error {
		return approval.Modify(sug, editID, text, now)
	})
}

func (s *SuggestionService) Reset(ctx context.Context, id, editID string) (*domain.Suggestion, error) {
	return s.mutate(ctx, id, func(sug *domain.Suggestion, now time.Time) error {
		return approval.Reset(sug, editID, now)
	})
}

// Batch applies one action to every edit matching the filter and returns
// how many edits it touched.
func (s *SuggestionService) Batch(ctx context.Context, id string, action domain.BatchAction, filter domain.EditFilter) (*domain.Suggestion, int, error) {
	var touched int
	sug, err := s.mutate(ctx, id, func(sug *domain.Suggestion, now time.Time) error {
		n, err := approval.Batch(sug, action, filter, now)
		touched = n
		return err
	})
	return sug, touched, err
}

func (s *SuggestionService) mutate(ctx context.Context, id string, fn func(*domain.Suggestion, time.Time) error) (*domain.Suggestion, error) {
	var (
		sug    *domain.Suggestion
		before domain.OverallStatus
	)

	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		sug, err = s.store.Get(txCtx, id)
		if err != nil {
			return fmt.Errorf("load suggestion: %w", err)
		}

		before = approval.Status(sug)
		if err := fn(sug, s.now()); err != nil {
			return err
		}

		if err := s.store.Save(txCtx, sug); err != nil {
			return fmt.Errorf("save suggestion: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	after := approval.Status(sug)
	s.logger.Info("suggestion updated",
		"suggestion_id", sug.ID,
		"from", before,
		"to", after,
	)

	if after == domain.OverallFullyApproved && before != after {
		s.publishApproved(ctx, sug)
	}

	return sug, nil
}

func (s *SuggestionService) publishApproved(ctx context.Context, sug *domain.Suggestion) {
	if s.publisher == nil {
		return
	}

	msg := &domain.ApprovedSuggestion{
		SuggestionID: sug.ID,
		TargetItemID: sug.TargetItemID,
		Edits:        approval.Applied(sug),
		ApprovedAt:   sug.UpdatedAt,
	}
	if err := s.publisher.PublishSuggestion(ctx, msg); err != nil {
		s.logger.Error("failed to publish approved suggestion",
			"suggestion_id", sug.ID,
			"error", err,
		)
	}
}
