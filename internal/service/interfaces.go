package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"content_auditor/internal/domain"
)

type ContentSource interface {
	ID() string
	ListItems(ctx context.Context, q domain.ItemQuery) (*domain.ItemPage, error)
	Terms(ctx context.Context, taxonomy domain.Taxonomy) (map[int64]string, error)
}

type HeuristicAnalyzer interface {
	Analyze(html string, checks domain.EnabledChecks) (*domain.HeuristicResult, error)
}

type QualitativeAnalyzer interface {
	Analyze(ctx context.Context, req domain.QualitativeRequest) (*domain.QualitativeResult, error)
}

type SnapshotStore interface {
	// Get returns domain.ErrSnapshotNotFound when the site was never synced.
	Get(ctx context.Context, siteID string) (*domain.Snapshot, error)
	Save(ctx context.Context, snapshot *domain.Snapshot) error
}

type SuggestionStore interface {
	Get(ctx context.Context, id string) (*domain.Suggestion, error)
	Save(ctx context.Context, suggestion *domain.Suggestion) error
	List(ctx context.Context) ([]domain.Suggestion, error)
}

type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Publisher interface {
	PublishSync(ctx context.Context, diff *domain.SyncDiff) error
	PublishSuggestion(ctx context.Context, approved *domain.ApprovedSuggestion) error
	Close() error
}
