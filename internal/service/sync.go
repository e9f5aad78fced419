package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"content_auditor/internal/domain"
)

// SnapshotService keeps the local content index of one site in step with
// the CMS. Updates to the same site must not run concurrently.
type SnapshotService struct {
	source    ContentSource
	store     SnapshotStore
	publisher Publisher
	criteria  domain.SelectionCriteria
	perPage   int
	logger    *slog.Logger
	now       func() time.Time
}

// NewSnapshotService builds the service; publisher may be nil.
func NewSnapshotService(
	source ContentSource,
	store SnapshotStore,
	publisher Publisher,
	criteria domain.SelectionCriteria,
	perPage int,
	logger *slog.Logger,
) *SnapshotService {
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	return &SnapshotService{
		source:    source,
		store:     store,
		publisher: publisher,
		criteria:  criteria,
		perPage:   perPage,
		logger:    logger.With("site", source.ID()),
		now:       time.Now,
	}
}

func (s *SnapshotService) Sync(ctx context.Context, mode domain.SyncMode) (*domain.SyncStats, error) {
	switch mode {
	case domain.SyncFull:
		return s.FullUpdate(ctx)
	case domain.SyncIncremental, "":
		return s.IncrementalUpdate(ctx)
	default:
		return nil, fmt.Errorf("unknown sync mode %q", mode)
	}
}

// FullUpdate replaces the snapshot with everything currently matching.
func (s *SnapshotService) FullUpdate(ctx context.Context) (*domain.SyncStats, error) {
	startTime := s.now()
	s.logger.Info("starting full sync",
		"statuses", s.criteria.Statuses,
		"categories", s.criteria.CategoryIDs,
	)

	fetched, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	// The stored set only feeds the published diff. An unreadable snapshot
	// is overwritten rather than blocking the rebuild.
	stored, err := s.load(ctx)
	if err != nil {
		s.logger.Warn("stored snapshot unreadable, diffing against empty set", "error", err)
		stored = nil
	}

	diff, _ := DiffSnapshot(stored, fetched)
	diff.Mode = domain.SyncFull

	return s.persist(ctx, fetched, diff, len(fetched), startTime)
}

// IncrementalUpdate merges the fetched set into the stored snapshot by id.
// Nothing is written when the fetch is empty and no snapshot exists yet.
func (s *SnapshotService) IncrementalUpdate(ctx context.Context) (*domain.SyncStats, error) {
	startTime := s.now()
	s.logger.Info("starting incremental sync")

	fetched, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.store.Get(ctx, s.source.ID())
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		if len(fetched) == 0 {
			s.logger.Info("nothing to sync, no snapshot and no items")
			return &domain.SyncStats{
				SiteID:   s.source.ID(),
				Mode:     domain.SyncIncremental,
				Duration: s.now().Sub(startTime),
			}, nil
		}
		snapshot = &domain.Snapshot{SiteID: s.source.ID()}
	case err != nil:
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	diff, merged := DiffSnapshot(snapshot.Items, fetched)
	diff.Mode = domain.SyncIncremental

	return s.persist(ctx, merged, diff, len(fetched), startTime)
}

func (s *SnapshotService) persist(ctx context.Context, items []domain.ContentItem, diff domain.SyncDiff, fetched int, startTime time.Time) (*domain.SyncStats, error) {
	now := s.now()
	snapshot := &domain.Snapshot{
		SiteID:        s.source.ID(),
		LastUpdatedAt: now,
		TotalArticles: len(items),
		Items:         withoutBodies(items),
		Criteria:      s.criteria,
	}

	if err := s.store.Save(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}

	diff.SiteID = s.source.ID()
	diff.SyncedAt = now

	stats := &domain.SyncStats{
		SiteID:    s.source.ID(),
		Mode:      diff.Mode,
		Fetched:   fetched,
		New:       len(diff.NewIDs),
		Updated:   len(diff.UpdatedIDs),
		Deleted:   len(diff.DeletedIDs),
		Unchanged: len(items) - len(diff.NewIDs) - len(diff.UpdatedIDs),
		Total:     snapshot.TotalArticles,
		Persisted: true,
	}

	if s.publisher != nil && !diff.Empty() {
		if err := s.publisher.PublishSync(ctx, &diff); err != nil {
			s.logger.Error("failed to publish sync diff", "error", err)
		} else {
			stats.Published = true
		}
	}

	stats.Duration = s.now().Sub(startTime)

	s.logger.Info("sync completed",
		"mode", stats.Mode,
		"fetched", stats.Fetched,
		"new", stats.New,
		"updated", stats.Updated,
		"deleted", stats.Deleted,
		"total", stats.Total,
		"published", stats.Published,
		"duration", stats.Duration,
	)

	return stats, nil
}

func (s *SnapshotService) fetch(ctx context.Context) ([]domain.ContentItem, error) {
	items, err := fetchAll(ctx, s.source, domain.ItemQuery{
		Statuses:    s.criteria.Statuses,
		CategoryIDs: s.criteria.CategoryIDs,
		PerPage:     s.perPage,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch items: %w", err)
	}
	s.logger.Debug("fetched items", "count", len(items))
	return items, nil
}

func (s *SnapshotService) load(ctx context.Context) ([]domain.ContentItem, error) {
	snapshot, err := s.store.Get(ctx, s.source.ID())
	if errors.Is(err, domain.ErrSnapshotNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	return snapshot.Items, nil
}

func withoutBodies(items []domain.ContentItem) []domain.ContentItem {
	out := make([]domain.ContentItem, len(items))
	for i, item := range items {
		item.Body = ""
		out[i] = item
	}
	return out
}
