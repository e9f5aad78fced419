package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"content_auditor/internal/domain"
)

const keyPrefix = "snapshot:"

// record is the persisted shape of one site's snapshot.
type record struct {
	SiteID              string               `json:"siteId"`
	LastUpdatedAt       time.Time            `json:"lastUpdatedAt"`
	TotalArticles       int                  `json:"totalArticles"`
	Items               []domain.ContentItem `json:"items"`
	SelectedCategoryIDs []int64              `json:"selectedCategoryIds"`
	IncludeStatuses     []string             `json:"includeStatuses"`
}

// SnapshotStore keeps each site's snapshot as one JSON value under
// snapshot:{siteId}. A single SET replaces the record atomically.
type SnapshotStore struct {
	client redis.Cmdable
}

func NewSnapshotStore(client redis.Cmdable) *SnapshotStore {
	return &SnapshotStore{client: client}
}

func Key(siteID string) string {
	return keyPrefix + siteID
}

func (s *SnapshotStore) Get(ctx context.Context, siteID string) (*domain.Snapshot, error) {
	raw, err := s.client.Get(ctx, Key(siteID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSnapshotNotFound, siteID)
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", siteID, err)
	}

	return &domain.Snapshot{
		SiteID:        rec.SiteID,
		LastUpdatedAt: rec.LastUpdatedAt,
		TotalArticles: rec.TotalArticles,
		Items:         rec.Items,
		Criteria: domain.SelectionCriteria{
			CategoryIDs: rec.SelectedCategoryIDs,
			Statuses:    rec.IncludeStatuses,
		},
	}, nil
}

func (s *SnapshotStore) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	rec := record{
		SiteID:              snapshot.SiteID,
		LastUpdatedAt:       snapshot.LastUpdatedAt,
		TotalArticles:       snapshot.TotalArticles,
		Items:               snapshot.Items,
		SelectedCategoryIDs: snapshot.Criteria.CategoryIDs,
		IncludeStatuses:     snapshot.Criteria.Statuses,
	}
	if rec.Items == nil {
		rec.Items = []domain.ContentItem{}
	}
	if rec.SelectedCategoryIDs == nil {
		rec.SelectedCategoryIDs = []int64{}
	}
	if rec.IncludeStatuses == nil {
		rec.IncludeStatuses = []string{}
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, Key(snapshot.SiteID), raw, 0).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
