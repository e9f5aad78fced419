package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"content_auditor/internal/domain"
)

const insertBatchSize = 500

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type snapshotRow struct {
	SiteID              string         `db:"site_id"`
	LastUpdatedAt       time.Time      `db:"last_updated_at"`
	TotalArticles       int            `db:"total_articles"`
	SelectedCategoryIDs pq.Int64Array  `db:"selected_category_ids"`
	IncludeStatuses     pq.StringArray `db:"include_statuses"`
}

type itemRow struct {
	ItemID         int64         `db:"item_id"`
	Title          string        `db:"title"`
	URL            string        `db:"url"`
	Status         string        `db:"status"`
	Categories     pq.Int64Array `db:"categories"`
	PublishedAt    sql.NullTime  `db:"published_at"`
	LastModifiedAt time.Time     `db:"last_modified_at"`
}

// SnapshotStore keeps one snapshot per site in sync_snapshots and its items
// in snapshot_items.
type SnapshotStore struct {
	db *sqlx.DB
	tm *TransactionManager
}

func NewSnapshotStore(db *sqlx.DB, tm *TransactionManager) *SnapshotStore {
	return &SnapshotStore{db: db, tm: tm}
}

func (s *SnapshotStore) Get(ctx context.Context, siteID string) (*domain.Snapshot, error) {
	exec := GetExecutor(ctx, s.db)

	var row snapshotRow
	err := sqlx.GetContext(ctx, exec, &row, `
		SELECT site_id, last_updated_at, total_articles, selected_category_ids, include_statuses
		FROM sync_snapshots
		WHERE site_id = $1`, siteID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSnapshotNotFound, siteID)
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}

	var rows []itemRow
	err = sqlx.SelectContext(ctx, exec, &rows, `
		SELECT item_id, title, url, status, categories, published_at, last_modified_at
		FROM snapshot_items
		WHERE site_id = $1
		ORDER BY position`, siteID)
	if err != nil {
		return nil, fmt.Errorf("get snapshot items: %w", err)
	}

	items := make([]domain.ContentItem, len(rows))
	for i, r := range rows {
		items[i] = domain.ContentItem{
			ID:             r.ItemID,
			Title:          r.Title,
			URL:            r.URL,
			Status:         r.Status,
			Categories:     []int64(r.Categories),
			PublishedAt:    r.PublishedAt.Time,
			LastModifiedAt: r.LastModifiedAt,
		}
	}

	return &domain.Snapshot{
		SiteID:        row.SiteID,
		LastUpdatedAt: row.LastUpdatedAt,
		TotalArticles: row.TotalArticles,
		Items:         items,
		Criteria: domain.SelectionCriteria{
			CategoryIDs: []int64(row.SelectedCategoryIDs),
			Statuses:    []string(row.IncludeStatuses),
		},
	}, nil
}

// Save replaces the site's snapshot and all of its items atomically.
func (s *SnapshotStore) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	return s.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, s.db)

		_, err := exec.ExecContext(txCtx, `
			INSERT INTO sync_snapshots (site_id, last_updated_at, total_articles, selected_category_ids, include_statuses)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (site_id) DO UPDATE SET
				last_updated_at = EXCLUDED.last_updated_at,
				total_articles = EXCLUDED.total_articles,
				selected_category_ids = EXCLUDED.selected_category_ids,
				include_statuses = EXCLUDED.include_statuses`,
			snapshot.SiteID,
			snapshot.LastUpdatedAt,
			snapshot.TotalArticles,
			pq.Int64Array(nonNilIDs(snapshot.Criteria.CategoryIDs)),
			pq.StringArray(nonNilStrings(snapshot.Criteria.Statuses)),
		)
		if err != nil {
			return fmt.Errorf("upsert snapshot: %w", err)
		}

		if _, err := exec.ExecContext(txCtx, "DELETE FROM snapshot_items WHERE site_id = $1", snapshot.SiteID); err != nil {
			return fmt.Errorf("clear snapshot items: %w", err)
		}

		for start := 0; start < len(snapshot.Items); start += insertBatchSize {
			end := min(start+insertBatchSize, len(snapshot.Items))
			if err := s.insertItems(txCtx, exec, snapshot.SiteID, start, snapshot.Items[start:end]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *SnapshotStore) insertItems(ctx context.Context, exec sqlx.ExtContext, siteID string, offset int, items []domain.ContentItem) error {
	q := psql.Insert("snapshot_items").Columns(
		"site_id", "item_id", "position", "title", "url", "status",
		"categories", "published_at", "last_modified_at",
	)
	for i, item := range items {
		q = q.Values(
			siteID,
			item.ID,
			offset+i,
			item.Title,
			item.URL,
			item.Status,
			pq.Int64Array(nonNilIDs(item.Categories)),
			sql.NullTime{Time: item.PublishedAt, Valid: !item.PublishedAt.IsZero()},
			item.LastModifiedAt,
		)
	}

	query, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build item insert: %w", err)
	}
	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert snapshot items: %w", err)
	}
	return nil
}

func nonNilIDs(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
