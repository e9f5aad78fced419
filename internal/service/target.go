package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"content_auditor/internal/domain"
)

const defaultPerPage = 100

// TargetResolver turns an assessment configuration into the ordered list
// of items to analyze.
type TargetResolver struct {
	source  ContentSource
	perPage int
	logger  *slog.Logger
}

func NewTargetResolver(source ContentSource, perPage int, logger *slog.Logger) *TargetResolver {
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	return &TargetResolver{
		source:  source,
		perPage: perPage,
		logger:  logger.With("site", source.ID()),
	}
}

// Resolve fetches every page matching the status and category filters,
// then applies the excluded ids and the date range locally.
func (r *TargetResolver) Resolve(ctx context.Context, cfg domain.AssessmentConfig) ([]domain.ContentItem, error) {
	fetched, err := fetchAll(ctx, r.source, domain.ItemQuery{
		Statuses:    cfg.StatusFilter,
		CategoryIDs: cfg.CategoryIDs,
		PerPage:     r.perPage,
	})
	if err != nil {
		return nil, err
	}

	excluded := make(map[int64]struct{}, len(cfg.ExcludedIDs))
	for _, id := range cfg.ExcludedIDs {
		excluded[id] = struct{}{}
	}

	targets := make([]domain.ContentItem, 0, len(fetched))
	for _, item := range fetched {
		if _, skip := excluded[item.ID]; skip {
			continue
		}
		if !cfg.DateRange.Contains(referenceDate(item)) {
			continue
		}
		targets = append(targets, item)
	}

	r.logger.Info("resolved targets",
		"fetched", len(fetched),
		"targets", len(targets),
	)

	if len(targets) == 0 {
		return nil, domain.ErrNoTargetsFound
	}
	return targets, nil
}

// referenceDate is the publication date, or the modification date for
// items that were never published.
func referenceDate(item domain.ContentItem) time.Time {
	if item.PublishedAt.IsZero() {
		return item.LastModifiedAt
	}
	return item.PublishedAt
}

// fetchAll walks every page of the query and drops repeated ids, keeping
// the first occurrence. Pages can shift while being walked.
func fetchAll(ctx context.Context, source ContentSource, q domain.ItemQuery) ([]domain.ContentItem, error) {
	var (
		items []domain.ContentItem
		seen  = make(map[int64]struct{})
	)

	for page := 1; ; page++ {
		q.Page = page
		resp, err := source.ListItems(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("fetch page %d: %w", page, err)
		}

		for _, item := range resp.Items {
			if _, dup := seen[item.ID]; dup {
				continue
			}
			seen[item.ID] = struct{}{}
			items = append(items, item)
		}

		if len(resp.Items) == 0 || page >= resp.TotalPages {
			break
		}
	}

	return items, nil
}
