package service

import "content_auditor/internal/domain"

// DiffSnapshot compares the stored items with a fresh fetch. The merged
// list follows fetch order: unchanged items keep their stored record, new
// and updated items take the fetched one, deleted items are dropped.
func DiffSnapshot(stored, fetched []domain.ContentItem) (domain.SyncDiff, []domain.ContentItem) {
	storedByID := make(map[int64]domain.ContentItem, len(stored))
	for _, item := range stored {
		storedByID[item.ID] = item
	}

	diff := domain.SyncDiff{
		NewIDs:     []int64{},
		UpdatedIDs: []int64{},
		DeletedIDs: []int64{},
	}
	merged := make([]domain.ContentItem, 0, len(fetched))
	fetchedIDs := make(map[int64]struct{}, len(fetched))

	for _, item := range fetched {
		if _, dup := fetchedIDs[item.ID]; dup {
			continue
		}
		fetchedIDs[item.ID] = struct{}{}

		prev, ok := storedByID[item.ID]
		switch {
		case !ok:
			diff.NewIDs = append(diff.NewIDs, item.ID)
			merged = append(merged, item)
		case !prev.LastModifiedAt.Equal(item.LastModifiedAt):
			diff.UpdatedIDs = append(diff.UpdatedIDs, item.ID)
			merged = append(merged, item)
		default:
			merged = append(merged, prev)
		}
	}

	for _, item := range stored {
		if _, ok := fetchedIDs[item.ID]; !ok {
			diff.DeletedIDs = append(diff.DeletedIDs, item.ID)
		}
	}

	return diff, merged
}
