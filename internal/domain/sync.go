package domain

import "time"

// SelectionCriteria is the CMS filter a snapshot was built from.
type SelectionCriteria struct {
	CategoryIDs []int64  `json:"selectedCategoryIds"`
	Statuses    []string `json:"includeStatuses"`
}

// Snapshot is the locally persisted content index of one site.
type Snapshot struct {
	SiteID        string
	LastUpdatedAt time.Time
	TotalArticles int
	Items         []ContentItem
	Criteria      SelectionCriteria
}

type SyncMode string

const (
	SyncFull        SyncMode = "full"
	SyncIncremental SyncMode = "incremental"
)

// SyncDiff lists the ids that changed between the stored and fetched sets.
type SyncDiff struct {
	SiteID     string    `json:"siteId"`
	Mode       SyncMode  `json:"mode"`
	NewIDs     []int64   `json:"newIds"`
	UpdatedIDs []int64   `json:"updatedIds"`
	DeletedIDs []int64   `json:"deletedIds"`
	SyncedAt   time.Time `json:"syncedAt"`
}

// Empty reports whether nothing changed.
func (d *SyncDiff) Empty() bool {
	return len(d.NewIDs) == 0 && len(d.UpdatedIDs) == 0 && len(d.DeletedIDs) == 0
}

// SyncStats holds statistics about a sync operation.
type SyncStats struct {
	SiteID    string
	Mode      SyncMode
	Fetched   int
	New       int
	Updated   int
	Deleted   int
	Unchanged int
	Total     int
	Persisted bool
	Published bool
	Duration  time.Duration
}
