package domain

import "time"

// ContentItem is a read-only view of one CMS post.
type ContentItem struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	URL            string    `json:"url"`
	Status         string    `json:"status"`
	Categories     []int64   `json:"categories"`
	PublishedAt    time.Time `json:"publishedAt"`
	LastModifiedAt time.Time `json:"lastModifiedAt"`
	Body           string    `json:"-"` // rendered HTML, never persisted
}

// ItemQuery is the server-side filter the CMS understands.
type ItemQuery struct {
	Statuses    []string
	CategoryIDs []int64
	Page        int
	PerPage     int
}

type ItemPage struct {
	Items      []ContentItem
	Page       int
	TotalPages int
	TotalItems int
}

// Taxonomy names a CMS term collection.
type Taxonomy string

const (
	TaxonomyCategories Taxonomy = "categories"
	TaxonomyTags       Taxonomy = "tags"
)
