package wordpress

// Post is the subset of the wp/v2 posts resource the auditor reads.
type Post struct {
	ID          int64    `json:"id"`
	DateGMT     string   `json:"date_gmt"`
	ModifiedGMT string   `json:"modified_gmt"`
	Link        string   `json:"link"`
	Status      string   `json:"status"`
	Title       Rendered `json:"title"`
	Content     Rendered `json:"content"`
	Categories  []int64  `json:"categories"`
}

type Rendered struct {
	Rendered string `json:"rendered"`
}

// Term is a category or tag.
type Term struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// APIError is the error envelope returned by the REST API.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
