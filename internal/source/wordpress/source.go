// Package wordpress lists posts and taxonomy terms from a WordPress site
// through its REST API.
package wordpress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"content_auditor/internal/domain"
)

const (
	postsPath  = "/wp-json/wp/v2/posts"
	termsPath  = "/wp-json/wp/v2/"
	gmtLayout  = "2006-01-02T15:04:05"
	maxPerPage = 100
)

type Config struct {
	SiteID            string
	BaseURL           string
	Username          string
	AppPassword       string
	PerPage           int
	Timeout           time.Duration
	MaxAttempts       int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	RequestsPerSecond float64
}

// Source is the content source of one site.
type Source struct {
	httpClient     *http.Client
	siteID         string
	baseURL        string
	username       string
	appPassword    string
	perPage        int
	maxAttempts    int
	initialBackoff time.Duration
	maxBackoff     time.Duration
	limiter        *rate.Limiter
	logger         *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Source {
	perPage := cfg.PerPage
	if perPage <= 0 || perPage > maxPerPage {
		perPage = maxPerPage
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	return &Source{
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		siteID:         cfg.SiteID,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		username:       cfg.Username,
		appPassword:    cfg.AppPassword,
		perPage:        perPage,
		maxAttempts:    maxAttempts,
		initialBackoff: cfg.InitialBackoff,
		maxBackoff:     cfg.MaxBackoff,
		limiter:        rate.NewLimiter(limit, 1),
		logger:         logger.With("site", cfg.SiteID),
	}
}

func (s *Source) ID() string {
	return s.siteID
}

// ListItems fetches one page of posts matching the query.
func (s *Source) ListItems(ctx context.Context, q domain.ItemQuery) (*domain.ItemPage, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	perPage := q.PerPage
	if perPage <= 0 || perPage > maxPerPage {
		perPage = s.perPage
	}

	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("orderby", "id")
	params.Set("order", "asc")
	if len(q.Statuses) > 0 {
		params.Set("status", strings.Join(q.Statuses, ","))
	}
	if len(q.CategoryIDs) > 0 {
		params.Set("categories", joinIDs(q.CategoryIDs))
	}

	var posts []Post
	header, err := s.get(ctx, postsPath, params, &posts)
	if err != nil {
		return nil, fmt.Errorf("list posts page %d: %w", page, err)
	}

	items, err := s.transform(posts)
	if err != nil {
		return nil, fmt.Errorf("list posts page %d: %w", page, err)
	}

	result := &domain.ItemPage{
		Items:      items,
		Page:       page,
		TotalPages: headerInt(header, "X-WP-TotalPages"),
		TotalItems: headerInt(header, "X-WP-Total"),
	}

	s.logger.Debug("fetched page",
		"page", page,
		"items", len(result.Items),
		"total_pages", result.TotalPages,
	)

	return result, nil
}

// Terms returns every term of the taxonomy keyed by id.
func (s *Source) Terms(ctx context.Context, taxonomy domain.Taxonomy) (map[int64]string, error) {
	names := make(map[int64]string)

	for page := 1; ; page++ {
		params := url.Values{}
		params.Set("page", strconv.Itoa(page))
		params.Set("per_page", strconv.Itoa(maxPerPage))

		var terms []Term
		header, err := s.get(ctx, termsPath+string(taxonomy), params, &terms)
		if err != nil {
			return names, fmt.Errorf("list %s page %d: %w", taxonomy, page, err)
		}

		for _, t := range terms {
			names[t.ID] = html.UnescapeString(t.Name)
		}

		if page >= headerInt(header, "X-WP-TotalPages") || len(terms) == 0 {
			break
		}
	}

	return names, nil
}

// permanentError is not worth retrying.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func (s *Source) get(ctx context.Context, path string, params url.Values, out any) (http.Header, error) {
	endpoint := s.baseURL + path + "?" + params.Encode()

	var (
		header http.Header
		err    error
	)

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err = s.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		header, err = s.doRequest(ctx, endpoint, out)
		if err == nil {
			return header, nil
		}

		var perm *permanentError
		if errors.As(err, &perm) || attempt == s.maxAttempts {
			break
		}

		backoff := s.calculateBackoff(attempt)
		s.logger.Warn("request failed, retrying",
			"attempt", attempt,
			"backoff", backoff,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
	}

	return nil, fmt.Errorf("after %d attempts: %w", s.maxAttempts, err)
}

func (s *Source) doRequest(ctx context.Context, endpoint string, out any) (http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &permanentError{fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "ContentAuditor/1.0")
	if s.username != "" {
		req.SetBasicAuth(s.username, s.appPassword)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		statusErr := fmt.Errorf("unexpected status: %d%s", resp.StatusCode, apiMessage(body))
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return nil, &permanentError{statusErr}
		}
		return nil, statusErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	return resp.Header, nil
}

func (s *Source) calculateBackoff(attempt int) time.Duration {
	backoff := s.initialBackoff
	for i := 1; i < attempt; i++ {
		backoff *= 2
	}
	if s.maxBackoff > 0 && backoff > s.maxBackoff {
		backoff = s.maxBackoff
	}
	return backoff
}

// transform maps posts to items. A post without a usable modified date
// falls back to its publish date; one without either fails the page, since
// leaving it out would make it look deleted.
func (s *Source) transform(posts []Post) ([]domain.ContentItem, error) {
	items := make([]domain.ContentItem, 0, len(posts))

	for _, p := range posts {
		published, pubErr := time.ParseInLocation(gmtLayout, p.DateGMT, time.UTC)
		modified, err := time.ParseInLocation(gmtLayout, p.ModifiedGMT, time.UTC)
		if err != nil {
			if pubErr != nil {
				return nil, fmt.Errorf("post %d has no parseable date (modified_gmt %q, date_gmt %q)",
					p.ID, p.ModifiedGMT, p.DateGMT)
			}
			s.logger.Error("failed to parse modified date, using publish date",
				"item_id", p.ID,
				"modified_gmt", p.ModifiedGMT,
				"error", err,
			)
			modified = published
		}
		if pubErr != nil {
			published = modified
		}

		items = append(items, domain.ContentItem{
			ID:             p.ID,
			Title:          html.UnescapeString(p.Title.Rendered),
			URL:            p.Link,
			Status:         p.Status,
			Categories:     p.Categories,
			PublishedAt:    published,
			LastModifiedAt: modified,
			Body:           p.Content.Rendered,
		})
	}

	return items, nil
}

func apiMessage(body []byte) string {
	var apiErr APIError
	if json.Unmarshal(body, &apiErr) != nil || apiErr.Code == "" {
		return ""
	}
	return fmt.Sprintf(" (%s: %s)", apiErr.Code, apiErr.Message)
}

func headerInt(h http.Header, key string) int {
	n, err := strconv.Atoi(h.Get(key))
	if err != nil {
		return 0
	}
	return n
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
