// Package ratelimit keeps per-model request and token quotas over a
// trailing one-minute window so calls can be refused before they are sent.
package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"content_auditor/internal/domain"
)

const windowSize = time.Minute

// Quota is the per-minute allowance for one model. Zero means unlimited.
type Quota struct {
	RequestsPerMinute int
	TokensPerMinute   int
}

type entry struct {
	at     time.Time
	tokens int
}

// Window tracks usage per model identifier in memory.
type Window struct {
	mu       sync.Mutex
	quotas   map[string]Quota
	fallback Quota
	usage    map[string][]entry
	now      func() time.Time
}

// NewWindow creates a limiter; fallback applies to models without their own quota.
func NewWindow(fallback Quota, quotas map[string]Quota) *Window {
	if quotas == nil {
		quotas = map[string]Quota{}
	}
	return &Window{
		quotas:   quotas,
		fallback: fallback,
		usage:    make(map[string][]entry),
		now:      time.Now,
	}
}

// Acquire records one request of the given token estimate, or returns
// ErrRateLimited without recording anything.
func (w *Window) Acquire(model string, tokens int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	entries := w.prune(model, now)
	quota := w.quota(model)

	if quota.RequestsPerMinute > 0 && len(entries)+1 > quota.RequestsPerMinute {
		return fmt.Errorf("%w: %s requests %d/min", domain.ErrRateLimited, model, quota.RequestsPerMinute)
	}
	if quota.TokensPerMinute > 0 && sum(entries)+tokens > quota.TokensPerMinute {
		return fmt.Errorf("%w: %s tokens %d/min", domain.ErrRateLimited, model, quota.TokensPerMinute)
	}

	w.usage[model] = append(entries, entry{at: now, tokens: tokens})
	return nil
}

// Usage returns requests and tokens currently inside the window.
func (w *Window) Usage(model string) (requests, tokens int) {
	w.mu.Lock()
	defer w.mu.Unlock()

	entries := w.prune(model, w.now())
	return len(entries), sum(entries)
}

func (w *Window) quota(model string) Quota {
	if q, ok := w.quotas[model]; ok {
		return q
	}
	return w.fallback
}

func (w *Window) prune(model string, now time.Time) []entry {
	entries := w.usage[model]
	cutoff := now.Add(-windowSize)
	i := 0
	for i < len(entries) && !entries[i].at.After(cutoff) {
		i++
	}
	entries = entries[i:]
	w.usage[model] = entries
	return entries
}

func sum(entries []entry) int {
	total := 0
	for _, e := range entries {
		total += e.tokens
	}
	return total
}
