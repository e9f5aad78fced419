package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content_auditor/internal/domain"
)

type fakeSyncer struct {
	mu       sync.Mutex
	calls    []domain.SyncMode
	err      error
	deadline bool
	onSync   func()
}

func (f *fakeSyncer) Sync(ctx context.Context, mode domain.SyncMode) (*domain.SyncStats, error) {
	f.mu.Lock()
	f.calls = append(f.calls, mode)
	_, f.deadline = ctx.Deadline()
	f.mu.Unlock()

	if f.onSync != nil {
		f.onSync()
	}
	return &domain.SyncStats{Mode: mode}, f.err
}

func (f *fakeSyncer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStart_RunsEverySiteOnStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	failing := &fakeSyncer{err: errors.New("cms unavailable")}
	last := &fakeSyncer{onSync: cancel}

	s, err := NewScheduler([]Site{
		{ID: "one", Syncer: failing},
		{ID: "two", Syncer: last},
	}, Config{Schedule: "@daily", RunOnStart: true}, discardLogger())
	require.NoError(t, err)

	err = s.Start(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, failing.count())
	assert.Equal(t, 1, last.count())
	assert.Equal(t, []domain.SyncMode{domain.SyncIncremental}, last.calls)
	assert.True(t, last.deadline)
}

func TestStart_StopsBetweenSitesWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := &fakeSyncer{onSync: cancel}
	second := &fakeSyncer{}

	s, err := NewScheduler([]Site{
		{ID: "one", Syncer: first},
		{ID: "two", Syncer: second},
	}, Config{Schedule: "0 3 * * *", Mode: domain.SyncFull, RunOnStart: true}, discardLogger())
	require.NoError(t, err)

	_ = s.Start(ctx)

	assert.Equal(t, []domain.SyncMode{domain.SyncFull}, first.calls)
	assert.Equal(t, 0, second.count())
}

func TestNewScheduler_InvalidSchedule(t *testing.T) {
	_, err := NewScheduler(nil, Config{Schedule: "every now and then"}, discardLogger())
	assert.Error(t, err)
}

func TestStart_FiresOnSchedule(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	syncer := &fakeSyncer{onSync: cancel}
	s, err := NewScheduler([]Site{{ID: "one", Syncer: syncer}}, Config{Schedule: "@every 1s"}, discardLogger())
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduled sync never ran")
	}
	assert.Equal(t, 1, syncer.count())
}
