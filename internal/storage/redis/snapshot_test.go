package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content_auditor/internal/domain"
)

func newStore(t *testing.T) (*SnapshotStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewSnapshotStore(client), mr
}

func TestSnapshotStore_SaveAndGet(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	snapshot := &domain.Snapshot{
		SiteID:        "blog",
		LastUpdatedAt: now,
		TotalArticles: 2,
		Items: []domain.ContentItem{
			{ID: 2, Title: "b", URL: "https://example.com/2", Status: "publish", Categories: []int64{3}, PublishedAt: now, LastModifiedAt: now},
			{ID: 1, Title: "a", URL: "https://example.com/1", Status: "publish", Categories: []int64{}, PublishedAt: now, LastModifiedAt: now},
		},
		Criteria: domain.SelectionCriteria{CategoryIDs: []int64{3}, Statuses: []string{"publish"}},
	}

	require.NoError(t, store.Save(ctx, snapshot))

	got, err := store.Get(ctx, "blog")
	require.NoError(t, err)
	assert.Equal(t, snapshot, got)
}

func TestSnapshotStore_PersistedShape(t *testing.T) {
	store, mr := newStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(context.Background(), &domain.Snapshot{
		SiteID:        "blog",
		LastUpdatedAt: now,
		Items:         []domain.ContentItem{{ID: 1, Body: "<p>never stored</p>", LastModifiedAt: now}},
	}))

	raw, err := mr.Get("snapshot:blog")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "blog", doc["siteId"])
	assert.Equal(t, "2025-06-01T12:00:00Z", doc["lastUpdatedAt"])
	assert.Equal(t, []any{}, doc["selectedCategoryIds"])
	assert.Equal(t, []any{}, doc["includeStatuses"])
	assert.NotContains(t, raw, "never stored")
}

func TestSnapshotStore_SaveOverwrites(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, &domain.Snapshot{SiteID: "blog", TotalArticles: 5}))
	require.NoError(t, store.Save(ctx, &domain.Snapshot{SiteID: "blog", TotalArticles: 1}))

	got, err := store.Get(ctx, "blog")
	require.NoError(t, err)
	assert.Equal(t, 1, got.TotalArticles)
}

func TestSnapshotStore_GetMissing(t *testing.T) {
	store, _ := newStore(t)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestSnapshotStore_GetCorrupt(t *testing.T) {
	store, mr := newStore(t)
	require.NoError(t, mr.Set(Key("blog"), "{not json"))

	_, err := store.Get(context.Background(), "blog")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestSnapshotStore_ServerDown(t *testing.T) {
	store, mr := newStore(t)
	mr.Close()

	err := store.Save(context.Background(), &domain.Snapshot{SiteID: "blog"})
	assert.Error(t, err)
}

func TestNewClient_RequiresAddress(t *testing.T) {
	_, err := NewClient(Config{})
	assert.ErrorIs(t, err, ErrEmptyAddress)
}

func TestNewClient_Pings(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(Config{Address: mr.Addr()})
	require.NoError(t, err)
	assert.NoError(t, client.Close())
}
