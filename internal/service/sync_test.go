package service

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"content_auditor/internal/domain"
	"content_auditor/internal/service/mocks"
)

type SnapshotServiceTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	source    *mocks.MockContentSource
	store     *mocks.MockSnapshotStore
	publisher *mocks.MockPublisher

	service  *SnapshotService
	criteria domain.SelectionCriteria
	now      time.Time
	logger   *slog.Logger
}

func (s *SnapshotServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.source = mocks.NewMockContentSource(s.ctrl)
	s.store = mocks.NewMockSnapshotStore(s.ctrl)
	s.publisher = mocks.NewMockPublisher(s.ctrl)

	s.criteria = domain.SelectionCriteria{CategoryIDs: []int64{5}, Statuses: []string{"publish"}}
	s.now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	s.source.EXPECT().ID().Return("blog").AnyTimes()

	s.service = NewSnapshotService(s.source, s.store, s.publisher, s.criteria, 2, s.logger)
	s.service.now = func() time.Time { return s.now }
}

func (s *SnapshotServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestSnapshotServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SnapshotServiceTestSuite))
}

func item(id int64, modified time.Time) domain.ContentItem {
	return domain.ContentItem{
		ID:             id,
		Title:          "post",
		Status:         "publish",
		LastModifiedAt: modified,
		Body:           "<p>body</p>",
	}
}

func (s *SnapshotServiceTestSuite) expectFetch(items ...domain.ContentItem) {
	s.source.EXPECT().ListItems(gomock.Any(), domain.ItemQuery{
		Statuses:    s.criteria.Statuses,
		CategoryIDs: s.criteria.CategoryIDs,
		Page:        1,
		PerPage:     2,
	}).Return(&domain.ItemPage{Items: items, Page: 1, TotalPages: 1, TotalItems: len(items)}, nil)
}

func ids(items []domain.ContentItem) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *SnapshotServiceTestSuite) TestIncrementalUpdate_SetDiff() {
	ctx := context.Background()
	old := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	changed := old.Add(48 * time.Hour)

	stored := &domain.Snapshot{
		SiteID:        "blog",
		TotalArticles: 3,
		Items:         []domain.ContentItem{item(1, old), item(2, old), item(3, old)},
	}
	s.expectFetch(item(2, old), item(3, changed), item(4, old))
	s.store.EXPECT().Get(ctx, "blog").Return(stored, nil)

	var saved *domain.Snapshot
	s.store.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, snap *domain.Snapshot) error {
		saved = snap
		return nil
	})
	s.publisher.EXPECT().PublishSync(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, diff *domain.SyncDiff) error {
		s.Equal([]int64{4}, diff.NewIDs)
		s.Equal([]int64{3}, diff.UpdatedIDs)
		s.Equal([]int64{1}, diff.DeletedIDs)
		s.Equal(domain.SyncIncremental, diff.Mode)
		s.Equal("blog", diff.SiteID)
		return nil
	})

	stats, err := s.service.IncrementalUpdate(ctx)

	s.Require().NoError(err)
	s.Equal(1, stats.New)
	s.Equal(1, stats.Updated)
	s.Equal(1, stats.Deleted)
	s.Equal(1, stats.Unchanged)
	s.Equal(3, stats.Total)
	s.True(stats.Persisted)
	s.True(stats.Published)

	s.Require().NotNil(saved)
	s.Equal([]int64{2, 3, 4}, ids(saved.Items))
	s.Equal(3, saved.TotalArticles)
	s.Equal(s.now, saved.LastUpdatedAt)
	s.Equal(s.criteria, saved.Criteria)
	for _, it := range saved.Items {
		s.Empty(it.Body, "bodies are not persisted")
		if it.ID == 3 {
			s.True(it.LastModifiedAt.Equal(changed))
		}
	}
}

func (s *SnapshotServiceTestSuite) TestIncrementalUpdate_NothingToMerge() {
	ctx := context.Background()

	s.expectFetch()
	s.store.EXPECT().Get(ctx, "blog").Return(nil, domain.ErrSnapshotNotFound)

	stats, err := s.service.IncrementalUpdate(ctx)

	s.Require().NoError(err)
	s.False(stats.Persisted)
	s.Equal(0, stats.Total)
}

func (s *SnapshotServiceTestSuite) TestIncrementalUpdate_FirstRunCreatesSnapshot() {
	ctx := context.Background()
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	s.expectFetch(item(7, t0), item(8, t0))
	s.store.EXPECT().Get(ctx, "blog").Return(nil, domain.ErrSnapshotNotFound)
	s.store.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, snap *domain.Snapshot) error {
		s.Equal([]int64{7, 8}, ids(snap.Items))
		return nil
	})
	s.publisher.EXPECT().PublishSync(ctx, gomock.Any()).Return(nil)

	stats, err := s.service.IncrementalUpdate(ctx)

	s.Require().NoError(err)
	s.Equal(2, stats.New)
}

func (s *SnapshotServiceTestSuite) TestIncrementalUpdate_EmptyFetchDeletesEverything() {
	ctx := context.Background()
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	s.expectFetch()
	s.store.EXPECT().Get(ctx, "blog").Return(&domain.Snapshot{SiteID: "blog", Items: []domain.ContentItem{item(1, t0)}}, nil)
	s.store.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, snap *domain.Snapshot) error {
		s.Empty(snap.Items)
		s.Equal(0, snap.TotalArticles)
		return nil
	})
	s.publisher.EXPECT().PublishSync(ctx, gomock.Any()).Return(nil)

	stats, err := s.service.IncrementalUpdate(ctx)

	s.Require().NoError(err)
	s.Equal(1, stats.Deleted)
}

func (s *SnapshotServiceTestSuite) TestFullUpdate_TwiceIsIdempotent() {
	ctx := context.Background()
	t0 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	upstream := []domain.ContentItem{item(1, t0), item(2, t0)}

	var saves []*domain.Snapshot
	s.store.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, snap *domain.Snapshot) error {
		saves = append(saves, snap)
		return nil
	}).Times(2)

	s.expectFetch(upstream...)
	s.store.EXPECT().Get(ctx, "blog").Return(nil, domain.ErrSnapshotNotFound)
	s.publisher.EXPECT().PublishSync(ctx, gomock.Any()).Return(nil)

	_, err := s.service.FullUpdate(ctx)
	s.Require().NoError(err)

	s.now = s.now.Add(time.Hour)
	s.expectFetch(upstream...)
	s.store.EXPECT().Get(ctx, "blog").DoAndReturn(func(context.Context, string) (*domain.Snapshot, error) {
		return saves[0], nil
	})

	stats, err := s.service.FullUpdate(ctx)
	s.Require().NoError(err)
	s.False(stats.Published, "unchanged content publishes nothing")

	s.Require().Len(saves, 2)
	s.Equal(saves[0].Items, saves[1].Items)
	s.Equal(saves[0].TotalArticles, saves[1].TotalArticles)
	s.NotEqual(saves[0].LastUpdatedAt, saves[1].LastUpdatedAt)
}

func (s *SnapshotServiceTestSuite) TestFullUpdate_PublishFailureIsNotFatal() {
	ctx := context.Background()

	s.expectFetch(item(1, s.now))
	s.store.EXPECT().Get(ctx, "blog").Return(nil, domain.ErrSnapshotNotFound)
	s.store.EXPECT().Save(ctx, gomock.Any()).Return(nil)
	s.publisher.EXPECT().PublishSync(ctx, gomock.Any()).Return(errors.New("broker down"))

	stats, err := s.service.FullUpdate(ctx)

	s.Require().NoError(err)
	s.True(stats.Persisted)
	s.False(stats.Published)
}

func (s *SnapshotServiceTestSuite) TestFullUpdate_ReplacesUnreadableSnapshot() {
	ctx := context.Background()

	s.expectFetch(item(1, s.now), item(2, s.now))
	s.store.EXPECT().Get(ctx, "blog").Return(nil, errors.New("decode snapshot blog: invalid character 'n'"))

	var saved *domain.Snapshot
	s.store.EXPECT().Save(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, snap *domain.Snapshot) error {
		saved = snap
		return nil
	})
	s.publisher.EXPECT().PublishSync(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, diff *domain.SyncDiff) error {
		s.Equal([]int64{1, 2}, diff.NewIDs)
		s.Empty(diff.DeletedIDs)
		return nil
	})

	stats, err := s.service.FullUpdate(ctx)

	s.Require().NoError(err)
	s.True(stats.Persisted)
	s.Equal(2, stats.New)
	s.Require().NotNil(saved)
	s.Equal([]int64{1, 2}, ids(saved.Items))
}

func (s *SnapshotServiceTestSuite) TestIncrementalUpdate_UnreadableSnapshotFails() {
	ctx := context.Background()

	s.expectFetch(item(1, s.now))
	s.store.EXPECT().Get(ctx, "blog").Return(nil, errors.New("decode snapshot blog"))

	_, err := s.service.IncrementalUpdate(ctx)

	s.ErrorContains(err, "load snapshot")
}

func (s *SnapshotServiceTestSuite) TestSync_FetchError() {
	ctx := context.Background()

	s.source.EXPECT().ListItems(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

	_, err := s.service.Sync(ctx, domain.SyncFull)

	s.ErrorContains(err, "fetch items")
}

func (s *SnapshotServiceTestSuite) TestSync_UnknownMode() {
	_, err := s.service.Sync(context.Background(), domain.SyncMode("partial"))
	s.Error(err)
}

func TestDiffSnapshot_ResultEqualsFetchedSet(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	for round := 0; round < 200; round++ {
		var stored, fetched []domain.ContentItem
		storedSet := map[int64]bool{}
		fetchedSet := map[int64]bool{}

		for id := int64(1); id <= 20; id++ {
			if rng.Intn(2) == 0 {
				stored = append(stored, item(id, base))
				storedSet[id] = true
			}
			if rng.Intn(2) == 0 {
				mod := base
				if rng.Intn(3) == 0 {
					mod = base.Add(time.Duration(id) * time.Hour)
				}
				fetched = append(fetched, item(id, mod))
				fetchedSet[id] = true
			}
		}

		diff, merged := DiffSnapshot(stored, fetched)

		if got, want := ids(merged), ids(fetched); !equalIDs(got, want) {
			t.Fatalf("round %d: merged %v, fetched %v", round, got, want)
		}
		for _, id := range diff.NewIDs {
			if storedSet[id] || !fetchedSet[id] {
				t.Fatalf("round %d: %d is not in F\\S", round, id)
			}
		}
		for _, id := range diff.DeletedIDs {
			if !storedSet[id] || fetchedSet[id] {
				t.Fatalf("round %d: %d is not in S\\F", round, id)
			}
		}
		newCount, deletedCount := 0, 0
		for id := range fetchedSet {
			if !storedSet[id] {
				newCount++
			}
		}
		for id := range storedSet {
			if !fetchedSet[id] {
				deletedCount++
			}
		}
		if len(diff.NewIDs) != newCount || len(diff.DeletedIDs) != deletedCount {
			t.Fatalf("round %d: unexpected diff sizes %+v", round, diff)
		}
	}
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
