package approval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content_auditor/internal/domain"
)

func newSuggestion(priorities ...domain.Priority) *domain.Suggestion {
	s := &domain.Suggestion{ID: "s1", TargetItemID: 42}
	for i, p := range priorities {
		s.Edits = append(s.Edits, domain.Edit{
			ID:            string(rune('a' + i)),
			Kind:          "style",
			OriginalText:  "old",
			SuggestedText: "new",
			Priority:      p,
		})
	}
	return s
}

func TestStatus_NoDecisions(t *testing.T) {
	s := newSuggestion(domain.PriorityLow, domain.PriorityLow)
	assert.Equal(t, domain.OverallPending, Status(s))
}

func TestStatus_NoEdits(t *testing.T) {
	assert.Equal(t, domain.OverallPending, Status(&domain.Suggestion{}))
}

func TestStatus_PartiallyApproved(t *testing.T) {
	now := time.Now()
	s := newSuggestion(domain.PriorityLow, domain.PriorityLow, domain.PriorityLow, domain.PriorityLow)

	require.NoError(t, Approve(s, "a", now))
	require.NoError(t, Approve(s, "b", now))
	require.NoError(t, Reject(s, "c", now))

	assert.Equal(t, domain.OverallPartiallyApproved, Status(s))
}

func TestStatus_AllModifiedIsFullyApproved(t *testing.T) {
	now := time.Now()
	s := newSuggestion(domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh)

	for _, e := range s.Edits {
		require.NoError(t, Modify(s, e.ID, "rewritten", now))
	}

	assert.Equal(t, domain.OverallFullyApproved, Status(s))
	d := Decision(s, "b")
	assert.Equal(t, domain.EditModified, d.Status)
	assert.Equal(t, "rewritten", d.ModifiedText)
	require.NotNil(t, d.ModifiedAt)
}

func TestStatus_AllRejected(t *testing.T) {
	now := time.Now()
	s := newSuggestion(domain.PriorityLow, domain.PriorityLow)

	_, err := Batch(s, domain.RejectAll, domain.EditFilter{}, now)
	require.NoError(t, err)

	assert.Equal(t, domain.OverallRejected, Status(s))
}

func TestStatus_MatchesRuleForEveryCombination(t *testing.T) {
	statuses := []domain.EditStatus{domain.EditPending, domain.EditApproved, domain.EditRejected, domain.EditModified}
	now := time.Now()

	for _, a := range statuses {
		for _, b := range statuses {
			for _, c := range statuses {
				s := newSuggestion(domain.PriorityLow, domain.PriorityLow, domain.PriorityLow)
				combo := []domain.EditStatus{a, b, c}
				for i, st := range combo {
					applyStatus(t, s, s.Edits[i].ID, st, now)
				}

				assert.Equal(t, expectedStatus(combo), Status(s), "combination %v", combo)
			}
		}
	}
}

func TestRevisingDecision(t *testing.T) {
	now := time.Now()
	s := newSuggestion(domain.PriorityLow)

	require.NoError(t, Reject(s, "a", now))
	assert.Equal(t, domain.OverallRejected, Status(s))

	require.NoError(t, Approve(s, "a", now))
	assert.Equal(t, domain.OverallFullyApproved, Status(s))

	require.NoError(t, Reset(s, "a", now))
	assert.Equal(t, domain.OverallPending, Status(s))
}

func TestBatch_FilteredByPriority(t *testing.T) {
	now := time.Now()
	s := newSuggestion(
		domain.PriorityHigh,
		domain.PriorityLow,
		domain.PriorityHigh,
		domain.PriorityMedium,
		domain.PriorityLow,
	)

	n, err := Batch(s, domain.ApproveAll, domain.EditFilter{Priority: domain.PriorityHigh}, now)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, domain.EditApproved, Decision(s, "a").Status)
	assert.Equal(t, domain.EditApproved, Decision(s, "c").Status)
	for _, id := range []string{"b", "d", "e"} {
		assert.Equal(t, domain.EditPending, Decision(s, id).Status, id)
	}
	assert.Equal(t, domain.OverallPartiallyApproved, Status(s))
}

func TestBatch_FilteredByKind(t *testing.T) {
	now := time.Now()
	s := newSuggestion(domain.PriorityLow, domain.PriorityLow)
	s.Edits[1].Kind = "fact"

	n, err := Batch(s, domain.RejectAll, domain.EditFilter{Kind: "fact"}, now)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, domain.EditPending, Decision(s, "a").Status)
	assert.Equal(t, domain.EditRejected, Decision(s, "b").Status)
}

func TestBatch_UnknownAction(t *testing.T) {
	s := newSuggestion(domain.PriorityLow)
	_, err := Batch(s, domain.BatchAction("merge_all"), domain.EditFilter{}, time.Now())
	assert.Error(t, err)
}

func TestUnknownEdit(t *testing.T) {
	s := newSuggestion(domain.PriorityLow)
	err := Approve(s, "zzz", time.Now())
	assert.ErrorIs(t, err, domain.ErrEditNotFound)
}

func TestEffectiveText(t *testing.T) {
	now := time.Now()
	s := newSuggestion(domain.PriorityLow, domain.PriorityLow, domain.PriorityLow)
	require.NoError(t, Approve(s, "a", now))
	require.NoError(t, Modify(s, "b", "custom", now))

	text, ok := EffectiveText(s, s.Edits[0])
	assert.True(t, ok)
	assert.Equal(t, "new", text)

	text, ok = EffectiveText(s, s.Edits[1])
	assert.True(t, ok)
	assert.Equal(t, "custom", text)

	_, ok = EffectiveText(s, s.Edits[2])
	assert.False(t, ok)
}

func applyStatus(t *testing.T, s *domain.Suggestion, id string, st domain.EditStatus, now time.Time) {
	t.Helper()
	var err error
	switch st {
	case domain.EditApproved:
		err = Approve(s, id, now)
	case domain.EditRejected:
		err = Reject(s, id, now)
	case domain.EditModified:
		err = Modify(s, id, "x", now)
	case domain.EditPending:
		err = Reset(s, id, now)
	}
	require.NoError(t, err)
}

func expectedStatus(combo []domain.EditStatus) domain.OverallStatus {
	var accepted, rejected int
	for _, st := range combo {
		switch st {
		case domain.EditApproved, domain.EditModified:
			accepted++
		case domain.EditRejected:
			rejected++
		}
	}
	switch {
	case accepted == len(combo):
		return domain.OverallFullyApproved
	case rejected == len(combo):
		return domain.OverallRejected
	case accepted+rejected == 0:
		return domain.OverallPending
	default:
		return domain.OverallPartiallyApproved
	}
}

func TestApplied(t *testing.T) {
	now := time.Now()
	s := newSuggestion(domain.PriorityLow, domain.PriorityLow, domain.PriorityLow)
	require.NoError(t, Modify(s, "a", "custom", now))
	require.NoError(t, Reject(s, "b", now))
	require.NoError(t, Approve(s, "c", now))

	assert.Equal(t, []domain.AppliedEdit{
		{EditID: "a", OriginalText: "old", Text: "custom"},
		{EditID: "c", OriginalText: "old", Text: "new"},
	}, Applied(s))
}
