// Package approval tracks operator decisions on the edits of a rewrite
// suggestion. Any transition between edit statuses is allowed; the
// aggregate status is always computed from the per-edit decisions.
package approval

import (
	"fmt"
	"time"

	"content_auditor/internal/domain"
)

// Status derives the aggregate status of a suggestion from its decisions.
func Status(s *domain.Suggestion) domain.OverallStatus {
	if s == nil || len(s.Edits) == 0 {
		return domain.OverallPending
	}

	var accepted, rejected int
	for _, e := range s.Edits {
		switch Decision(s, e.ID).Status {
		case domain.EditApproved, domain.EditModified:
			accepted++
		case domain.EditRejected:
			rejected++
		}
	}

	total := len(s.Edits)
	switch {
	case accepted == total:
		return domain.OverallFullyApproved
	case rejected == total:
		return domain.OverallRejected
	case accepted+rejected == 0:
		return domain.OverallPending
	default:
		return domain.OverallPartiallyApproved
	}
}

// Decision returns the current decision for an edit; undecided edits are pending.
func Decision(s *domain.Suggestion, editID string) domain.EditDecision {
	if d, ok := s.Decisions[editID]; ok && d.Status != "" {
		return d
	}
	return domain.EditDecision{Status: domain.EditPending}
}

func Approve(s *domain.Suggestion, editID string, now time.Time) error {
	return set(s, editID, domain.EditDecision{Status: domain.EditApproved}, now)
}

func Reject(s *domain.Suggestion, editID string, now time.Time) error {
	return set(s, editID, domain.EditDecision{Status: domain.EditRejected}, now)
}

// Modify accepts an edit with operator-supplied replacement text.
func Modify(s *domain.Suggestion, editID, text string, now time.Time) error {
	at := now
	return set(s, editID, domain.EditDecision{
		Status:       domain.EditModified,
		ModifiedText: text,
		ModifiedAt:   &at,
	}, now)
}

// Reset returns an edit to pending.
func Reset(s *domain.Suggestion, editID string, now time.Time) error {
	return set(s, editID, domain.EditDecision{Status: domain.EditPending}, now)
}

// Batch applies action to every edit matching filter and returns how many
// edits were touched.
func Batch(s *domain.Suggestion, action domain.BatchAction, filter domain.EditFilter, now time.Time) (int, error) {
	var status domain.EditStatus
	switch action {
	case domain.ApproveAll:
		status = domain.EditApproved
	case domain.RejectAll:
		status = domain.EditRejected
	default:
		return 0, fmt.Errorf("unknown batch action %q", action)
	}

	touched := 0
	for _, e := range s.Edits {
		if !filter.Matches(e) {
			continue
		}
		if err := set(s, e.ID, domain.EditDecision{Status: status}, now); err != nil {
			return touched, err
		}
		touched++
	}
	return touched, nil
}

// EffectiveText returns the text the apply step should use for an edit and
// whether the edit is accepted at all.
func EffectiveText(s *domain.Suggestion, e domain.Edit) (string, bool) {
	d := Decision(s, e.ID)
	switch d.Status {
	case domain.EditApproved:
		return e.SuggestedText, true
	case domain.EditModified:
		return d.ModifiedText, true
	default:
		return "", false
	}
}

// Applied lists the accepted edits with their effective text, in edit order.
func Applied(s *domain.Suggestion) []domain.AppliedEdit {
	var out []domain.AppliedEdit
	for _, e := range s.Edits {
		if text, ok := EffectiveText(s, e); ok {
			out = append(out, domain.AppliedEdit{EditID: e.ID, OriginalText: e.OriginalText, Text: text})
		}
	}
	return out
}

func set(s *domain.Suggestion, editID string, d domain.EditDecision, now time.Time) error {
	if !hasEdit(s, editID) {
		return fmt.Errorf("%w: %s", domain.ErrEditNotFound, editID)
	}
	if s.Decisions == nil {
		s.Decisions = make(map[string]domain.EditDecision, len(s.Edits))
	}
	s.Decisions[editID] = d
	s.UpdatedAt = now
	return nil
}

func hasEdit(s *domain.Suggestion, editID string) bool {
	for _, e := range s.Edits {
		if e.ID == editID {
			return true
		}
	}
	return false
}
