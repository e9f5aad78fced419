package domain

import "time"

type EditStatus string

const (
	EditPending  EditStatus = "pending"
	EditApproved EditStatus = "approved"
	EditRejected EditStatus = "rejected"
	EditModified EditStatus = "modified"
)

// Valid reports whether s is one of the four decision states.
func (s EditStatus) Valid() bool {
	switch s {
	case EditPending, EditApproved, EditRejected, EditModified:
		return true
	}
	return false
}

type OverallStatus string

const (
	OverallPending           OverallStatus = "pending"
	OverallPartiallyApproved OverallStatus = "partially_approved"
	OverallFullyApproved     OverallStatus = "fully_approved"
	OverallRejected          OverallStatus = "rejected"
)

// Edit is one proposed change inside a rewrite suggestion.
type Edit struct {
	ID            string   `json:"id"`
	Kind          string   `json:"kind"`
	OriginalText  string   `json:"originalText"`
	SuggestedText string   `json:"suggestedText"`
	Reason        string   `json:"reason"`
	Priority      Priority `json:"priority"`
}

// EditDecision is the operator's current verdict on one edit.
type EditDecision struct {
	Status       EditStatus `json:"status"`
	ModifiedText string     `json:"modifiedText,omitempty"`
	ModifiedAt   *time.Time `json:"modifiedAt,omitempty"`
}

// Suggestion groups the edits proposed for one content item. The aggregate
// approval status is derived from Decisions, never stored.
type Suggestion struct {
	ID           string                  `json:"id"`
	TargetItemID int64                   `json:"targetItemId"`
	Edits        []Edit                  `json:"edits"`
	Decisions    map[string]EditDecision `json:"perEdit"`
	CreatedAt    time.Time               `json:"createdAt"`
	UpdatedAt    time.Time               `json:"updatedAt"`
}

type BatchAction string

const (
	ApproveAll BatchAction = "approve_all"
	RejectAll  BatchAction = "reject_all"
)

// EditFilter narrows a batch operation. Empty fields match everything.
type EditFilter struct {
	Priority Priority
	Kind     string
}

func (f EditFilter) Matches(e Edit) bool {
	if f.Priority != "" && e.Priority != f.Priority {
		return false
	}
	if f.Kind != "" && e.Kind != f.Kind {
		return false
	}
	return true
}

// AppliedEdit is an accepted edit with the text that should replace the original.
type AppliedEdit struct {
	EditID       string `json:"editId"`
	OriginalText string `json:"originalText"`
	Text         string `json:"text"`
}

// ApprovedSuggestion is handed to the downstream apply step once every
// edit of a suggestion has been accepted.
type ApprovedSuggestion struct {
	SuggestionID string        `json:"suggestionId"`
	TargetItemID int64         `json:"targetItemId"`
	Edits        []AppliedEdit `json:"edits"`
	ApprovedAt   time.Time     `json:"approvedAt"`
}
