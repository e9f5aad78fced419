package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"content_auditor/internal/domain"
)

type suggestionRow struct {
	ID           string    `db:"id"`
	TargetItemID int64     `db:"target_item_id"`
	Edits        []byte    `db:"edits"`
	Decisions    []byte    `db:"decisions"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

const suggestionColumns = "id, target_item_id, edits, decisions, created_at, updated_at"

// SuggestionStore keeps suggestions with their edits and decisions as JSONB.
type SuggestionStore struct {
	db *sqlx.DB
}

func NewSuggestionStore(db *sqlx.DB) *SuggestionStore {
	return &SuggestionStore{db: db}
}

// Get loads one suggestion. Inside a transaction the row is locked until
// commit so concurrent decisions serialize.
func (s *SuggestionStore) Get(ctx context.Context, id string) (*domain.Suggestion, error) {
	query := "SELECT " + suggestionColumns + " FROM suggestions WHERE id = $1"
	if GetTxFromContext(ctx) != nil {
		query += " FOR UPDATE"
	}

	var row suggestionRow
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrSuggestionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get suggestion: %w", err)
	}

	return row.toDomain()
}

func (s *SuggestionStore) List(ctx context.Context) ([]domain.Suggestion, error) {
	var rows []suggestionRow
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows,
		"SELECT "+suggestionColumns+" FROM suggestions ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}

	out := make([]domain.Suggestion, 0, len(rows))
	for _, r := range rows {
		sug, err := r.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, *sug)
	}
	return out, nil
}

func (s *SuggestionStore) Save(ctx context.Context, sug *domain.Suggestion) error {
	edits, err := json.Marshal(sug.Edits)
	if err != nil {
		return fmt.Errorf("marshal edits: %w", err)
	}
	decisions := sug.Decisions
	if decisions == nil {
		decisions = map[string]domain.EditDecision{}
	}
	decisionsJSON, err := json.Marshal(decisions)
	if err != nil {
		return fmt.Errorf("marshal decisions: %w", err)
	}

	_, err = GetExecutor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO suggestions (id, target_item_id, edits, decisions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			target_item_id = EXCLUDED.target_item_id,
			edits = EXCLUDED.edits,
			decisions = EXCLUDED.decisions,
			updated_at = EXCLUDED.updated_at`,
		sug.ID,
		sug.TargetItemID,
		edits,
		decisionsJSON,
		sug.CreatedAt,
		sug.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert suggestion: %w", err)
	}
	return nil
}

func (r suggestionRow) toDomain() (*domain.Suggestion, error) {
	sug := &domain.Suggestion{
		ID:           r.ID,
		TargetItemID: r.TargetItemID,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
	if err := json.Unmarshal(r.Edits, &sug.Edits); err != nil {
		return nil, fmt.Errorf("decode edits of %s: %w", r.ID, err)
	}
	if err := json.Unmarshal(r.Decisions, &sug.Decisions); err != nil {
		return nil, fmt.Errorf("decode decisions of %s: %w", r.ID, err)
	}
	if sug.Decisions == nil {
		sug.Decisions = map[string]domain.EditDecision{}
	}
	return sug, nil
}
