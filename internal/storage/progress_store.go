package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wenci-bit/LifePRG-sub002/internal/engine"
)

// MainUserKey identifies the single local user of the CLI.
const MainUserKey = "main_user"

// ProgressStore persists engine progress snapshots and the activity
// log. It implements engine.Store.
type ProgressStore struct {
	db *sql.DB
}

func NewProgressStore(db *sql.DB) *ProgressStore {
	return &ProgressStore{db: db}
}

// LoadProgress returns the decoded snapshot, or (nil, nil) when the
// user has none yet.
func (s *ProgressStore) LoadProgress(ctx context.Context, userID string) (*engine.ProgressState, error) {
	row := s.db.QueryRowContext(ctx, `SELECT state FROM progress WHERE user_id = ?`, userID)

	var raw string
	if err := row.Scan(&raw); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("progress get: %w", err)
	}

	var st engine.ProgressState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return nil, fmt.Errorf("progress decode: %w", err)
	}
	st.Normalize()
	return &st, nil
}

// SaveProgress upserts the snapshot and appends the activity record in
// one transaction.
func (s *ProgressStore) SaveProgress(ctx context.Context, userID string, st *engine.ProgressState, rec engine.ActivityRecord) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("progress encode: %w", err)
	}

	return WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO progress (user_id, state, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(user_id) DO UPDATE SET state = excluded.state, updated_at = excluded.updated_at
		`, userID, string(raw), time.Now().UTC()); err != nil {
			return fmt.Errorf("progress upsert: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO activity_log (id, user_id, kind, exp, coins, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, rec.ID, rec.UserID, rec.Kind, rec.Exp, rec.Coins, rec.At); err != nil {
			return fmt.Errorf("activity insert: %w", err)
		}
		return nil
	})
}

// RecentActivity lists the newest activity log rows for a user.
func (s *ProgressStore) RecentActivity(ctx context.Context, userID string, limit int) ([]engine.ActivityRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, kind, exp, coins, created_at
		FROM activity_log
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("activity list: %w", err)
	}
	defer rows.Close()

	var out []engine.ActivityRecord
	for rows.Next() {
		var rec engine.ActivityRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Kind, &rec.Exp, &rec.Coins, &rec.At); err != nil {
			return nil, fmt.Errorf("activity scan: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("activity rows: %w", err)
	}
	return out, nil
}
