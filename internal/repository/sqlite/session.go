package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/model"
	"github.com/sakif/workoutify/internal/repository"
)

var _ repository.SessionRepository = (*DB)(nil)

// CreateSession stores a session. The caller assigns the id.
func (db *DB) CreateSession(ctx context.Context, s *model.Session) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO sessions (session_id, user_id, page, created_at, last_seen_at) VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.Page, formatTime(s.CreatedAt), formatTime(s.LastSeenAt),
	)
	if err != nil {
		if translated := translateConstraint(err, "session", s.ID); translated != nil {
			return translated
		}
		return fmt.Errorf("sqlite: creating session: %w", err)
	}
	s.CreatedAt, s.LastSeenAt = normalize(s.CreatedAt), normalize(s.LastSeenAt)
	return nil
}

func (db *DB) GetSession(ctx context.Context, id string) (*model.Session, error) {
	var (
		s                 model.Session
		created, lastSeen string
	)
	err := db.conn.QueryRowContext(ctx,
		`SELECT session_id, user_id, page, created_at, last_seen_at FROM sessions WHERE session_id = ?`, id,
	).Scan(&s.ID, &s.UserID, &s.Page, &created, &lastSeen)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("session", id)
		}
		return nil, fmt.Errorf("sqlite: getting session %s: %w", id, err)
	}
	if s.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	if s.LastSeenAt, err = parseTime(lastSeen); err != nil {
		return nil, err
	}
	return &s, nil
}

// UpdateSession saves the page and last-seen time of a session.
func (db *DB) UpdateSession(ctx context.Context, s *model.Session) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE sessions SET page = ?, last_seen_at = ? WHERE session_id = ?`,
		s.Page, formatTime(s.LastSeenAt), s.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating session %s: %w", s.ID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound("session", s.ID)
	}
	s.LastSeenAt = normalize(s.LastSeenAt)
	return nil
}

func (db *DB) DeleteSession(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM sessions WHERE session_id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting session %s: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if n == 0 {
		return apperror.NotFound("session", id)
	}
	return nil
}
