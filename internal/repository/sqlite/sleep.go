package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/model"
	"github.com/sakif/workoutify/internal/repository"
)

var _ repository.SleepRepository = (*DB)(nil)

const sleepColumns = `sleep_id, user_id, start_time, end_time, quality_score`

// CreateSleep inserts a sleep session for an existing user.
func (db *DB) CreateSleep(ctx context.Context, s *model.Sleep) error {
	ok, err := exists(ctx, db.conn, "users", "user_id", s.UserID)
	if err != nil {
		return err
	}
	if !ok {
		return notFound("user", s.UserID)
	}

	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO sleep (user_id, start_time, end_time, quality_score) VALUES (?, ?, ?, ?)`,
		s.UserID, formatTime(s.StartTime), formatTime(s.EndTime), nullInt(s.QualityScore),
	)
	if err != nil {
		if translated := translateConstraint(err, "sleep", s.UserID); translated != nil {
			return translated
		}
		return fmt.Errorf("sqlite: creating sleep: %w", err)
	}

	if s.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading sleep id: %w", err)
	}
	s.StartTime, s.EndTime = normalize(s.StartTime), normalize(s.EndTime)
	return nil
}

func (db *DB) GetSleepByID(ctx context.Context, id int64) (*model.Sleep, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+sleepColumns+` FROM sleep WHERE sleep_id = ?`, id)
	s, err := scanSleep(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("sleep", id)
		}
		return nil, fmt.Errorf("sqlite: getting sleep %d: %w", id, err)
	}
	return s, nil
}

// ListSleepForUser returns the user's sleep sessions whose start time is at
// or after filter.Since, ordered by start time.
func (db *DB) ListSleepForUser(ctx context.Context, userID int64, filter repository.TimeFilter) ([]model.Sleep, error) {
	query, args := userWindowQuery(`SELECT `+sleepColumns+` FROM sleep`, "start_time", "sleep_id", userID, filter)

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing sleep for user %d: %w", userID, err)
	}
	defer rows.Close()

	sessions := []model.Sleep{}
	for rows.Next() {
		s, err := scanSleep(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning sleep row: %w", err)
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating sleep: %w", err)
	}
	return sessions, nil
}

func (db *DB) DeleteSleep(ctx context.Context, id int64) error {
	return deleteByID(ctx, db.conn, "sleep", "sleep_id", "sleep", id)
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSleep(sc scanner) (*model.Sleep, error) {
	var (
		s          model.Sleep
		start, end string
		quality    sql.NullInt64
	)
	if err := sc.Scan(&s.ID, &s.UserID, &start, &end, &quality); err != nil {
		return nil, err
	}
	var err error
	if s.StartTime, err = parseTime(start); err != nil {
		return nil, err
	}
	if s.EndTime, err = parseTime(end); err != nil {
		return nil, err
	}
	s.QualityScore = intPtr(quality)
	return &s, nil
}

// userWindowQuery appends the user, time window, ordering and limit clauses
// shared by every per-user listing. The tie-breaker keeps rows with equal
// timestamps in insertion order.
func userWindowQuery(base, timeColumn, idColumn string, userID int64, f repository.TimeFilter) (string, []any) {
	query := base + ` WHERE user_id = ?`
	args := []any{userID}

	if f.Since != nil {
		query += fmt.Sprintf(` AND %s >= ?`, timeColumn)
		args = append(args, formatCutoff(*f.Since))
	}

	dir := "DESC"
	if f.Order == repository.OrderOldestFirst {
		dir = "ASC"
	}
	query += fmt.Sprintf(` ORDER BY %s %s, %s %s`, timeColumn, dir, idColumn, dir)

	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}
	return query, args
}
