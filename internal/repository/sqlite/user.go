package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/model"
	"github.com/sakif/workoutify/internal/repository"
)

var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a user and fills in the generated id.
// A duplicate email is reported as Conflict.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	result, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (email, name, surname, location) VALUES (?, ?, ?, ?)`,
		user.Email, user.Name, user.Surname, user.Location,
	)
	if err != nil {
		if conflict := translateConstraint(err, "user", user.Email); conflict != nil {
			return conflict
		}
		return fmt.Errorf("sqlite: creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading user id: %w", err)
	}
	user.ID = id
	return nil
}

func (db *DB) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	return db.getUser(ctx, `WHERE user_id = ?`, id, id)
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return db.getUser(ctx, `WHERE email = ?`, email, email)
}

func (db *DB) getUser(ctx context.Context, where string, arg any, ref any) (*model.User, error) {
	var u model.User
	err := db.conn.QueryRowContext(ctx,
		`SELECT user_id, email, name, surname, location FROM users `+where, arg,
	).Scan(&u.ID, &u.Email, &u.Name, &u.Surname, &u.Location)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", ref)
		}
		return nil, fmt.Errorf("sqlite: getting user %v: %w", ref, err)
	}
	return &u, nil
}

func (db *DB) ListUsers(ctx context.Context) ([]model.User, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT user_id, email, name, surname, location FROM users ORDER BY user_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.Surname, &u.Location); err != nil {
			return nil, fmt.Errorf("sqlite: scanning user row: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating users: %w", err)
	}
	return users, nil
}

// DeleteUser removes the user. Sleep, workouts (with sets), meals (with
// items) and sessions go with it through ON DELETE CASCADE.
func (db *DB) DeleteUser(ctx context.Context, id int64) error {
	return deleteByID(ctx, db.conn, "users", "user_id", "user", id)
}
