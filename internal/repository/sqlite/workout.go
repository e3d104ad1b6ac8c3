package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/model"
	"github.com/sakif/workoutify/internal/repository"
)

var _ repository.WorkoutRepository = (*DB)(nil)

const (
	workoutColumns = `workout_id, user_id, start_time, end_time, label`
	setColumns     = `set_id, workout_id, exercise_id, num_reps, weight_amount, set_order`
)

// CreateWorkout inserts a workout and all of w.Sets in one transaction.
//
// ATOMICITY:
// Every reference is checked inside the transaction before anything is
// written. A missing user is a plain NotFound. A missing exercise on any set
// is an AtomicityFailure: the transaction rolls back and not even the
// workout row survives.
func (db *DB) CreateWorkout(ctx context.Context, w *model.Workout) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "users", "user_id", w.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("user", w.UserID)
		}

		for _, s := range w.Sets {
			ok, err := exists(ctx, tx, "exercises", "exercise_id", s.ExerciseID)
			if err != nil {
				return err
			}
			if !ok {
				return apperror.AtomicityFailure("exercise", s.ExerciseID)
			}
		}

		result, err := tx.ExecContext(ctx,
			`INSERT INTO workouts (user_id, start_time, end_time, label) VALUES (?, ?, ?, ?)`,
			w.UserID, formatTime(w.StartTime), formatTime(w.EndTime), w.Label,
		)
		if err != nil {
			return fmt.Errorf("sqlite: creating workout: %w", err)
		}
		if w.ID, err = result.LastInsertId(); err != nil {
			return fmt.Errorf("sqlite: reading workout id: %w", err)
		}

		for i := range w.Sets {
			w.Sets[i].WorkoutID = w.ID
			if err := insertSet(ctx, tx, &w.Sets[i]); err != nil {
				return err
			}
		}

		w.StartTime, w.EndTime = normalize(w.StartTime), normalize(w.EndTime)
		if w.Sets == nil {
			w.Sets = []model.WorkoutSet{}
		}
		return nil
	})
}

// CreateWorkoutSet adds one set to an existing workout. A zero SetOrder
// places the set after the workout's current last set.
func (db *DB) CreateWorkoutSet(ctx context.Context, s *model.WorkoutSet) error {
	return db.withTx(ctx, func(tx *sql.Tx) error {
		ok, err := exists(ctx, tx, "workouts", "workout_id", s.WorkoutID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("workout", s.WorkoutID)
		}
		ok, err = exists(ctx, tx, "exercises", "exercise_id", s.ExerciseID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("exercise", s.ExerciseID)
		}

		if s.SetOrder == 0 {
			if err := tx.QueryRowContext(ctx,
				`SELECT COALESCE(MAX(set_order), 0) + 1 FROM workout_sets WHERE workout_id = ?`, s.WorkoutID,
			).Scan(&s.SetOrder); err != nil {
				return fmt.Errorf("sqlite: reading next set order for workout %d: %w", s.WorkoutID, err)
			}
		}
		return insertSet(ctx, tx, s)
	})
}

func insertSet(ctx context.Context, q querier, s *model.WorkoutSet) error {
	result, err := q.ExecContext(ctx,
		`INSERT INTO workout_sets (workout_id, exercise_id, num_reps, weight_amount, set_order)
		 VALUES (?, ?, ?, ?, ?)`,
		s.WorkoutID, s.ExerciseID, s.Reps, s.Weight, s.SetOrder,
	)
	if err != nil {
		if translated := translateConstraint(err, "workout set", s.WorkoutID); translated != nil {
			return translated
		}
		return fmt.Errorf("sqlite: creating workout set: %w", err)
	}
	if s.ID, err = result.LastInsertId(); err != nil {
		return fmt.Errorf("sqlite: reading workout set id: %w", err)
	}
	return nil
}

func (db *DB) GetWorkoutByID(ctx context.Context, id int64) (*model.Workout, error) {
	row := db.conn.QueryRowContext(ctx, `SELECT `+workoutColumns+` FROM workouts WHERE workout_id = ?`, id)
	w, err := scanWorkout(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("workout", id)
		}
		return nil, fmt.Errorf("sqlite: getting workout %d: %w", id, err)
	}

	workouts := []model.Workout{*w}
	if err := db.attachSets(ctx, workouts); err != nil {
		return nil, err
	}
	return &workouts[0], nil
}

// ListWorkoutsForUser returns the user's workouts in the window with their
// sets eagerly loaded.
func (db *DB) ListWorkoutsForUser(ctx context.Context, userID int64, filter repository.TimeFilter) ([]model.Workout, error) {
	query, args := userWindowQuery(`SELECT `+workoutColumns+` FROM workouts`, "start_time", "workout_id", userID, filter)

	workouts, err := db.queryWorkouts(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing workouts for user %d: %w", userID, err)
	}
	if err := db.attachSets(ctx, workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// queryWorkouts reads workout rows and closes the cursor before returning,
// so the caller is free to run the follow-up set query.
func (db *DB) queryWorkouts(ctx context.Context, query string, args ...any) ([]model.Workout, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := []model.Workout{}
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workout row: %w", err)
		}
		workouts = append(workouts, *w)
	}
	return workouts, rows.Err()
}

// attachSets loads the sets of every workout with a single query and
// distributes them, ordered by set_order.
func (db *DB) attachSets(ctx context.Context, workouts []model.Workout) error {
	if len(workouts) == 0 {
		return nil
	}

	ids := make([]int64, len(workouts))
	index := make(map[int64]int, len(workouts))
	for i := range workouts {
		ids[i] = workouts[i].ID
		index[workouts[i].ID] = i
		workouts[i].Sets = []model.WorkoutSet{}
	}

	marks, args := placeholders(ids)
	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+setColumns+` FROM workout_sets
		 WHERE workout_id IN (`+marks+`)
		 ORDER BY workout_id, set_order, set_id`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("sqlite: loading workout sets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s model.WorkoutSet
		if err := rows.Scan(&s.ID, &s.WorkoutID, &s.ExerciseID, &s.Reps, &s.Weight, &s.SetOrder); err != nil {
			return fmt.Errorf("sqlite: scanning workout set row: %w", err)
		}
		i := index[s.WorkoutID]
		workouts[i].Sets = append(workouts[i].Sets, s)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("sqlite: iterating workout sets: %w", err)
	}
	return nil
}

// DeleteWorkout removes the workout and, by cascade, its sets.
func (db *DB) DeleteWorkout(ctx context.Context, id int64) error {
	return deleteByID(ctx, db.conn, "workouts", "workout_id", "workout", id)
}

func (db *DB) DeleteWorkoutSet(ctx context.Context, id int64) error {
	return deleteByID(ctx, db.conn, "workout_sets", "set_id", "workout set", id)
}

// ListSetRecords returns every set the user logged in workouts starting at
// or after since (all time when since is nil), joined with the exercise
// catalog, oldest first.
func (db *DB) ListSetRecords(ctx context.Context, userID int64, since *time.Time) ([]model.SetRecord, error) {
	query := `
		SELECT w.workout_id, w.start_time, e.exercise_id, e.exercise_name, e.primary_muscle,
		       s.num_reps, s.weight_amount
		FROM workout_sets s
		JOIN workouts w ON w.workout_id = s.workout_id
		JOIN exercises e ON e.exercise_id = s.exercise_id
		WHERE w.user_id = ?`
	args := []any{userID}
	if since != nil {
		query += ` AND w.start_time >= ?`
		args = append(args, formatCutoff(*since))
	}
	query += ` ORDER BY w.start_time, w.workout_id, s.set_order, s.set_id`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing set records for user %d: %w", userID, err)
	}
	defer rows.Close()

	records := []model.SetRecord{}
	for rows.Next() {
		var (
			r     model.SetRecord
			start string
		)
		if err := rows.Scan(&r.WorkoutID, &start, &r.ExerciseID, &r.ExerciseName, &r.PrimaryMuscle, &r.Reps, &r.Weight); err != nil {
			return nil, fmt.Errorf("sqlite: scanning set record: %w", err)
		}
		if r.StartTime, err = parseTime(start); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating set records: %w", err)
	}
	return records, nil
}

func scanWorkout(sc scanner) (*model.Workout, error) {
	var (
		w          model.Workout
		start, end string
	)
	if err := sc.Scan(&w.ID, &w.UserID, &start, &end, &w.Label); err != nil {
		return nil, err
	}
	var err error
	if w.StartTime, err = parseTime(start); err != nil {
		return nil, err
	}
	if w.EndTime, err = parseTime(end); err != nil {
		return nil, err
	}
	return &w, nil
}
