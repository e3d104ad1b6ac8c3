package sqlite

import (
	"database/sql"
	"fmt"
)

// migration is one versioned schema step. Applied versions are recorded in
// schema_migrations, so each step runs exactly once per database file.
type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS users (
	user_id  INTEGER PRIMARY KEY AUTOINCREMENT,
	email    TEXT NOT NULL UNIQUE,
	name     TEXT NOT NULL DEFAULT '',
	surname  TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS sleep (
	sleep_id      INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id       INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
	start_time    TEXT NOT NULL,
	end_time      TEXT NOT NULL,
	quality_score INTEGER CHECK (quality_score BETWEEN 1 AND 10)
);
CREATE INDEX IF NOT EXISTS idx_sleep_user_start ON sleep(user_id, start_time);

CREATE TABLE IF NOT EXISTS exercises (
	exercise_id      INTEGER PRIMARY KEY AUTOINCREMENT,
	exercise_name    TEXT NOT NULL,
	primary_muscle   TEXT NOT NULL DEFAULT '',
	secondary_muscle TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS workouts (
	workout_id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id    INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
	start_time TEXT NOT NULL,
	end_time   TEXT NOT NULL,
	label      TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_workouts_user_start ON workouts(user_id, start_time);

CREATE TABLE IF NOT EXISTS workout_sets (
	set_id        INTEGER PRIMARY KEY AUTOINCREMENT,
	workout_id    INTEGER NOT NULL REFERENCES workouts(workout_id) ON DELETE CASCADE,
	exercise_id   INTEGER NOT NULL REFERENCES exercises(exercise_id) ON DELETE RESTRICT,
	num_reps      INTEGER NOT NULL CHECK (num_reps > 0),
	weight_amount REAL NOT NULL CHECK (weight_amount >= 0),
	set_order     INTEGER NOT NULL CHECK (set_order > 0)
);
CREATE INDEX IF NOT EXISTS idx_workout_sets_workout ON workout_sets(workout_id);
CREATE INDEX IF NOT EXISTS idx_workout_sets_exercise ON workout_sets(exercise_id);

CREATE TABLE IF NOT EXISTS foods (
	food_id            INTEGER PRIMARY KEY AUTOINCREMENT,
	food_name          TEXT NOT NULL,
	category           TEXT NOT NULL DEFAULT '',
	calories           REAL NOT NULL DEFAULT 0 CHECK (calories >= 0),
	carbs              REAL NOT NULL DEFAULT 0 CHECK (carbs >= 0),
	fats               REAL NOT NULL DEFAULT 0 CHECK (fats >= 0),
	protein            REAL NOT NULL DEFAULT 0 CHECK (protein >= 0),
	sugar              REAL NOT NULL DEFAULT 0 CHECK (sugar >= 0),
	serving_size_grams REAL NOT NULL DEFAULT 0 CHECK (serving_size_grams >= 0)
);
CREATE INDEX IF NOT EXISTS idx_foods_name ON foods(food_name);

CREATE TABLE IF NOT EXISTS meals (
	meal_id      INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id      INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
	time_of_meal TEXT NOT NULL,
	meal_name    TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_meals_user_time ON meals(user_id, time_of_meal);

CREATE TABLE IF NOT EXISTS meal_items (
	meal_item_id INTEGER PRIMARY KEY AUTOINCREMENT,
	meal_id      INTEGER NOT NULL REFERENCES meals(meal_id) ON DELETE CASCADE,
	food_id      INTEGER NOT NULL REFERENCES foods(food_id) ON DELETE RESTRICT,
	quantity     REAL NOT NULL CHECK (quantity >= 0)
);
CREATE INDEX IF NOT EXISTS idx_meal_items_meal ON meal_items(meal_id);
CREATE INDEX IF NOT EXISTS idx_meal_items_food ON meal_items(food_id);
`,
	},
	{
		version: 2,
		name:    "sessions",
		sql: `
CREATE TABLE IF NOT EXISTS sessions (
	session_id   TEXT PRIMARY KEY,
	user_id      INTEGER NOT NULL REFERENCES users(user_id) ON DELETE CASCADE,
	page         TEXT NOT NULL,
	created_at   TEXT NOT NULL,
	last_seen_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`,
	},
}

// migrate applies every migration not yet recorded in schema_migrations.
// Each step runs in its own transaction together with its bookkeeping row.
func (db *DB) migrate() error {
	if _, err := db.conn.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
	version    INTEGER PRIMARY KEY,
	name       TEXT NOT NULL,
	applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`); err != nil {
		return fmt.Errorf("ensuring schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var applied int
		err := db.conn.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&applied)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("checking migration %d: %w", m.version, err)
		}

		tx, err := db.conn.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", m.version, err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("applying migration %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version, name) VALUES (?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", m.version, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration version.
func (db *DB) SchemaVersion() (int, error) {
	var v sql.NullInt64
	if err := db.conn.QueryRow(`SELECT MAX(version) FROM schema_migrations`).Scan(&v); err != nil {
		return 0, fmt.Errorf("sqlite: reading schema version: %w", err)
	}
	return int(v.Int64), nil
}
