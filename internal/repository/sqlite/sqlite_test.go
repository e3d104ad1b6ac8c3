package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/workoutify/internal/model"
)

// newTestDB returns a fresh in-memory database with every migration applied.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func createTestUser(t *testing.T, db *DB, email string) *model.User {
	t.Helper()
	u := &model.User{Email: email, Name: "Test"}
	require.NoError(t, db.CreateUser(context.Background(), u))
	return u
}

func createTestExercise(t *testing.T, db *DB, name, muscle string) *model.Exercise {
	t.Helper()
	e := &model.Exercise{Name: name, PrimaryMuscle: muscle}
	require.NoError(t, db.CreateExercise(context.Background(), e))
	return e
}

func createTestFood(t *testing.T, db *DB, name string, calories float64) *model.Food {
	t.Helper()
	f := &model.Food{Name: name, Calories: calories, Protein: 10, Carbs: 5, Fats: 2, ServingSizeGrams: 100}
	require.NoError(t, db.CreateFood(context.Background(), f))
	return f
}

func countRows(t *testing.T, db *DB, table string) int {
	t.Helper()
	var n int
	require.NoError(t, db.conn.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}

// =========================================================================
// MIGRATION TESTS
// =========================================================================

func TestMigrationsAreRecorded(t *testing.T) {
	db := newTestDB(t)

	v, err := db.SchemaVersion()
	require.NoError(t, err)
	assert.Equal(t, len(migrations), v)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.migrate())
	require.NoError(t, db.migrate())
	assert.Equal(t, len(migrations), countRows(t, db, "schema_migrations"))
}

func TestForeignKeysEnabled(t *testing.T) {
	db := newTestDB(t)

	var on int
	require.NoError(t, db.conn.QueryRow(`PRAGMA foreign_keys`).Scan(&on))
	assert.Equal(t, 1, on)
}

func TestTimestampRoundTrip(t *testing.T) {
	in := time.Date(2024, 3, 9, 23, 15, 42, 999, time.FixedZone("X", 2*3600))
	out, err := parseTime(formatTime(in))
	require.NoError(t, err)
	assert.True(t, normalize(in).Equal(out))
	assert.Equal(t, "2024-03-09 21:15:42", formatTime(in))
}
