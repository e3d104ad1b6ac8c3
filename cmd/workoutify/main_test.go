package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/workoutify/internal/apperror"
	"github.com/sakif/workoutify/internal/seed"
)

// run executes one command tree against dbPath from an empty working
// directory and returns its stdout.
func run(t *testing.T, dbPath, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--db", dbPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func newDBPath(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return filepath.Join(dir, "data", "test.db")
}

func TestVersion(t *testing.T) {
	out, err := run(t, newDBPath(t), "", "version")
	require.NoError(t, err)
	assert.Equal(t, "workoutify "+version+"\n", out)
}

func TestSeedAndInspect(t *testing.T) {
	db := newDBPath(t)

	out, err := run(t, db, "", "seed", "--days", "3", "--rand-seed", "42", "--json")
	require.NoError(t, err)

	var res seed.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 5, res.Users)
	assert.Equal(t, 10, res.Exercises)
	assert.Equal(t, 10, res.Foods)
	assert.Equal(t, 15, res.Sleep)
	assert.Equal(t, 45, res.Meals)

	_, err = run(t, db, "", "seed", "--days", "3")
	require.ErrorIs(t, err, seed.ErrNotEmpty)
	assert.Equal(t, exitUserError, exitCode(err))

	_, err = run(t, db, "", "seed", "--days", "2", "--reset")
	require.NoError(t, err)

	out, err = run(t, db, "", "tables")
	require.NoError(t, err)
	assert.Contains(t, out, "users\n")
	assert.Contains(t, out, "meal_items\n")

	out, err = run(t, db, "", "rows", "users", "--json")
	require.NoError(t, err)
	var users []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &users))
	require.Len(t, users, 5)
	assert.Equal(t, "alice@example.com", users[0]["email"])

	out, err = run(t, db, "", "row", "foods", "5", "--json")
	require.NoError(t, err)
	var food map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &food))
	assert.Equal(t, "Oats", food["food_name"])

	_, err = run(t, db, "", "rows", "passwords")
	require.ErrorIs(t, err, apperror.ErrValidation)
}

func TestDeleteConfirmation(t *testing.T) {
	db := newDBPath(t)
	_, err := run(t, db, "", "seed", "--days", "1", "--rand-seed", "7")
	require.NoError(t, err)

	_, err = run(t, db, "no\n", "delete", "users", "5")
	require.NoError(t, err)
	_, err = run(t, db, "", "row", "users", "5")
	require.NoError(t, err, "cancelled delete must keep the row")

	_, err = run(t, db, "yes\n", "delete", "users", "5")
	require.NoError(t, err)
	_, err = run(t, db, "", "row", "users", "5")
	require.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, exitUserError, exitCode(err))

	_, err = run(t, db, "", "delete", "users", "4", "--yes")
	require.NoError(t, err)

	// Seeded foods are eaten every day.
	_, err = run(t, db, "", "delete", "foods", "1", "--yes")
	if err != nil {
		assert.ErrorIs(t, err, apperror.ErrConflict)
	}

	_, err = run(t, db, "", "delete", "users", "abc", "--yes")
	require.ErrorIs(t, err, apperror.ErrValidation)
}

func TestSummaryAndFoods(t *testing.T) {
	db := newDBPath(t)
	_, err := run(t, db, "", "seed", "--days", "5", "--rand-seed", "3")
	require.NoError(t, err)

	out, err := run(t, db, "", "summary", "--user", "1", "--days", "7", "--json")
	require.NoError(t, err)
	var summary struct {
		Sleep          []json.RawMessage `json:"sleep"`
		WorkoutsPerDay []json.RawMessage `json:"workouts_per_day"`
		CaloriesPerDay []json.RawMessage `json:"calories_per_day"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	assert.NotEmpty(t, summary.Sleep)
	assert.NotEmpty(t, summary.CaloriesPerDay)

	_, err = run(t, db, "", "summary", "--user", "1", "--days", "91")
	require.ErrorIs(t, err, apperror.ErrValidation)

	out, err = run(t, db, "", "foods", "search", "BUTTER", "--json")
	require.NoError(t, err)
	var foods []struct {
		Name string `json:"food_name"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &foods))
	require.Len(t, foods, 1)
	assert.Equal(t, "Peanut Butter", foods[0].Name)

	out, err = run(t, db, "", "foods", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Sweet Potato")
}
