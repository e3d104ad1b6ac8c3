package model

import "time"

// Workout is a training session owned by a user. Sets are loaded eagerly
// by every read that returns workouts, ordered by SetOrder.
type Workout struct {
	ID        int64        `json:"workout_id" db:"workout_id"`
	UserID    int64        `json:"user_id"    db:"user_id"`
	StartTime time.Time    `json:"start_time" db:"start_time"`
	EndTime   time.Time    `json:"end_time"   db:"end_time"`
	Label     string       `json:"label"      db:"label"`
	Sets      []WorkoutSet `json:"sets"`
}

// Volume is the sum of every set's volume.
func (w Workout) Volume() float64 {
	var total float64
	for _, s := range w.Sets {
		total += s.Volume()
	}
	return total
}

// WorkoutSet is one set of one exercise inside a workout.
type WorkoutSet struct {
	ID         int64   `json:"set_id"        db:"set_id"`
	WorkoutID  int64   `json:"workout_id"    db:"workout_id"`
	ExerciseID int64   `json:"exercise_id"   db:"exercise_id"`
	Reps       int     `json:"num_reps"      db:"num_reps"`
	Weight     float64 `json:"weight_amount" db:"weight_amount"`
	SetOrder   int     `json:"set_order"     db:"set_order"`
}

// Volume is reps × weight.
func (s WorkoutSet) Volume() float64 {
	return float64(s.Reps) * s.Weight
}

// SetRecord is a flattened set joined with its workout and exercise. It is
// the raw input of the per-exercise and per-muscle reports.
type SetRecord struct {
	WorkoutID     int64
	StartTime     time.Time
	ExerciseID    int64
	ExerciseName  string
	PrimaryMuscle string
	Reps          int
	Weight        float64
}
