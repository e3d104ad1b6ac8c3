package model

// DateLayout is the layout of every date key in the reports.
const DateLayout = "2006-01-02"

// Summary is the dashboard payload: three independent daily series.
type Summary struct {
	Sleep          []SleepEntry     `json:"sleep"`
	WorkoutsPerDay []WorkoutsPerDay `json:"workouts_per_day"`
	CaloriesPerDay []CaloriesPerDay `json:"calories_per_day"`
}

type SleepEntry struct {
	Date         string  `json:"date"`
	Hours        float64 `json:"hours"`
	QualityScore *int    `json:"quality_score"`
}

type WorkoutsPerDay struct {
	Date        string  `json:"date"`
	Count       int     `json:"count"`
	TotalWeight float64 `json:"total_weight"`
}

type CaloriesPerDay struct {
	Date     string  `json:"date"`
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Protein  float64 `json:"protein"`
}

// ExercisePR is the heaviest weight a user has ever logged for an exercise.
type ExercisePR struct {
	ExerciseID   int64   `json:"exercise_id"`
	ExerciseName string  `json:"exercise_name"`
	PRWeight     float64 `json:"pr_weight"`
}

// MuscleBalanceEntry is the training volume of one primary muscle in one week.
// WeekStart is the Monday of the week.
type MuscleBalanceEntry struct {
	WeekStart     string  `json:"week_start"`
	PrimaryMuscle string  `json:"primary_muscle"`
	Volume        float64 `json:"volume"`
}

// WorkoutSummary is a compact view of a workout for "recent activity" lists.
type WorkoutSummary struct {
	WorkoutID int64  `json:"workout_id"`
	Date      string `json:"date"`
	Label     string `json:"label"`
	NumSets   int    `json:"num_sets"`
}
