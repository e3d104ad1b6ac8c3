package model

// Food is a shared catalog entry. All macro values are per serving.
type Food struct {
	ID               int64   `json:"food_id"            db:"food_id"`
	Name             string  `json:"food_name"          db:"food_name"`
	Category         string  `json:"category"           db:"category"`
	Calories         float64 `json:"calories"           db:"calories"`
	Carbs            float64 `json:"carbs"              db:"carbs"`
	Fats             float64 `json:"fats"               db:"fats"`
	Protein          float64 `json:"protein"            db:"protein"`
	Sugar            float64 `json:"sugar"              db:"sugar"`
	ServingSizeGrams float64 `json:"serving_size_grams" db:"serving_size_grams"`
}

// Macros returns the per-serving nutrition of the food.
func (f Food) Macros() Macros {
	return Macros{
		Calories: f.Calories,
		Carbs:    f.Carbs,
		Fats:     f.Fats,
		Protein:  f.Protein,
		Sugar:    f.Sugar,
	}
}

// Exercise is a shared catalog entry referenced by workout sets.
type Exercise struct {
	ID              int64  `json:"exercise_id"      db:"exercise_id"`
	Name            string `json:"exercise_name"    db:"exercise_name"`
	PrimaryMuscle   string `json:"primary_muscle"   db:"primary_muscle"`
	SecondaryMuscle string `json:"secondary_muscle" db:"secondary_muscle"`
}

// Macros is a bundle of nutrition values. It is used both for a single
// serving and for scaled or summed totals.
type Macros struct {
	Calories float64 `json:"calories"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	Protein  float64 `json:"protein"`
	Sugar    float64 `json:"sugar"`
}

// Scale multiplies every value by q (a serving count).
func (m Macros) Scale(q float64) Macros {
	return Macros{
		Calories: m.Calories * q,
		Carbs:    m.Carbs * q,
		Fats:     m.Fats * q,
		Protein:  m.Protein * q,
		Sugar:    m.Sugar * q,
	}
}

// Add returns the element-wise sum of m and o.
func (m Macros) Add(o Macros) Macros {
	return Macros{
		Calories: m.Calories + o.Calories,
		Carbs:    m.Carbs + o.Carbs,
		Fats:     m.Fats + o.Fats,
		Protein:  m.Protein + o.Protein,
		Sugar:    m.Sugar + o.Sugar,
	}
}
