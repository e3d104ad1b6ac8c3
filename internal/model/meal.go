package model

import "time"

// Meal is an eating event owned by a user. Items are loaded eagerly, each
// with its Food, so nutrition can be computed without further reads.
type Meal struct {
	ID     int64      `json:"meal_id"      db:"meal_id"`
	UserID int64      `json:"user_id"      db:"user_id"`
	Time   time.Time  `json:"time_of_meal" db:"time_of_meal"`
	Name   string     `json:"meal_name"    db:"meal_name"`
	Items  []MealItem `json:"meal_items"`
}

// Nutrition sums the nutrition of every item.
func (m Meal) Nutrition() Macros {
	var total Macros
	for _, it := range m.Items {
		total = total.Add(it.Nutrition())
	}
	return total
}

// MealItem is a quantity of one food inside a meal. Quantity is a number of
// servings.
type MealItem struct {
	ID       int64   `json:"meal_item_id" db:"meal_item_id"`
	MealID   int64   `json:"meal_id"      db:"meal_id"`
	FoodID   int64   `json:"food_id"      db:"food_id"`
	Quantity float64 `json:"quantity"     db:"quantity"`
	Food     *Food   `json:"food,omitempty"`
}

// Nutrition is quantity × per-serving macros. An item whose food was not
// loaded contributes nothing.
func (it MealItem) Nutrition() Macros {
	if it.Food == nil {
		return Macros{}
	}
	return it.Food.Macros().Scale(it.Quantity)
}

// DayNutrition is the meals of one calendar day with their combined totals.
type DayNutrition struct {
	Date   string `json:"date"`
	Meals  []Meal `json:"meals"`
	Totals Macros `json:"totals"`
}
