package store

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

// Dates are local calendar days in records.DateLayout (YYYY-MM-DD).

type Workout struct {
	ID              string    `json:"id"`
	UserID          string    `json:"userId"`
	Name            string    `json:"name"`
	Type            string    `json:"type,omitempty"`
	Description     string    `json:"description,omitempty"`
	DurationMinutes int       `json:"durationMinutes,omitempty"`
	Date            string    `json:"date"`
	CreatedAt       time.Time `json:"createdAt"`
}

type Exercise struct {
	ID              string `json:"id"`
	WorkoutID       string `json:"workoutId"`
	UserID          string `json:"userId"`
	Name            string `json:"name"`
	Category        string `json:"category,omitempty"`
	RestTimeSeconds int    `json:"restTimeSeconds"`
	Order           int    `json:"order"`
}

type ExerciseSet struct {
	ID         string   `json:"id"`
	ExerciseID string   `json:"exerciseId"`
	UserID     string   `json:"userId"`
	Reps       int      `json:"reps"`
	Weight     *float64 `json:"weight,omitempty"`
	Order      int      `json:"order"`
}

type FoodEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	MealType  string    `json:"mealType"`
	Calories  int       `json:"calories"`
	Protein   float64   `json:"protein"`
	Carbs     float64   `json:"carbs"`
	Fat       float64   `json:"fat"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

type PlannedItem struct {
	ID              string `json:"id"`
	UserID          string `json:"userId"`
	Title           string `json:"title"`
	Type            string `json:"type"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DurationMinutes int    `json:"durationMinutes"`
}

// Profile fields are nullable in the store.
type Profile struct {
	UserID        string   `json:"userId"`
	FullName      *string  `json:"fullName,omitempty"`
	Age           *int     `json:"age,omitempty"`
	HeightCm      *float64 `json:"heightCm,omitempty"`
	WeightKg      *float64 `json:"weightKg,omitempty"`
	FitnessLevel  *string  `json:"fitnessLevel,omitempty"`
	ActivityLevel *string  `json:"activityLevel,omitempty"`
}

type Goals struct {
	UserID         string   `json:"userId"`
	DailyCalories  *int     `json:"dailyCalories,omitempty"`
	ProteinGrams   *float64 `json:"proteinGrams,omitempty"`
	CarbsGrams     *float64 `json:"carbsGrams,omitempty"`
	FatGrams       *float64 `json:"fatGrams,omitempty"`
	WeeklyWorkouts *int     `json:"weeklyWorkouts,omitempty"`
	TargetWeightKg *float64 `json:"targetWeightKg,omitempty"`
}

type ProgressEntry struct {
	ID         string   `json:"id"`
	UserID     string   `json:"userId"`
	Date       string   `json:"date"`
	WeightKg   *float64 `json:"weightKg,omitempty"`
	BodyFatPct *float64 `json:"bodyFatPct,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}
