package records

import "time"

// DateLayout is the local calendar day format stored with every record.
const DateLayout = "2006-01-02"

type Intent string

const (
	IntentNone            Intent = "none"
	IntentWorkoutCreation Intent = "workout_creation"
	IntentWorkoutLogging  Intent = "workout_logging"
	IntentMealLogging     Intent = "meal_logging"
	IntentPlannerRequest  Intent = "planner_request"
)

func (i Intent) String() string {
	return string(i)
}

type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

type PlannerItemType string

const (
	PlannerItemWorkout PlannerItemType = "workout"
	PlannerItemMeal    PlannerItemType = "meal"
	PlannerItemOther   PlannerItemType = "other"
)

type WorkoutLog struct {
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	Description     string `json:"description"`
	Date            string `json:"date"`
}

type SetTemplate struct {
	Reps   int      `json:"reps"`
	Weight *float64 `json:"weight,omitempty"`
	Order  int      `json:"order"`
}

type ExerciseTemplate struct {
	Name            string        `json:"name"`
	Category        string        `json:"category"`
	RestTimeSeconds int           `json:"restTimeSeconds"`
	Sets            []SetTemplate `json:"sets"`
}

type WorkoutCreation struct {
	Name        string             `json:"name"`
	Type        string             `json:"type"`
	Description string             `json:"description"`
	Date        string             `json:"date"`
	Exercises   []ExerciseTemplate `json:"exercises"`
}

// SetCount is the total number of sets over all exercises.
func (w WorkoutCreation) SetCount() int {
	count := 0
	for _, ex := range w.Exercises {
		count += len(ex.Sets)
	}
	return count
}

type Meal struct {
	Name     string   `json:"name"`
	MealType MealType `json:"mealType"`
	Calories int      `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	Date     string   `json:"date"`
}

type PlannerItem struct {
	Title           string          `json:"title"`
	Type            PlannerItemType `json:"type"`
	Date            string          `json:"date"`
	Time            string          `json:"time"`
	DurationMinutes int             `json:"durationMinutes"`
}

// LocalDay formats t as a calendar day in its own location.
func LocalDay(t time.Time) string {
	return t.Format(DateLayout)
}
