package interpreter

import (
	"time"

	"github.com/2beens/fitcoach/internal/coach/extract"
	"github.com/2beens/fitcoach/internal/coach/intent"
	"github.com/2beens/fitcoach/internal/coach/records"
)

// Interpretation is the structured result of one message: the intent and
// the records it asks for. Nothing here has been written anywhere.
type Interpretation struct {
	Intent          records.Intent           `json:"intent"`
	WorkoutLog      *records.WorkoutLog      `json:"workoutLog,omitempty"`
	WorkoutCreation *records.WorkoutCreation `json:"workoutCreation,omitempty"`
	Meal            *records.Meal            `json:"meal,omitempty"`
	PlannerItems    []records.PlannerItem    `json:"plannerItems"`
}

// Interpret classifies the message and runs the extractor for its intent.
// now must already be in the user's location.
func Interpret(message string, now time.Time) Interpretation {
	in := Interpretation{
		Intent:       intent.Classify(message),
		PlannerItems: []records.PlannerItem{},
	}

	switch in.Intent {
	case records.IntentWorkoutCreation:
		wc := extract.WorkoutCreation(message, now)
		in.WorkoutCreation = &wc
		in.PlannerItems = append(in.PlannerItems, extract.AutoWorkoutSession(now))
	case records.IntentWorkoutLogging:
		wl := extract.WorkoutLog(message, now)
		in.WorkoutLog = &wl
	case records.IntentMealLogging:
		meal := extract.Meal(message, now)
		in.Meal = &meal
	case records.IntentPlannerRequest:
		in.PlannerItems = extract.PlannerItems(message, now)
	}

	return in
}

// HasRecords reports whether anything would be written for this interpretation.
func (i Interpretation) HasRecords() bool {
	return i.WorkoutLog != nil || i.WorkoutCreation != nil || i.Meal != nil || len(i.PlannerItems) > 0
}
