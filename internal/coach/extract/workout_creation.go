package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitcoach/internal/coach/records"
	"github.com/2beens/fitcoach/internal/coach/vocab"
)

const (
	workoutTypeStrength = "strength"
	workoutTypeCardio   = "cardio"
	workoutTypeGeneral  = "general"

	setsPerExercise = 3
)

type archetype struct {
	keywords    []string
	name        string
	workoutType string
}

// archetypes are matched in order, first match wins.
var archetypes = []archetype{
	{[]string{"push"}, "Push Day", workoutTypeStrength},
	{[]string{"pull"}, "Pull Day", workoutTypeStrength},
	{[]string{"leg", "legs"}, "Leg Day", workoutTypeStrength},
	{[]string{"upper body", "upper"}, "Upper Body", workoutTypeStrength},
	{[]string{"lower body", "lower"}, "Lower Body", workoutTypeStrength},
	{[]string{"full body", "full-body", "fullbody"}, "Full Body", workoutTypeStrength},
	{[]string{"cardio"}, "Cardio Session", workoutTypeCardio},
	{[]string{"hiit"}, "HIIT Workout", workoutTypeCardio},
	{[]string{"strength"}, "Strength Training", workoutTypeStrength},
	{[]string{"chest"}, "Chest Day", workoutTypeStrength},
	{[]string{"back"}, "Back Day", workoutTypeStrength},
	{[]string{"arm", "arms"}, "Arm Day", workoutTypeStrength},
	{[]string{"shoulder", "shoulders"}, "Shoulder Day", workoutTypeStrength},
	{[]string{"core"}, "Core Workout", workoutTypeStrength},
	{[]string{"abs", "ab"}, "Abs Workout", workoutTypeStrength},
}

var defaultArchetype = archetype{name: "Custom Workout", workoutType: workoutTypeGeneral}

type exerciseDef struct {
	name            string
	category        string
	reps            int
	restTimeSeconds int
}

var (
	pushTemplate = []exerciseDef{
		{"Bench Press", "chest", 8, 90},
		{"Overhead Press", "shoulders", 10, 90},
		{"Incline Dumbbell Press", "chest", 10, 60},
		{"Tricep Dips", "arms", 12, 60},
	}
	pullTemplate = []exerciseDef{
		{"Pull-ups", "back", 8, 90},
		{"Barbell Rows", "back", 10, 90},
		{"Lat Pulldowns", "back", 12, 60},
		{"Bicep Curls", "arms", 12, 60},
	}
	legTemplate = []exerciseDef{
		{"Squats", "legs", 10, 120},
		{"Deadlifts", "legs", 6, 120},
		{"Lunges", "legs", 12, 60},
		{"Calf Raises", "legs", 15, 45},
	}
	fullBodyTemplate = []exerciseDef{
		{"Squats", "legs", 10, 90},
		{"Push-ups", "chest", 15, 60},
		{"Bent-over Rows", "back", 10, 60},
		{"Mountain Climbers", "core", 20, 45},
	}
	cardioTemplate = []exerciseDef{
		{"Jumping Jacks", "cardio", 30, 30},
		{"Burpees", "cardio", 10, 45},
		{"Mountain Climbers", "cardio", 20, 30},
		{"High Knees", "cardio", 30, 30},
	}
)

// strengthTemplates refine strength and general workouts, full body otherwise.
var strengthTemplates = []struct {
	keywords []string
	defs     []exerciseDef
}{
	{[]string{"push", "chest"}, pushTemplate},
	{[]string{"pull", "back"}, pullTemplate},
	{[]string{"leg", "legs", "lower"}, legTemplate},
}

// WorkoutCreation builds a workout template from the message. The result
// always has at least one exercise.
func WorkoutCreation(message string, now time.Time) records.WorkoutCreation {
	lowered := strings.ToLower(message)
	a := resolveArchetype(lowered)

	defs := templateFor(a.workoutType, lowered)
	exercises := make([]records.ExerciseTemplate, 0, len(defs))
	for _, def := range defs {
		exercises = append(exercises, def.toTemplate())
	}

	return records.WorkoutCreation{
		Name:        a.name,
		Type:        a.workoutType,
		Description: fmt.Sprintf("%s created by your coach: %s", a.name, truncate(strings.TrimSpace(message), descriptionMaxRunes)),
		Date:        records.LocalDay(now),
		Exercises:   exercises,
	}
}

func resolveArchetype(lowered string) archetype {
	for _, a := range archetypes {
		if vocab.ContainsAny(lowered, a.keywords) {
			return a
		}
	}
	return defaultArchetype
}

func templateFor(workoutType, lowered string) []exerciseDef {
	if workoutType == workoutTypeCardio {
		return cardioTemplate
	}
	for _, t := range strengthTemplates {
		if vocab.ContainsAny(lowered, t.keywords) {
			return t.defs
		}
	}
	return fullBodyTemplate
}

func (d exerciseDef) toTemplate() records.ExerciseTemplate {
	sets := make([]records.SetTemplate, 0, setsPerExercise)
	for order := 1; order <= setsPerExercise; order++ {
		sets = append(sets, records.SetTemplate{
			Reps:  d.reps,
			Order: order,
		})
	}
	return records.ExerciseTemplate{
		Name:            d.name,
		Category:        d.category,
		RestTimeSeconds: d.restTimeSeconds,
		Sets:            sets,
	}
}
