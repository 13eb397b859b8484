package intent

import (
	"strings"

	"github.com/2beens/fitcoach/internal/coach/records"
	"github.com/2beens/fitcoach/internal/coach/vocab"
)

type rule struct {
	intent records.Intent
	match  func(lowered string) bool
}

// rules are evaluated in order, first match wins.
// Workout checks precede meal checks, meal checks precede planner checks.
var rules = []rule{
	{
		intent: records.IntentWorkoutCreation,
		match:  IsWorkoutCreation,
	},
	{
		intent: records.IntentWorkoutLogging,
		match:  IsWorkoutRelated,
	},
	{
		intent: records.IntentMealLogging,
		match: func(lowered string) bool {
			return IsMealRelated(lowered) && !IsWorkoutRelated(lowered)
		},
	},
	{
		intent: records.IntentPlannerRequest,
		match: func(lowered string) bool {
			return IsPlannerRequest(lowered) && !IsWorkoutRelated(lowered) && !IsMealRelated(lowered)
		},
	},
}

// Classify returns the single intent of a message. It is pure and deterministic.
func Classify(message string) records.Intent {
	lowered := strings.ToLower(strings.TrimSpace(message))
	if lowered == "" {
		return records.IntentNone
	}
	for _, r := range rules {
		if r.match(lowered) {
			return r.intent
		}
	}
	return records.IntentNone
}

// IsWorkoutCreation matches an archetype phrase such as "push workout" or
// "leg day" on its own, or a creation verb together with a workout noun.
func IsWorkoutCreation(lowered string) bool {
	if vocab.ContainsAny(lowered, vocab.ArchetypePhrases) {
		return true
	}
	return vocab.ContainsAny(lowered, vocab.CreationVerbs) &&
		vocab.ContainsAny(lowered, vocab.WorkoutNouns)
}

// IsWorkoutRelated matches past-tense training phrasings and named activities.
func IsWorkoutRelated(lowered string) bool {
	return vocab.ContainsAny(lowered, vocab.LoggingVerbs) ||
		vocab.ContainsAny(lowered, vocab.Activities)
}

func IsMealRelated(lowered string) bool {
	if vocab.ContainsAny(lowered, vocab.MealPhrases) {
		return true
	}
	if !vocab.ContainsAny(lowered, vocab.WeakMealPhrases) {
		return false
	}
	return vocab.ContainsAny(lowered, vocab.MealWords) ||
		vocab.ContainsAny(lowered, vocab.FoodKeywords)
}

func IsPlannerRequest(lowered string) bool {
	return vocab.ContainsAny(lowered, vocab.PlannerPhrases)
}
