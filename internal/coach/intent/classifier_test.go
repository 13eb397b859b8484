package intent_test

import (
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"

	"github.com/2beens/fitcoach/internal/coach/intent"
	"github.com/2beens/fitcoach/internal/coach/records"
	"github.com/2beens/fitcoach/internal/coach/vocab"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		message string
		want    records.Intent
	}{
		// creation
		{"create a push workout", records.IntentWorkoutCreation},
		{"Create a leg workout", records.IntentWorkoutCreation},
		{"give me a new routine", records.IntentWorkoutCreation},
		{"can you design a workout plan for me?", records.IntentWorkoutCreation},
		{"build me a pull day", records.IntentWorkoutCreation},
		{"make a workout and then I ate", records.IntentWorkoutCreation},
		// archetype phrases alone
		{"push workout", records.IntentWorkoutCreation},
		{"Leg day tomorrow", records.IntentWorkoutCreation},
		{"pull day please", records.IntentWorkoutCreation},
		{"full body workout for this afternoon", records.IntentWorkoutCreation},
		{"hiit workout", records.IntentWorkoutCreation},
		{"I did a push workout", records.IntentWorkoutCreation},
		{"I need a new routine", records.IntentWorkoutCreation},
		// logging
		{"I tried a new workout routine today", records.IntentWorkoutLogging},
		{"I did a 45 minute workout", records.IntentWorkoutLogging},
		{"ran 5k this morning", records.IntentWorkoutLogging},
		{"bench press 3x8 at 80kg", records.IntentWorkoutLogging},
		{"I went running for 30 minutes", records.IntentWorkoutLogging},
		{"45 minutes of yoga", records.IntentWorkoutLogging},
		{"I ran and then ate pasta", records.IntentWorkoutLogging},
		{"did yoga then had a salad for dinner", records.IntentWorkoutLogging},
		// meals
		{"I ate chicken and rice for lunch", records.IntentMealLogging},
		{"had a sandwich for lunch", records.IntentMealLogging},
		{"I had some oatmeal", records.IntentMealLogging},
		{"lunch was a burrito", records.IntentMealLogging},
		{"just had a protein shake", records.IntentMealLogging},
		// planner
		{"schedule workout every Monday in March 2025", records.IntentPlannerRequest},
		{"schedule dinner with friends tomorrow", records.IntentPlannerRequest},
		{"remind me to stretch", records.IntentPlannerRequest},
		{"make a meal plan", records.IntentPlannerRequest},
		{"plan my workouts for next week", records.IntentPlannerRequest},
		// none
		{"what's the weather like", records.IntentNone},
		{"I had a great day", records.IntentNone},
		{"create a salad recipe", records.IntentNone},
		{"a new week starts", records.IntentNone},
		{"call me later", records.IntentNone},
		{"", records.IntentNone},
		{"   ", records.IntentNone},
	}

	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			assert.Equal(t, tc.want, intent.Classify(tc.message))
		})
	}
}

func TestClassify_Precedence(t *testing.T) {
	// every creation phrase beats logging vocabulary
	for _, activity := range vocab.Activities {
		msg := "create a workout with " + activity
		assert.Equal(t, records.IntentWorkoutCreation, intent.Classify(msg), msg)
	}
	// planner vocabulary never wins over workout vocabulary
	for _, activity := range vocab.Activities {
		msg := "schedule " + activity + " every monday in march"
		assert.Equal(t, records.IntentWorkoutLogging, intent.Classify(msg), msg)
	}
	// planner vocabulary never wins over meal vocabulary
	for _, phrase := range vocab.MealPhrases {
		msg := "schedule " + phrase + " tomorrow"
		assert.Equal(t, records.IntentMealLogging, intent.Classify(msg), msg)
	}
}

func TestClassify_WorkoutAndMealNeverMeal(t *testing.T) {
	faker := gofakeit.New(42)
	workoutWords := append(append([]string{}, vocab.LoggingVerbs...), vocab.Activities...)

	for i := 0; i < 500; i++ {
		parts := []string{
			faker.Word(),
			faker.RandomString(workoutWords),
			faker.Word(),
			faker.RandomString(vocab.MealPhrases),
			faker.RandomString(vocab.FoodKeywords),
		}
		faker.ShuffleStrings(parts)
		msg := strings.Join(parts, " ")

		got := intent.Classify(msg)
		assert.NotEqual(t, records.IntentMealLogging, got, msg)
		assert.NotEqual(t, records.IntentPlannerRequest, got, msg)
		assert.Contains(t, []records.Intent{
			records.IntentWorkoutCreation,
			records.IntentWorkoutLogging,
		}, got, msg)
	}
}

func TestClassify_Idempotent(t *testing.T) {
	faker := gofakeit.New(7)
	for i := 0; i < 300; i++ {
		msg := faker.Sentence(12)
		assert.Equal(t, intent.Classify(msg), intent.Classify(msg), msg)
	}
}

func TestPredicates(t *testing.T) {
	assert.True(t, intent.IsWorkoutRelated("squats and lunges"))
	assert.False(t, intent.IsWorkoutRelated("leg day tomorrow"))

	assert.True(t, intent.IsMealRelated("i ate"))
	assert.True(t, intent.IsMealRelated("i had eggs"))
	assert.False(t, intent.IsMealRelated("i had fun"))

	assert.True(t, intent.IsPlannerRequest("add to my calendar"))
	assert.False(t, intent.IsPlannerRequest("everything is fine"))

	assert.True(t, intent.IsWorkoutCreation("generate a routine"))
	assert.False(t, intent.IsWorkoutCreation("generate a poem"))
	assert.True(t, intent.IsWorkoutCreation("leg day tomorrow"))
	assert.False(t, intent.IsWorkoutCreation("i tried a new workout routine today"))

	for _, phrase := range vocab.ArchetypePhrases {
		assert.True(t, intent.IsWorkoutCreation(phrase), phrase)
	}
}
