package fitctx_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/2beens/fitcoach/internal/coach/fitctx"
	"github.com/2beens/fitcoach/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2025, time.February, 12, 13, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

func TestBuild_NoUser(t *testing.T) {
	b := fitctx.NewBuilder(store.NewMemory())
	assert.Equal(t, fitctx.NoContext, b.Build(context.Background(), "", testNow))
	assert.Equal(t, fitctx.NoContext, b.Build(context.Background(), "   ", testNow))
}

func TestBuild_EmptyStoreKeepsShape(t *testing.T) {
	b := fitctx.NewBuilder(store.NewMemory())

	digest := b.Build(context.Background(), "user-1", testNow)
	expected := `User Profile:
- Name: Not specified
- Age: Not specified
- Height: Not specified
- Weight: Not specified
- Fitness level: Not specified
- Activity level: Not specified

Goals:
- Daily calories: Not specified
- Protein: Not specified
- Carbs: Not specified
- Fat: Not specified
- Weekly workouts: Not specified
- Target weight: Not specified

Recent Workouts (last 7 days):
- Not recorded

Recent Meals (last 3 days):
- Not recorded

Latest Progress:
- Not recorded`
	assert.Equal(t, expected, digest)
}

func TestBuild_FullDigest(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()

	require.NoError(t, mem.UpsertProfile(ctx, store.Profile{
		UserID:       "user-1",
		FullName:     ptr("Ana"),
		Age:          ptr(31),
		HeightCm:     ptr(170.5),
		WeightKg:     ptr(65.0),
		FitnessLevel: ptr("intermediate"),
	}))
	require.NoError(t, mem.UpsertGoals(ctx, store.Goals{
		UserID:        "user-1",
		DailyCalories: ptr(2200),
		ProteinGrams:  ptr(150.0),
	}))

	// 8 workouts in the window, one outside of it, one for another user
	for _, d := range []string{"2025-02-05", "2025-02-06", "2025-02-07", "2025-02-08", "2025-02-09", "2025-02-10", "2025-02-11", "2025-02-12"} {
		_, err := mem.AddWorkout(ctx, store.Workout{UserID: "user-1", Name: "Running", DurationMinutes: 30, Date: d})
		require.NoError(t, err)
	}
	_, err := mem.AddWorkout(ctx, store.Workout{UserID: "user-1", Name: "Old", Date: "2025-01-01"})
	require.NoError(t, err)
	_, err = mem.AddWorkout(ctx, store.Workout{UserID: "user-2", Name: "Other", Date: "2025-02-12"})
	require.NoError(t, err)

	for _, e := range []store.FoodEntry{
		{UserID: "user-1", Name: "oats", Calories: 450, Date: "2025-02-12"},
		{UserID: "user-1", Name: "chicken", Calories: 600, Date: "2025-02-12"},
		{UserID: "user-1", Name: "pasta", Calories: 700, Date: "2025-02-11"},
		{UserID: "user-1", Name: "salad", Calories: 300, Date: "2025-02-10"},
	} {
		_, err := mem.AddFoodEntry(ctx, e)
		require.NoError(t, err)
	}

	_, err = mem.AddProgressEntry(ctx, store.ProgressEntry{UserID: "user-1", Date: "2025-02-09", WeightKg: ptr(64.2)})
	require.NoError(t, err)

	digest := fitctx.NewBuilder(mem).Build(ctx, "user-1", testNow)

	assert.Contains(t, digest, "- Name: Ana\n")
	assert.Contains(t, digest, "- Age: 31\n")
	assert.Contains(t, digest, "- Height: 170.5 cm\n")
	assert.Contains(t, digest, "- Weight: 65 kg\n")
	assert.Contains(t, digest, "- Activity level: Not specified\n")
	assert.Contains(t, digest, "- Daily calories: 2200 kcal\n")
	assert.Contains(t, digest, "- Protein: 150 g\n")
	assert.Contains(t, digest, "- Fat: Not specified\n")

	assert.Contains(t, digest, "- 2025-02-12: Running (30 min)\n")
	assert.Contains(t, digest, "- 2025-02-08: Running (30 min)\n")
	assert.NotContains(t, digest, "2025-02-07: Running")
	assert.NotContains(t, digest, "Old")
	assert.NotContains(t, digest, "Other")

	assert.Contains(t, digest, "- 2025-02-12: 1050 kcal (2 entries)\n")
	assert.Contains(t, digest, "- 2025-02-11: 700 kcal (1 entry)\n")
	assert.NotContains(t, digest, "300 kcal")

	assert.Contains(t, digest, "- Date: 2025-02-09\n")
	assert.Contains(t, digest, "- Weight: 64.2 kg\n")
	assert.Contains(t, digest, "- Body fat: Not recorded\n")
}

func TestBuild_ReadFailureFallsBack(t *testing.T) {
	for _, collection := range []string{
		store.CollectionProfiles,
		store.CollectionGoals,
		store.CollectionWorkouts,
		store.CollectionFoodEntries,
		store.CollectionProgress,
	} {
		t.Run(collection, func(t *testing.T) {
			mem := store.NewMemory()
			mem.FailCollection(collection, errors.New("connection reset"))
			digest := fitctx.NewBuilder(mem).Build(context.Background(), "user-1", testNow)
			assert.Equal(t, fitctx.Fallback, digest)
		})
	}
}
