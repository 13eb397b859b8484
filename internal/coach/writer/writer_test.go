package writer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"go.uber.org/multierr"

	"github.com/2beens/fitcoach/internal/coach/extract"
	"github.com/2beens/fitcoach/internal/coach/records"
	"github.com/2beens/fitcoach/internal/coach/writer"
	"github.com/2beens/fitcoach/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var testNow = time.Date(2025, time.February, 12, 13, 0, 0, 0, time.UTC)

func TestWriteWorkoutCreation_PushWorkoutRowCounts(t *testing.T) {
	mem := store.NewMemory()
	w := writer.New(mem)

	rec := extract.WorkoutCreation("create a push workout", testNow)
	require.Len(t, rec.Exercises, 4)

	outcome := w.WriteWorkoutCreation(context.Background(), "user-1", rec)
	require.NoError(t, outcome.Err)
	assert.Equal(t, writer.Succeeded, outcome.Status)
	assert.NotEmpty(t, outcome.RecordID)
	require.Len(t, outcome.Exercises, 4)
	for _, ex := range outcome.Exercises {
		assert.NoError(t, ex.Err)
		assert.Equal(t, int64(3), ex.SetsWritten)
	}

	counts := mem.Counts()
	assert.Equal(t, 1, counts[store.CollectionWorkouts])
	assert.Equal(t, 4, counts[store.CollectionExercises])
	assert.Equal(t, 12, counts[store.CollectionExerciseSets])

	exercises := mem.Exercises(outcome.RecordID)
	require.Len(t, exercises, 4)
	for i, ex := range exercises {
		assert.Equal(t, "user-1", ex.UserID)
		assert.Equal(t, i+1, ex.Order)
		sets := mem.ExerciseSets(ex.ID)
		require.Len(t, sets, 3)
		for j, s := range sets {
			assert.Equal(t, j+1, s.Order)
			assert.Nil(t, s.Weight)
		}
	}
}

func TestWriteWorkoutCreation_ExerciseFailureIsSkipped(t *testing.T) {
	mem := store.NewMemory()
	boom := errors.New("constraint violated")
	mem.FailExercise("Deadlifts", boom)
	w := writer.New(mem)

	rec := extract.WorkoutCreation("create a leg workout", testNow)
	outcome := w.WriteWorkoutCreation(context.Background(), "user-1", rec)

	assert.Equal(t, writer.PartiallySucceeded, outcome.Status)
	assert.True(t, outcome.Written())
	assert.ErrorIs(t, outcome.Err, boom)

	counts := mem.Counts()
	assert.Equal(t, 1, counts[store.CollectionWorkouts])
	assert.Equal(t, 3, counts[store.CollectionExercises])
	assert.Equal(t, 9, counts[store.CollectionExerciseSets])

	require.Len(t, outcome.Exercises, 4)
	assert.Equal(t, "Deadlifts", outcome.Exercises[1].Name)
	assert.Error(t, outcome.Exercises[1].Err)
	assert.Empty(t, outcome.Exercises[1].ExerciseID)
}

func TestWriteWorkoutCreation_WorkoutRowFailureAborts(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := NewMockrecordStore(ctrl)
	w := writer.New(mockStore)

	mockStore.EXPECT().
		AddWorkout(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("db down"))
	// no exercise writes expected after the workout row failed

	outcome := w.WriteWorkoutCreation(context.Background(), "user-1", extract.WorkoutCreation("create a pull workout", testNow))
	assert.Equal(t, writer.Failed, outcome.Status)
	assert.False(t, outcome.Written())
	assert.ErrorContains(t, outcome.Err, "db down")
	assert.Empty(t, outcome.Exercises)
}

func TestWriteWorkoutCreation_SetsFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := NewMockrecordStore(ctrl)
	w := writer.New(mockStore)

	rec := records.WorkoutCreation{
		Name: "Mini",
		Type: "strength",
		Date: "2025-02-12",
		Exercises: []records.ExerciseTemplate{
			{Name: "A", Sets: []records.SetTemplate{{Reps: 5, Order: 1}}},
			{Name: "B", Sets: []records.SetTemplate{{Reps: 5, Order: 1}, {Reps: 5, Order: 2}}},
		},
	}

	mockStore.EXPECT().
		AddWorkout(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, workout store.Workout) (*store.Workout, error) {
			assert.Equal(t, "user-1", workout.UserID)
			assert.Equal(t, "Mini", workout.Name)
			assert.Equal(t, "2025-02-12", workout.Date)
			workout.ID = "w-1"
			return &workout, nil
		})
	mockStore.EXPECT().
		AddExercise(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, exercise store.Exercise) (*store.Exercise, error) {
			assert.Equal(t, "w-1", exercise.WorkoutID)
			exercise.ID = "ex-" + exercise.Name
			return &exercise, nil
		}).Times(2)
	gomock.InOrder(
		mockStore.EXPECT().AddExerciseSets(gomock.Any(), gomock.Len(1)).Return(int64(1), nil),
		mockStore.EXPECT().AddExerciseSets(gomock.Any(), gomock.Len(2)).Return(int64(0), errors.New("copy failed")),
	)

	outcome := w.WriteWorkoutCreation(context.Background(), "user-1", rec)
	assert.Equal(t, writer.PartiallySucceeded, outcome.Status)
	assert.Equal(t, "w-1", outcome.RecordID)
	require.Len(t, outcome.Exercises, 2)
	assert.NoError(t, outcome.Exercises[0].Err)
	assert.Equal(t, int64(1), outcome.Exercises[0].SetsWritten)
	assert.ErrorContains(t, outcome.Exercises[1].Err, "copy failed")
	assert.Equal(t, "ex-B", outcome.Exercises[1].ExerciseID)
}

func TestWriteWorkoutCreation_EmptyExercises(t *testing.T) {
	ctrl := gomock.NewController(t)
	w := writer.New(NewMockrecordStore(ctrl))

	outcome := w.WriteWorkoutCreation(context.Background(), "user-1", records.WorkoutCreation{Name: "Nothing"})
	assert.Equal(t, writer.Failed, outcome.Status)
	assert.ErrorIs(t, outcome.Err, writer.ErrEmptyExercises)
}

func TestWriteSimpleRecords(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	w := writer.New(mem)

	logOutcome := w.WriteWorkoutLog(ctx, "user-1", extract.WorkoutLog("I ran for 45 minutes", testNow))
	assert.Equal(t, writer.Succeeded, logOutcome.Status)
	assert.Equal(t, writer.KindWorkoutLog, logOutcome.Kind)

	mealOutcome := w.WriteMeal(ctx, "user-1", extract.Meal("I ate chicken and rice for lunch", testNow))
	assert.Equal(t, writer.Succeeded, mealOutcome.Status)
	assert.NotEmpty(t, mealOutcome.RecordID)

	entries, err := mem.ListFoodEntriesSince(ctx, "user-1", "2025-02-12")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "lunch", entries[0].MealType)
	assert.Equal(t, 600, entries[0].Calories)

	workouts, err := mem.ListWorkoutsSince(ctx, "user-1", "2025-02-12", 5)
	require.NoError(t, err)
	require.Len(t, workouts, 1)
	assert.Equal(t, 45, workouts[0].DurationMinutes)
}

func TestWritePlannerItems(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	w := writer.New(mem)

	items := extract.PlannerItems("schedule workout every Monday in March 2025", testNow)
	outcomes := w.WritePlannerItems(ctx, "user-1", items)
	require.Len(t, outcomes, 5)
	status, err := writer.Aggregate(outcomes)
	assert.NoError(t, err)
	assert.Equal(t, writer.Succeeded, status)
	assert.Equal(t, 5, mem.Counts()[store.CollectionPlannedItems])

	// unresolved recurrence writes nothing
	items = extract.PlannerItems("schedule workout every Monday", testNow)
	assert.Empty(t, w.WritePlannerItems(ctx, "user-1", items))
	assert.Equal(t, 5, mem.Counts()[store.CollectionPlannedItems])
}

func TestWrite_FailuresAreReported(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	boom := errors.New("boom")
	mem.FailCollection(store.CollectionFoodEntries, boom)
	mem.FailCollection(store.CollectionPlannedItems, boom)
	w := writer.New(mem)

	mealOutcome := w.WriteMeal(ctx, "user-1", extract.Meal("I ate oatmeal for breakfast", testNow))
	assert.Equal(t, writer.Failed, mealOutcome.Status)
	assert.ErrorIs(t, mealOutcome.Err, boom)

	outcomes := w.WritePlannerItems(ctx, "user-1", extract.PlannerItems("plan yoga tomorrow", testNow))
	status, err := writer.Aggregate(outcomes)
	assert.Equal(t, writer.Failed, status)
	assert.ErrorIs(t, err, boom)
}

func TestAggregate(t *testing.T) {
	errA := errors.New("a")
	errB := errors.New("b")

	status, err := writer.Aggregate(nil)
	assert.Equal(t, writer.Succeeded, status)
	assert.NoError(t, err)

	status, err = writer.Aggregate([]writer.Outcome{
		{Status: writer.Succeeded},
		{Status: writer.Failed, Err: errA},
		{Status: writer.Failed, Err: errB},
	})
	assert.Equal(t, writer.PartiallySucceeded, status)
	assert.Len(t, multierr.Errors(err), 2)

	status, _ = writer.Aggregate([]writer.Outcome{{Status: writer.Succeeded}, {Status: writer.PartiallySucceeded, Err: errA}})
	assert.Equal(t, writer.PartiallySucceeded, status)

	assert.Equal(t, "partially_succeeded", writer.PartiallySucceeded.String())
	assert.Equal(t, "failed", writer.Failed.String())
}
