package writer

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitcoach/internal/coach/records"
	"github.com/2beens/fitcoach/internal/store"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
)

//go:generate mockgen -source=$GOFILE -destination=writer_mocks_test.go -package=writer_test

var ErrEmptyExercises = errors.New("workout has no exercises")

type Status int

const (
	Succeeded Status = iota
	PartiallySucceeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Succeeded:
		return "succeeded"
	case PartiallySucceeded:
		return "partially_succeeded"
	default:
		return "failed"
	}
}

type Kind string

const (
	KindWorkoutCreation Kind = "workout_creation"
	KindWorkoutLog      Kind = "workout_log"
	KindMeal            Kind = "meal"
	KindPlannerItem     Kind = "planner_item"
)

// Outcome is the result of one top level write.
type Outcome struct {
	Kind     Kind
	RecordID string
	Status   Status
	Err      error
}

// Written reports whether the top level row was committed.
func (o Outcome) Written() bool {
	return o.Status != Failed
}

type ExerciseOutcome struct {
	Name        string
	ExerciseID  string
	SetsWritten int64
	Err         error
}

type WorkoutCreationOutcome struct {
	Outcome
	Exercises []ExerciseOutcome
}

type recordStore interface {
	AddWorkout(ctx context.Context, workout store.Workout) (*store.Workout, error)
	AddExercise(ctx context.Context, exercise store.Exercise) (*store.Exercise, error)
	AddExerciseSets(ctx context.Context, sets []store.ExerciseSet) (int64, error)
	AddFoodEntry(ctx context.Context, entry store.FoodEntry) (*store.FoodEntry, error)
	AddPlannedItem(ctx context.Context, item store.PlannedItem) (*store.PlannedItem, error)
}

// Writer persists extracted records for one user. Writes are not transactional:
// committed rows stay in place when a later write fails.
type Writer struct {
	store recordStore
}

func New(store recordStore) *Writer {
	return &Writer{
		store: store,
	}
}

// WriteWorkoutCreation writes the workout row first, then each exercise with its sets.
// A failing exercise is skipped and the remaining ones are still written.
func (w *Writer) WriteWorkoutCreation(ctx context.Context, userID string, rec records.WorkoutCreation) (outcome WorkoutCreationOutcome) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "writer.workout_creation")
	defer func() {
		tracing.EndSpanWithErrCheck(span, outcome.Err)
	}()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.Int("exercises", len(rec.Exercises)),
	)

	outcome.Kind = KindWorkoutCreation
	if len(rec.Exercises) == 0 {
		outcome.Status = Failed
		outcome.Err = ErrEmptyExercises
		return outcome
	}

	workout, err := w.store.AddWorkout(ctx, store.Workout{
		UserID:      userID,
		Name:        rec.Name,
		Type:        rec.Type,
		Description: rec.Description,
		Date:        rec.Date,
	})
	if err != nil {
		log.Errorf("write workout [%s] for user %s: %s", rec.Name, userID, err)
		outcome.Status = Failed
		outcome.Err = fmt.Errorf("add workout: %w", err)
		return outcome
	}
	outcome.RecordID = workout.ID

	var exercisesErr error
	for i, ex := range rec.Exercises {
		exOutcome := w.writeExercise(ctx, userID, workout.ID, i+1, ex)
		if exOutcome.Err != nil {
			log.Errorf("write exercise [%s] of workout %s: %s", ex.Name, workout.ID, exOutcome.Err)
			exercisesErr = multierr.Append(exercisesErr, exOutcome.Err)
		}
		outcome.Exercises = append(outcome.Exercises, exOutcome)
	}

	outcome.Status = Succeeded
	if exercisesErr != nil {
		outcome.Status = PartiallySucceeded
		outcome.Err = exercisesErr
	}
	return outcome
}

func (w *Writer) writeExercise(
	ctx context.Context,
	userID, workoutID string,
	order int,
	tmpl records.ExerciseTemplate,
) ExerciseOutcome {
	exOutcome := ExerciseOutcome{Name: tmpl.Name}

	exercise, err := w.store.AddExercise(ctx, store.Exercise{
		WorkoutID:       workoutID,
		UserID:          userID,
		Name:            tmpl.Name,
		Category:        tmpl.Category,
		RestTimeSeconds: tmpl.RestTimeSeconds,
		Order:           order,
	})
	if err != nil {
		exOutcome.Err = fmt.Errorf("add exercise %s: %w", tmpl.Name, err)
		return exOutcome
	}
	exOutcome.ExerciseID = exercise.ID

	sets := make([]store.ExerciseSet, 0, len(tmpl.Sets))
	for _, s := range tmpl.Sets {
		sets = append(sets, store.ExerciseSet{
			ExerciseID: exercise.ID,
			UserID:     userID,
			Reps:       s.Reps,
			Weight:     s.Weight,
			Order:      s.Order,
		})
	}

	written, err := w.store.AddExerciseSets(ctx, sets)
	if err != nil {
		exOutcome.Err = fmt.Errorf("add sets of %s: %w", tmpl.Name, err)
		return exOutcome
	}
	exOutcome.SetsWritten = written

	return exOutcome
}

func (w *Writer) WriteWorkoutLog(ctx context.Context, userID string, rec records.WorkoutLog) (outcome Outcome) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "writer.workout_log")
	defer func() {
		tracing.EndSpanWithErrCheck(span, outcome.Err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	outcome.Kind = KindWorkoutLog
	workout, err := w.store.AddWorkout(ctx, store.Workout{
		UserID:          userID,
		Name:            rec.Name,
		Description:     rec.Description,
		DurationMinutes: rec.DurationMinutes,
		Date:            rec.Date,
	})
	if err != nil {
		log.Errorf("write workout log [%s] for user %s: %s", rec.Name, userID, err)
		outcome.Status = Failed
		outcome.Err = fmt.Errorf("add workout: %w", err)
		return outcome
	}

	outcome.RecordID = workout.ID
	outcome.Status = Succeeded
	return outcome
}

func (w *Writer) WriteMeal(ctx context.Context, userID string, rec records.Meal) (outcome Outcome) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "writer.meal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, outcome.Err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	outcome.Kind = KindMeal
	entry, err := w.store.AddFoodEntry(ctx, store.FoodEntry{
		UserID:   userID,
		Name:     rec.Name,
		MealType: string(rec.MealType),
		Calories: rec.Calories,
		Protein:  rec.Protein,
		Carbs:    rec.Carbs,
		Fat:      rec.Fat,
		Date:     rec.Date,
	})
	if err != nil {
		log.Errorf("write meal [%s] for user %s: %s", rec.Name, userID, err)
		outcome.Status = Failed
		outcome.Err = fmt.Errorf("add food entry: %w", err)
		return outcome
	}

	outcome.RecordID = entry.ID
	outcome.Status = Succeeded
	return outcome
}

func (w *Writer) WritePlannerItem(ctx context.Context, userID string, rec records.PlannerItem) (outcome Outcome) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "writer.planner_item")
	defer func() {
		tracing.EndSpanWithErrCheck(span, outcome.Err)
	}()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.String("date", rec.Date),
	)

	outcome.Kind = KindPlannerItem
	item, err := w.store.AddPlannedItem(ctx, store.PlannedItem{
		UserID:          userID,
		Title:           rec.Title,
		Type:            string(rec.Type),
		Date:            rec.Date,
		Time:            rec.Time,
		DurationMinutes: rec.DurationMinutes,
	})
	if err != nil {
		log.Errorf("write planner item [%s] on %s for user %s: %s", rec.Title, rec.Date, userID, err)
		outcome.Status = Failed
		outcome.Err = fmt.Errorf("add planned item: %w", err)
		return outcome
	}

	outcome.RecordID = item.ID
	outcome.Status = Succeeded
	return outcome
}

// WritePlannerItems writes one row per item, a failed row does not stop the rest.
func (w *Writer) WritePlannerItems(ctx context.Context, userID string, items []records.PlannerItem) []Outcome {
	outcomes := make([]Outcome, 0, len(items))
	for _, item := range items {
		outcomes = append(outcomes, w.WritePlannerItem(ctx, userID, item))
	}
	return outcomes
}

// Aggregate folds several outcomes into one status and a combined error.
func Aggregate(outcomes []Outcome) (Status, error) {
	if len(outcomes) == 0 {
		return Succeeded, nil
	}

	var (
		combined error
		failed   int
		partial  int
	)
	for _, o := range outcomes {
		switch o.Status {
		case Failed:
			failed++
		case PartiallySucceeded:
			partial++
		}
		combined = multierr.Append(combined, o.Err)
	}

	switch {
	case failed == len(outcomes):
		return Failed, combined
	case failed > 0 || partial > 0:
		return PartiallySucceeded, combined
	default:
		return Succeeded, combined
	}
}
