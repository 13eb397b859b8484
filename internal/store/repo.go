package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitcoach/internal/telemetry/tracing"
	"github.com/2beens/fitcoach/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// Repo is the postgres backed store of the coach collections.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// ApplySchema creates the coach tables, it is safe to run repeatedly.
func (r *Repo) ApplySchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

func (r *Repo) AddWorkout(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	workout.ID = uuid.NewString()
	span.SetAttributes(attribute.String("workout.id", workout.ID))

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO workouts
				(id, user_id, name, type, description, duration_minutes, date)
				VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, 0), $7::date)
			RETURNING created_at;`,
		workout.ID, workout.UserID, workout.Name, workout.Type, workout.Description, workout.DurationMinutes, workout.Date,
	).Scan(&workout.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert workout: %w", err)
	}

	return &workout, nil
}

// AddExercise returns ErrNotFound when the parent workout does not exist.
func (r *Repo) AddExercise(ctx context.Context, exercise Exercise) (_ *Exercise, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.exercises.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	exercise.ID = uuid.NewString()
	span.SetAttributes(
		attribute.String("exercise.id", exercise.ID),
		attribute.String("workout.id", exercise.WorkoutID),
	)

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO exercises
				(id, workout_id, user_id, name, category, rest_time_seconds, order_index)
				VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7);`,
		exercise.ID, exercise.WorkoutID, exercise.UserID, exercise.Name, exercise.Category, exercise.RestTimeSeconds, exercise.Order,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, fmt.Errorf("workout %s: %w", exercise.WorkoutID, ErrNotFound)
		}
		return nil, fmt.Errorf("insert exercise: %w", err)
	}

	return &exercise, nil
}

// AddExerciseSets inserts all sets as one batch and returns the number of rows written.
func (r *Repo) AddExerciseSets(ctx context.Context, sets []ExerciseSet) (_ int64, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.exercise_sets.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("sets", len(sets)))

	if len(sets) == 0 {
		return 0, nil
	}

	rows := make([][]any, 0, len(sets))
	for _, set := range sets {
		exerciseID, err := uuid.Parse(set.ExerciseID)
		if err != nil {
			return 0, fmt.Errorf("exercise id [%s]: %w", set.ExerciseID, err)
		}
		rows = append(rows, []any{
			uuid.New(), exerciseID, set.UserID, set.Reps, set.Weight, set.Order,
		})
	}

	copied, err := r.db.CopyFrom(
		ctx,
		pgx.Identifier{"exercise_sets"},
		[]string{"id", "exercise_id", "user_id", "reps", "weight", "set_order"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return 0, fmt.Errorf("exercise: %w", ErrNotFound)
		}
		return 0, fmt.Errorf("copy exercise sets: %w", err)
	}

	return copied, nil
}

func (r *Repo) AddFoodEntry(ctx context.Context, entry FoodEntry) (_ *FoodEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.food_entries.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entry.ID = uuid.NewString()
	span.SetAttributes(attribute.String("food_entry.id", entry.ID))

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO food_entries
				(id, user_id, name, meal_type, calories, protein, carbs, fat, date)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::date)
			RETURNING created_at;`,
		entry.ID, entry.UserID, entry.Name, entry.MealType, entry.Calories, entry.Protein, entry.Carbs, entry.Fat, entry.Date,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert food entry: %w", err)
	}

	return &entry, nil
}

func (r *Repo) AddPlannedItem(ctx context.Context, item PlannedItem) (_ *PlannedItem, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.planned_items.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	item.ID = uuid.NewString()
	span.SetAttributes(attribute.String("planned_item.id", item.ID))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO planned_items
				(id, user_id, title, type, date, scheduled_time, duration_minutes)
				VALUES ($1, $2, $3, $4, $5::date, $6::time, $7);`,
		item.ID, item.UserID, item.Title, item.Type, item.Date, item.Time, item.DurationMinutes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert planned item: %w", err)
	}

	return &item, nil
}

func (r *Repo) GetProfile(ctx context.Context, userID string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.profiles.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	profile := Profile{UserID: userID}
	err = r.db.QueryRow(
		ctx,
		`SELECT full_name, age, height_cm, weight_kg, fitness_level, activity_level
			FROM profiles WHERE user_id = $1;`,
		userID,
	).Scan(&profile.FullName, &profile.Age, &profile.HeightCm, &profile.WeightKg, &profile.FitnessLevel, &profile.ActivityLevel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select profile: %w", err)
	}

	return &profile, nil
}

func (r *Repo) UpsertProfile(ctx context.Context, profile Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.profiles.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", profile.UserID))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO profiles (user_id, full_name, age, height_cm, weight_kg, fitness_level, activity_level)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (user_id) DO UPDATE SET
				full_name = EXCLUDED.full_name,
				age = EXCLUDED.age,
				height_cm = EXCLUDED.height_cm,
				weight_kg = EXCLUDED.weight_kg,
				fitness_level = EXCLUDED.fitness_level,
				activity_level = EXCLUDED.activity_level;`,
		profile.UserID, profile.FullName, profile.Age, profile.HeightCm, profile.WeightKg, profile.FitnessLevel, profile.ActivityLevel,
	)
	return err
}

func (r *Repo) GetGoals(ctx context.Context, userID string) (_ *Goals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.goals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	goals := Goals{UserID: userID}
	err = r.db.QueryRow(
		ctx,
		`SELECT daily_calories, protein_grams, carbs_grams, fat_grams, weekly_workouts, target_weight_kg
			FROM user_goals WHERE user_id = $1;`,
		userID,
	).Scan(&goals.DailyCalories, &goals.ProteinGrams, &goals.CarbsGrams, &goals.FatGrams, &goals.WeeklyWorkouts, &goals.TargetWeightKg)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select goals: %w", err)
	}

	return &goals, nil
}

func (r *Repo) UpsertGoals(ctx context.Context, goals Goals) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.goals.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", goals.UserID))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO user_goals (user_id, daily_calories, protein_grams, carbs_grams, fat_grams, weekly_workouts, target_weight_kg)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (user_id) DO UPDATE SET
				daily_calories = EXCLUDED.daily_calories,
				protein_grams = EXCLUDED.protein_grams,
				carbs_grams = EXCLUDED.carbs_grams,
				fat_grams = EXCLUDED.fat_grams,
				weekly_workouts = EXCLUDED.weekly_workouts,
				target_weight_kg = EXCLUDED.target_weight_kg;`,
		goals.UserID, goals.DailyCalories, goals.ProteinGrams, goals.CarbsGrams, goals.FatGrams, goals.WeeklyWorkouts, goals.TargetWeightKg,
	)
	return err
}

// ListWorkoutsSince returns the user's workouts on or after the since day, newest first.
func (r *Repo) ListWorkoutsSince(ctx context.Context, userID, since string, limit int) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.String("since", since),
		attribute.Int("limit", limit),
	)

	rows, err := r.db.Query(
		ctx,
		`SELECT id::text, user_id, name, COALESCE(type, ''), COALESCE(description, ''),
				COALESCE(duration_minutes, 0), date::text, created_at
			FROM workouts
			WHERE user_id = $1 AND date >= $2::date
			ORDER BY date DESC, created_at DESC
			LIMIT $3;`,
		userID, since, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("select workouts: %w", err)
	}
	defer rows.Close()

	var workouts []Workout
	for rows.Next() {
		var w Workout
		if err := rows.Scan(&w.ID, &w.UserID, &w.Name, &w.Type, &w.Description, &w.DurationMinutes, &w.Date, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		workouts = append(workouts, w)
	}

	return workouts, rows.Err()
}

// ListFoodEntriesSince returns the user's food entries on or after the since day, newest first.
func (r *Repo) ListFoodEntriesSince(ctx context.Context, userID, since string) (_ []FoodEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.food_entries.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.String("since", since),
	)

	rows, err := r.db.Query(
		ctx,
		`SELECT id::text, user_id, name, meal_type, calories, protein, carbs, fat, date::text, created_at
			FROM food_entries
			WHERE user_id = $1 AND date >= $2::date
			ORDER BY date DESC, created_at DESC;`,
		userID, since,
	)
	if err != nil {
		return nil, fmt.Errorf("select food entries: %w", err)
	}
	defer rows.Close()

	var entries []FoodEntry
	for rows.Next() {
		var e FoodEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Name, &e.MealType, &e.Calories, &e.Protein, &e.Carbs, &e.Fat, &e.Date, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

func (r *Repo) ListPlannedItems(ctx context.Context, userID, from string) (_ []PlannedItem, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.planned_items.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	rows, err := r.db.Query(
		ctx,
		`SELECT id::text, user_id, title, type, date::text, to_char(scheduled_time, 'HH24:MI'), duration_minutes
			FROM planned_items
			WHERE user_id = $1 AND date >= $2::date
			ORDER BY date, scheduled_time;`,
		userID, from,
	)
	if err != nil {
		return nil, fmt.Errorf("select planned items: %w", err)
	}
	defer rows.Close()

	var items []PlannedItem
	for rows.Next() {
		var p PlannedItem
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Type, &p.Date, &p.Time, &p.DurationMinutes); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		items = append(items, p)
	}

	return items, rows.Err()
}

func (r *Repo) LatestProgress(ctx context.Context, userID string) (_ *ProgressEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.progress_entries.latest")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	entry := ProgressEntry{UserID: userID}
	err = r.db.QueryRow(
		ctx,
		`SELECT id::text, date::text, weight_kg, body_fat_pct, notes
			FROM progress_entries
			WHERE user_id = $1
			ORDER BY date DESC, created_at DESC
			LIMIT 1;`,
		userID,
	).Scan(&entry.ID, &entry.Date, &entry.WeightKg, &entry.BodyFatPct, &entry.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select latest progress: %w", err)
	}

	return &entry, nil
}

func (r *Repo) AddProgressEntry(ctx context.Context, entry ProgressEntry) (_ *ProgressEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.store.progress_entries.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	entry.ID = uuid.NewString()
	_, err = r.db.Exec(
		ctx,
		`INSERT INTO progress_entries (id, user_id, date, weight_kg, body_fat_pct, notes)
			VALUES ($1, $2, $3::date, $4, $5, $6);`,
		entry.ID, entry.UserID, entry.Date, entry.WeightKg, entry.BodyFatPct, entry.Notes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert progress entry: %w", err)
	}

	return &entry, nil
}
