package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	CollectionWorkouts     = "workouts"
	CollectionExercises    = "exercises"
	CollectionExerciseSets = "exercise_sets"
	CollectionFoodEntries  = "food_entries"
	CollectionPlannedItems = "planned_items"
	CollectionProfiles     = "profiles"
	CollectionGoals        = "user_goals"
	CollectionProgress     = "progress_entries"
)

// Memory is an in-process store, used when no postgres host is configured and in tests.
type Memory struct {
	mu sync.Mutex

	workouts     []Workout
	exercises    []Exercise
	exerciseSets []ExerciseSet
	foodEntries  []FoodEntry
	plannedItems []PlannedItem
	profiles     map[string]Profile
	goals        map[string]Goals
	progress     []ProgressEntry

	failures         map[string]error
	exerciseFailures map[string]error
}

func NewMemory() *Memory {
	return &Memory{
		profiles:         make(map[string]Profile),
		goals:            make(map[string]Goals),
		failures:         make(map[string]error),
		exerciseFailures: make(map[string]error),
	}
}

// FailCollection makes every read and write of the collection return err. A nil err clears it.
func (m *Memory) FailCollection(collection string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, collection)
		return
	}
	m.failures[collection] = err
}

// FailExercise makes AddExercise fail for exercises with the given name.
func (m *Memory) FailExercise(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exerciseFailures[name] = err
}

func (m *Memory) failure(collection string) error {
	if err, ok := m.failures[collection]; ok {
		return fmt.Errorf("%s: %w", collection, err)
	}
	return nil
}

func (m *Memory) AddWorkout(_ context.Context, workout Workout) (*Workout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(CollectionWorkouts); err != nil {
		return nil, err
	}

	workout.ID = uuid.NewString()
	workout.CreatedAt = time.Now()
	m.workouts = append(m.workouts, workout)
	return &workout, nil
}

func (m *Memory) AddExercise(_ context.Context, exercise Exercise) (*Exercise, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(CollectionExercises); err != nil {
		return nil, err
	}
	if err, ok := m.exerciseFailures[exercise.Name]; ok {
		return nil, fmt.Errorf("exercise %s: %w", exercise.Name, err)
	}

	found := false
	for _, w := range m.workouts {
		if w.ID == exercise.WorkoutID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("workout %s: %w", exercise.WorkoutID, ErrNotFound)
	}

	exercise.ID = uuid.NewString()
	m.exercises = append(m.exercises, exercise)
	return &exercise, nil
}

func (m *Memory) AddExerciseSets(_ context.Context, sets []ExerciseSet) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(CollectionExerciseSets); err != nil {
		return 0, err
	}

	for _, set := range sets {
		set.ID = uuid.NewString()
		m.exerciseSets = append(m.exerciseSets, set)
	}
	return int64(len(sets)), nil
}

func (m *Memory) AddFoodEntry(_ context.Context, entry FoodEntry) (*FoodEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(CollectionFoodEntries); err != nil {
		return nil, err
	}

	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()
	m.foodEntries = append(m.foodEntries, entry)
	return &entry, nil
}

func (m *Memory) AddPlannedItem(_ context.Context, item PlannedItem) (*PlannedItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(CollectionPlannedItems); err != nil {
		return nil, err
	}

	item.ID = uuid.NewString()
	m.plannedItems = append(m.plannedItems, item)
	return &item, nil
}

func (m *Memory) GetProfile(_ context.Context, userID string) (*Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(CollectionProfiles); err != nil {
		return nil, err
	}

	profile, ok := m.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &profile, nil
}

func (m *Memory) UpsertProfile(_ context.Context, profile Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(CollectionProfiles); err != nil {
		return err
	}
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *Memory) GetGoals(_ context.Context, userID string) (*Goals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(CollectionGoals); err != nil {
		return nil, err
	}

	goals, ok := m.goals[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &goals, nil
}

func (m *Memory) UpsertGoals(_ context.Context, goals Goals) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(CollectionGoals); err != nil {
		return err
	}
	m.goals[goals.UserID] = goals
	return nil
}

func (m *Memory) ListWorkoutsSince(_ context.Context, userID, since string, limit int) ([]Workout, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(CollectionWorkouts); err != nil {
		return nil, err
	}

	var workouts []Workout
	for _, w := range m.workouts {
		// YYYY-MM-DD compares lexically
		if w.UserID == userID && w.Date >= since {
			workouts = append(workouts, w)
		}
	}
	sort.SliceStable(workouts, func(i, j int) bool {
		if workouts[i].Date != workouts[j].Date {
			return workouts[i].Date > workouts[j].Date
		}
		return workouts[i].CreatedAt.After(workouts[j].CreatedAt)
	})
	if limit > 0 && len(workouts) > limit {
		workouts = workouts[:limit]
	}
	return workouts, nil
}

func (m *Memory) ListFoodEntriesSince(_ context.Context, userID, since string) ([]FoodEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(CollectionFoodEntries); err != nil {
		return nil, err
	}

	var entries []FoodEntry
	for _, e := range m.foodEntries {
		if e.UserID == userID && e.Date >= since {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date > entries[j].Date
		}
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries, nil
}

func (m *Memory) ListPlannedItems(_ context.Context, userID, from string) ([]PlannedItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(CollectionPlannedItems); err != nil {
		return nil, err
	}

	var items []PlannedItem
	for _, p := range m.plannedItems {
		if p.UserID == userID && p.Date >= from {
			items = append(items, p)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Date != items[j].Date {
			return items[i].Date < items[j].Date
		}
		return items[i].Time < items[j].Time
	})
	return items, nil
}

func (m *Memory) LatestProgress(_ context.Context, userID string) (*ProgressEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(CollectionProgress); err != nil {
		return nil, err
	}

	var latest *ProgressEntry
	for i := range m.progress {
		p := m.progress[i]
		if p.UserID != userID {
			continue
		}
		// later inserts win ties on the same day
		if latest == nil || p.Date >= latest.Date {
			latest = &p
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	return latest, nil
}

func (m *Memory) AddProgressEntry(_ context.Context, entry ProgressEntry) (*ProgressEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.failure(CollectionProgress); err != nil {
		return nil, err
	}

	entry.ID = uuid.NewString()
	m.progress = append(m.progress, entry)
	return &entry, nil
}

// Counts reports the number of stored rows per write collection.
func (m *Memory) Counts() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]int{
		CollectionWorkouts:     len(m.workouts),
		CollectionExercises:    len(m.exercises),
		CollectionExerciseSets: len(m.exerciseSets),
		CollectionFoodEntries:  len(m.foodEntries),
		CollectionPlannedItems: len(m.plannedItems),
	}
}

func (m *Memory) Exercises(workoutID string) []Exercise {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Exercise
	for _, e := range m.exercises {
		if e.WorkoutID == workoutID {
			out = append(out, e)
		}
	}
	return out
}

func (m *Memory) ExerciseSets(exerciseID string) []ExerciseSet {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ExerciseSet
	for _, s := range m.exerciseSets {
		if s.ExerciseID == exerciseID {
			out = append(out, s)
		}
	}
	return out
}
