package fitctx

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/fitcoach/internal/coach/records"
	"github.com/2beens/fitcoach/internal/store"
	"github.com/2beens/fitcoach/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	NoContext = "No user context available."
	Fallback  = "User context is temporarily unavailable."

	notSpecified = "Not specified"
	notRecorded  = "Not recorded"

	workoutsWindowDays = 7
	workoutsShown      = 5
	mealsWindowDays    = 3
	mealDaysShown      = 2
)

type contextStore interface {
	GetProfile(ctx context.Context, userID string) (*store.Profile, error)
	GetGoals(ctx context.Context, userID string) (*store.Goals, error)
	ListWorkoutsSince(ctx context.Context, userID, since string, limit int) ([]store.Workout, error)
	ListFoodEntriesSince(ctx context.Context, userID, since string) ([]store.FoodEntry, error)
	LatestProgress(ctx context.Context, userID string) (*store.ProgressEntry, error)
}

// Builder assembles the read-only fitness digest used to condition the coach reply.
type Builder struct {
	store contextStore
}

func NewBuilder(store contextStore) *Builder {
	return &Builder{
		store: store,
	}
}

// Build returns the digest for userID as of now. Missing rows render as placeholders,
// any read error yields Fallback.
func (b *Builder) Build(ctx context.Context, userID string, now time.Time) string {
	if strings.TrimSpace(userID) == "" {
		return NoContext
	}

	digest, err := b.build(ctx, userID, now)
	if err != nil {
		log.Errorf("build fitness context for user %s: %s", userID, err)
		return Fallback
	}
	return digest
}

func (b *Builder) build(ctx context.Context, userID string, now time.Time) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "fitctx.build")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	profile, err := b.store.GetProfile(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("get profile: %w", err)
	}

	goals, err := b.store.GetGoals(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("get goals: %w", err)
	}

	workoutsSince := records.LocalDay(now.AddDate(0, 0, -workoutsWindowDays))
	workouts, err := b.store.ListWorkoutsSince(ctx, userID, workoutsSince, workoutsShown)
	if err != nil {
		return "", fmt.Errorf("list workouts: %w", err)
	}

	mealsSince := records.LocalDay(now.AddDate(0, 0, -mealsWindowDays))
	entries, err := b.store.ListFoodEntriesSince(ctx, userID, mealsSince)
	if err != nil {
		return "", fmt.Errorf("list food entries: %w", err)
	}

	progress, err := b.store.LatestProgress(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return "", fmt.Errorf("latest progress: %w", err)
	}

	var sb strings.Builder
	writeProfile(&sb, profile)
	sb.WriteString("\n")
	writeGoals(&sb, goals)
	sb.WriteString("\n")
	writeWorkouts(&sb, workouts)
	sb.WriteString("\n")
	writeMeals(&sb, entries)
	sb.WriteString("\n")
	writeProgress(&sb, progress)

	return strings.TrimRight(sb.String(), "\n"), nil
}

func writeProfile(sb *strings.Builder, p *store.Profile) {
	if p == nil {
		p = &store.Profile{}
	}
	sb.WriteString("User Profile:\n")
	line(sb, "Name", str(p.FullName, notSpecified))
	line(sb, "Age", integer(p.Age, "", notSpecified))
	line(sb, "Height", float(p.HeightCm, " cm", notSpecified))
	line(sb, "Weight", float(p.WeightKg, " kg", notSpecified))
	line(sb, "Fitness level", str(p.FitnessLevel, notSpecified))
	line(sb, "Activity level", str(p.ActivityLevel, notSpecified))
}

func writeGoals(sb *strings.Builder, g *store.Goals) {
	if g == nil {
		g = &store.Goals{}
	}
	sb.WriteString("Goals:\n")
	line(sb, "Daily calories", integer(g.DailyCalories, " kcal", notSpecified))
	line(sb, "Protein", float(g.ProteinGrams, " g", notSpecified))
	line(sb, "Carbs", float(g.CarbsGrams, " g", notSpecified))
	line(sb, "Fat", float(g.FatGrams, " g", notSpecified))
	line(sb, "Weekly workouts", integer(g.WeeklyWorkouts, "", notSpecified))
	line(sb, "Target weight", float(g.TargetWeightKg, " kg", notSpecified))
}

func writeWorkouts(sb *strings.Builder, workouts []store.Workout) {
	sb.WriteString("Recent Workouts (last 7 days):\n")
	if len(workouts) == 0 {
		sb.WriteString("- " + notRecorded + "\n")
		return
	}
	if len(workouts) > workoutsShown {
		workouts = workouts[:workoutsShown]
	}
	for _, w := range workouts {
		if w.DurationMinutes > 0 {
			fmt.Fprintf(sb, "- %s: %s (%d min)\n", w.Date, w.Name, w.DurationMinutes)
		} else {
			fmt.Fprintf(sb, "- %s: %s\n", w.Date, w.Name)
		}
	}
}

type dayTotal struct {
	date     string
	calories int
	entries  int
}

func writeMeals(sb *strings.Builder, entries []store.FoodEntry) {
	sb.WriteString("Recent Meals (last 3 days):\n")

	// entries come newest first, keep that order per day
	var days []*dayTotal
	byDate := make(map[string]*dayTotal)
	for _, e := range entries {
		d, ok := byDate[e.Date]
		if !ok {
			d = &dayTotal{date: e.Date}
			byDate[e.Date] = d
			days = append(days, d)
		}
		d.calories += e.Calories
		d.entries++
	}

	if len(days) == 0 {
		sb.WriteString("- " + notRecorded + "\n")
		return
	}
	if len(days) > mealDaysShown {
		days = days[:mealDaysShown]
	}
	for _, d := range days {
		fmt.Fprintf(sb, "- %s: %d kcal (%d %s)\n", d.date, d.calories, d.entries, plural(d.entries, "entry", "entries"))
	}
}

func writeProgress(sb *strings.Builder, p *store.ProgressEntry) {
	sb.WriteString("Latest Progress:\n")
	if p == nil {
		sb.WriteString("- " + notRecorded + "\n")
		return
	}
	line(sb, "Date", p.Date)
	line(sb, "Weight", float(p.WeightKg, " kg", notRecorded))
	line(sb, "Body fat", float(p.BodyFatPct, "%", notRecorded))
	line(sb, "Notes", str(p.Notes, notRecorded))
}

func line(sb *strings.Builder, label, value string) {
	sb.WriteString("- ")
	sb.WriteString(label)
	sb.WriteString(": ")
	sb.WriteString(value)
	sb.WriteString("\n")
}

func str(v *string, absent string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return absent
	}
	return *v
}

func integer(v *int, unit, absent string) string {
	if v == nil {
		return absent
	}
	return strconv.Itoa(*v) + unit
}

func float(v *float64, unit, absent string) string {
	if v == nil {
		return absent
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + unit
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
