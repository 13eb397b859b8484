package extract

import (
	"strings"
	"time"

	"github.com/2beens/fitcoach/internal/coach/dates"
	"github.com/2beens/fitcoach/internal/coach/records"
	"github.com/2beens/fitcoach/internal/coach/vocab"
)

const (
	plannerDurationMinutes = 60

	defaultWorkoutTime = "18:00"
	defaultMealTime    = "12:00"
	defaultOtherTime   = "12:00"

	autoWorkoutSessionTitle = "Workout Session"
)

// PlannerItems builds one planner item per resolved date. An unresolved
// recurring request yields no items.
func PlannerItems(message string, now time.Time) []records.PlannerItem {
	lowered := strings.ToLower(message)

	itemType, title := plannerKind(lowered)
	at := dates.ResolveTime(lowered, defaultTimeFor(itemType))

	days := dates.Resolve(lowered, now)
	items := make([]records.PlannerItem, 0, len(days))
	for _, day := range days {
		items = append(items, records.PlannerItem{
			Title:           title,
			Type:            itemType,
			Date:            records.LocalDay(day),
			Time:            at,
			DurationMinutes: plannerDurationMinutes,
		})
	}
	return items
}

// AutoWorkoutSession is the planner item added alongside every created workout.
func AutoWorkoutSession(now time.Time) records.PlannerItem {
	return records.PlannerItem{
		Title:           autoWorkoutSessionTitle,
		Type:            records.PlannerItemWorkout,
		Date:            records.LocalDay(now),
		Time:            defaultWorkoutTime,
		DurationMinutes: plannerDurationMinutes,
	}
}

// plannerKind checks workout words before meal words.
func plannerKind(lowered string) (records.PlannerItemType, string) {
	if vocab.ContainsAny(lowered, vocab.PlannerWorkoutWords) {
		return records.PlannerItemWorkout, "Planned workout session"
	}
	if vocab.ContainsAny(lowered, vocab.PlannerMealWords) {
		return records.PlannerItemMeal, "Planned meal"
	}
	return records.PlannerItemOther, "Planned activity"
}

func defaultTimeFor(itemType records.PlannerItemType) string {
	switch itemType {
	case records.PlannerItemWorkout:
		return defaultWorkoutTime
	case records.PlannerItemMeal:
		return defaultMealTime
	default:
		return defaultOtherTime
	}
}
