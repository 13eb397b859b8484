package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/fitcoach/internal/coach/records"
	"github.com/2beens/fitcoach/internal/coach/vocab"
)

const (
	defaultWorkoutDuration = 30
	defaultWorkoutName     = "General Workout"
	descriptionMaxRunes    = 100
)

var durationRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(minutes|minute|mins|min|hours|hour|hrs|hr|h)\b`)

type activityName struct {
	keywords []string
	name     string
}

// activityNames maps activity keywords to display names, first match wins.
var activityNames = []activityName{
	{[]string{"bench press", "bench"}, "Bench Press"},
	{[]string{"overhead press", "shoulder press"}, "Overhead Press"},
	{[]string{"deadlift", "deadlifts"}, "Deadlifts"},
	{[]string{"squat", "squats"}, "Squats"},
	{[]string{"pull-up", "pull-ups", "pullups", "chin-ups"}, "Pull-ups"},
	{[]string{"push-up", "push-ups", "pushups"}, "Push-ups"},
	{[]string{"lunges"}, "Lunges"},
	{[]string{"running", "ran", "run", "jogging", "jogged", "jog"}, "Running"},
	{[]string{"cycling", "cycled", "biking", "biked", "bike", "spin class"}, "Cycling"},
	{[]string{"swimming", "swam", "swim"}, "Swimming"},
	{[]string{"rowing", "rowed"}, "Rowing"},
	{[]string{"hiking", "hiked", "hike"}, "Hiking"},
	{[]string{"walking", "walked", "walk"}, "Walking"},
	{[]string{"yoga"}, "Yoga"},
	{[]string{"pilates"}, "Pilates"},
	{[]string{"hiit"}, "HIIT Workout"},
	{[]string{"crossfit"}, "CrossFit"},
	{[]string{"cardio"}, "Cardio Session"},
	{[]string{"weights", "lifted", "lifting", "strength"}, "Strength Training"},
}

// WorkoutLog extracts a completed workout from the message.
func WorkoutLog(message string, now time.Time) records.WorkoutLog {
	lowered := strings.ToLower(message)
	return records.WorkoutLog{
		Name:            workoutName(lowered),
		DurationMinutes: durationMinutes(lowered),
		Description:     truncate(strings.TrimSpace(message), descriptionMaxRunes),
		Date:            records.LocalDay(now),
	}
}

func workoutName(lowered string) string {
	for _, a := range activityNames {
		if vocab.ContainsAny(lowered, a.keywords) {
			return a.name
		}
	}
	return defaultWorkoutName
}

// durationMinutes parses "<n> minutes" or "<n> hours"; hours are converted.
func durationMinutes(lowered string) int {
	m := durationRegex.FindStringSubmatch(lowered)
	if m == nil {
		return defaultWorkoutDuration
	}
	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil || value <= 0 {
		return defaultWorkoutDuration
	}

	minutes := value
	switch m[2] {
	case "hours", "hour", "hrs", "hr", "h":
		minutes = value * 60
	}
	if int(minutes) <= 0 {
		return defaultWorkoutDuration
	}
	return int(minutes)
}

func truncate(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes])
}
