package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/fitcoach/internal/coach/vocab"
)

const (
	oneWeek            = 7
	defaultWorkoutTime = "18:00"
)

var (
	weekdayRegex     = regexp.MustCompile(`\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)s?\b`)
	monthPrepRegex   = regexp.MustCompile(`\b(?:in|of|during|for|through|throughout)\s+(january|february|march|april|may|june|july|august|september|october|november|december)\b`)
	monthRegex       = regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\b`)
	yearRegex        = regexp.MustCompile(`\b((?:19|20)\d{2})\b`)
	clockAmPmRegex   = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\s*(am|pm)\b`)
	hourAmPmRegex    = regexp.MustCompile(`\b(\d{1,2})\s*(am|pm)\b`)
	clock24HourRegex = regexp.MustCompile(`\b([01]?\d|2[0-3]):([0-5]\d)\b`)

	recurringTriggers = []string{"every", "all"}

	weekdaysByName = map[string]time.Weekday{}
	monthsByName   = map[string]time.Month{}
)

func init() {
	for d := time.Sunday; d <= time.Saturday; d++ {
		weekdaysByName[strings.ToLower(d.String())] = d
	}
	for m := time.January; m <= time.December; m++ {
		monthsByName[strings.ToLower(m.String())] = m
	}
}

// IsRecurring reports whether the message asks for a repeated date ("every", "all").
func IsRecurring(message string) bool {
	return vocab.ContainsAny(strings.ToLower(message), recurringTriggers)
}

// Resolve returns the dates a message refers to: all matching dates for a
// recurring request, otherwise exactly one date. Dates are midnight in now's location.
func Resolve(message string, now time.Time) []time.Time {
	if IsRecurring(message) {
		return ResolveRecurring(message, now)
	}
	return []time.Time{ResolveSingle(message, now)}
}

// ResolveRecurring enumerates every date of the named month falling on the
// named weekday. Missing weekday or month yields an empty result.
func ResolveRecurring(message string, now time.Time) []time.Time {
	lowered := strings.ToLower(message)

	weekday, ok := findWeekday(lowered)
	if !ok {
		return []time.Time{}
	}
	month, ok := findMonth(lowered)
	if !ok {
		return []time.Time{}
	}
	year := findYear(lowered, now)

	first := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	offset := (int(weekday) - int(first.Weekday()) + oneWeek) % oneWeek

	var dates []time.Time
	for d := first.AddDate(0, 0, offset); d.Month() == month; d = d.AddDate(0, 0, oneWeek) {
		dates = append(dates, d)
	}
	return dates
}

// ResolveSingle applies the first matching offset rule to today:
// "tomorrow", then "next week", then a weekday name (1 to 7 days ahead).
func ResolveSingle(message string, now time.Time) time.Time {
	lowered := strings.ToLower(message)
	today := StartOfDay(now)

	if vocab.ContainsPhrase(lowered, "tomorrow") {
		return today.AddDate(0, 0, 1)
	}
	if vocab.ContainsPhrase(lowered, "next week") {
		return today.AddDate(0, 0, oneWeek)
	}
	if weekday, ok := findWeekday(lowered); ok {
		distance := (int(weekday) - int(today.Weekday()) + oneWeek) % oneWeek
		if distance == 0 {
			distance = oneWeek
		}
		return today.AddDate(0, 0, distance)
	}
	return today
}

// ResolveTime returns the HH:MM (24h) time named in the message, or fallback.
// "6:30 pm" and "7pm" are understood, as is a bare 24h "18:30".
func ResolveTime(message, fallback string) string {
	lowered := strings.ToLower(message)

	if m := clockAmPmRegex.FindStringSubmatch(lowered); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if t, ok := to24Hour(hour, minute, m[3]); ok {
			return t
		}
	}
	if m := hourAmPmRegex.FindStringSubmatch(lowered); m != nil {
		hour, _ := strconv.Atoi(m[1])
		if t, ok := to24Hour(hour, 0, m[2]); ok {
			return t
		}
	}
	if m := clock24HourRegex.FindStringSubmatch(lowered); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%02d:%02d", hour, minute)
	}

	if fallback == "" {
		return defaultWorkoutTime
	}
	return fallback
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func to24Hour(hour, minute int, meridiem string) (string, bool) {
	if hour < 1 || hour > 12 || minute < 0 || minute > 59 {
		return "", false
	}
	switch {
	case meridiem == "am" && hour == 12:
		hour = 0
	case meridiem == "pm" && hour != 12:
		hour += 12
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

func findWeekday(lowered string) (time.Weekday, bool) {
	m := weekdayRegex.FindStringSubmatch(lowered)
	if m == nil {
		return 0, false
	}
	return weekdaysByName[m[1]], true
}

// findMonth prefers a month introduced by a preposition ("in may") over a
// bare month word, since "may" is also a modal verb.
func findMonth(lowered string) (time.Month, bool) {
	if m := monthPrepRegex.FindStringSubmatch(lowered); m != nil {
		return monthsByName[m[1]], true
	}
	if m := monthRegex.FindStringSubmatch(lowered); m != nil {
		return monthsByName[m[1]], true
	}
	return 0, false
}

func findYear(lowered string, now time.Time) int {
	if m := yearRegex.FindStringSubmatch(lowered); m != nil {
		if year, err := strconv.Atoi(m[1]); err == nil {
			return year
		}
	}
	if strings.Contains(lowered, "next year") {
		return now.Year() + 1
	}
	// "this year" and no year at all both mean the current one
	return now.Year()
}
