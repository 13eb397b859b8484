package extract

import (
	"math"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/2beens/fitcoach/internal/coach/records"
	"github.com/2beens/fitcoach/internal/coach/vocab"
)

const defaultMealName = "Mixed meal"

// Macro shares of total calories and kcal per gram.
const (
	proteinShare       = 0.15
	carbsShare         = 0.45
	fatShare           = 0.30
	proteinKcalPerGram = 4
	carbsKcalPerGram   = 4
	fatKcalPerGram     = 9
)

const (
	carbBonus      = 100
	proteinBonus   = 50
	vegetableMinus = 50
)

var baseCalories = map[records.MealType]int{
	records.MealTypeBreakfast: 350,
	records.MealTypeLunch:     450,
	records.MealTypeDinner:    500,
	records.MealTypeSnack:     200,
}

// explicitMealTypes are checked in order before falling back to the hour of day.
var explicitMealTypes = []struct {
	keywords []string
	mealType records.MealType
}{
	{[]string{"breakfast", "brunch"}, records.MealTypeBreakfast},
	{[]string{"lunch"}, records.MealTypeLunch},
	{[]string{"dinner", "supper"}, records.MealTypeDinner},
	{[]string{"snack", "snacked", "snacks"}, records.MealTypeSnack},
}

// foodNamePatterns are tried in order, the first capture wins.
var foodNamePatterns = []*regexp.Regexp{
	// consumption verb + object
	regexp.MustCompile(`\b(?:ate|eaten|eat|eating|had|having|consumed|drank|snacked on)\s+(?:a |an |some |the |my )?([^.!?;]+)`),
	// meal reference + copula + object
	regexp.MustCompile(`\b(?:breakfast|lunch|dinner|snack|meal)\s+(?:was|is|were|consisted of)\s+(?:a |an |some |the )?([^.!?;]+)`),
	// preparation verb + object
	regexp.MustCompile(`\b(?:made|cooked|prepared|grabbed|ordered|baked)\s+(?:myself |me )?(?:a |an |some |the )?([^.!?;]+)`),
}

var (
	trailingClauseRegex  = regexp.MustCompile(`\s+(?:for|at|as|during|this|today|yesterday|tonight)(?:\s+(?:my|a|an|the))?\s*(?:breakfast|brunch|lunch|dinner|supper|snack|today|yesterday|tonight|morning|afternoon|evening)\b.*$`)
	trailingContextRegex = regexp.MustCompile(`\s+(?:(?:after|before|with|during)\s+(?:my|the|our|a|an)\s+\S|(?:post|pre)-?workout\b).*$`)
	trailingTimeRegex    = regexp.MustCompile(`\s+(?:today|yesterday|tonight|earlier|just now)$`)
)

// Meal extracts a meal log from the message; now is the user's local time.
func Meal(message string, now time.Time) records.Meal {
	lowered := strings.ToLower(strings.TrimSpace(message))

	mealType := ResolveMealType(lowered, now)
	calories := EstimateCalories(lowered, mealType)
	protein, carbs, fat := Macros(calories)

	return records.Meal{
		Name:     foodName(lowered),
		MealType: mealType,
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Fat:      fat,
		Date:     records.LocalDay(now),
	}
}

// ResolveMealType uses an explicit meal keyword, else the local hour:
// 6-11 breakfast, 11-16 lunch, 16-22 dinner, otherwise snack.
func ResolveMealType(lowered string, now time.Time) records.MealType {
	for _, e := range explicitMealTypes {
		if vocab.ContainsAny(lowered, e.keywords) {
			return e.mealType
		}
	}

	hour := now.Hour()
	switch {
	case hour >= 6 && hour < 11:
		return records.MealTypeBreakfast
	case hour >= 11 && hour < 16:
		return records.MealTypeLunch
	case hour >= 16 && hour < 22:
		return records.MealTypeDinner
	default:
		return records.MealTypeSnack
	}
}

// EstimateCalories starts from the meal type base and adjusts for carb,
// protein and vegetable words. Each adjustment applies at most once.
func EstimateCalories(lowered string, mealType records.MealType) int {
	calories, ok := baseCalories[mealType]
	if !ok {
		calories = baseCalories[records.MealTypeSnack]
	}
	if vocab.ContainsAny(lowered, vocab.CarbWords) {
		calories += carbBonus
	}
	if vocab.ContainsAny(lowered, vocab.ProteinWords) {
		calories += proteinBonus
	}
	if vocab.ContainsAny(lowered, vocab.VegetableWords) {
		calories -= vegetableMinus
	}
	return calories
}

// Macros splits calories into grams of protein, carbs and fat, rounded to 0.1g.
func Macros(calories int) (protein, carbs, fat float64) {
	kcal := float64(calories)
	protein = roundTenth(kcal * proteinShare / proteinKcalPerGram)
	carbs = roundTenth(kcal * carbsShare / carbsKcalPerGram)
	fat = roundTenth(kcal * fatShare / fatKcalPerGram)
	return protein, carbs, fat
}

func foodName(lowered string) string {
	for _, pattern := range foodNamePatterns {
		m := pattern.FindStringSubmatch(lowered)
		if m == nil {
			continue
		}
		if name := cleanFoodName(m[1]); name != "" {
			return name
		}
	}

	var found []string
	for _, food := range vocab.FoodKeywords {
		if !vocab.ContainsPhrase(lowered, food) || slices.Contains(found, food) {
			continue
		}
		found = append(found, food)
	}
	if len(found) > 0 {
		return strings.Join(found, " and ")
	}

	return defaultMealName
}

func cleanFoodName(raw string) string {
	name := trailingContextRegex.ReplaceAllString(raw, "")
	name = trailingClauseRegex.ReplaceAllString(name, "")
	name = trailingTimeRegex.ReplaceAllString(name, "")
	name = strings.Trim(name, " ,:-")
	return name
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
