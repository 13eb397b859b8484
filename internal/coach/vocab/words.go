package vocab

// Keyword tables shared by the classifier and the extractors.
// Order matters wherever a table is scanned for a first match.

var (
	CreationVerbs = []string{
		"create", "make", "build", "design", "generate", "give me",
		"put together", "come up with", "suggest", "need a new", "want a new",
		"new workout plan", "new training plan", "new program",
	}

	// ArchetypePhrases name a workout template on their own, so "push workout"
	// or "leg day" asks for a new workout even without a creation verb.
	ArchetypePhrases = []string{
		"push workout", "pull workout", "leg workout", "legs workout",
		"push day", "pull day", "leg day", "arm day", "chest day", "back day",
		"shoulder day", "upper body workout", "lower body workout",
		"full body workout", "full-body workout", "cardio workout",
		"hiit workout", "strength workout", "core workout", "abs workout",
	}

	WorkoutNouns = []string{
		"workout", "workouts", "routine", "training plan", "workout plan",
		"training program", "program", "training session", "exercise plan",
		"leg day", "push day", "pull day", "arm day", "chest day", "back day",
	}

	// LoggingVerbs are phrasings of something already done.
	LoggingVerbs = []string{
		"i did", "just did", "did a", "did some", "completed", "worked out",
		"tried a workout", "tried a new workout", "tried out a new workout",
		"ran", "jogged", "walked", "cycled", "biked", "swam", "lifted",
		"trained", "exercised", "hiked", "rowed", "hit the gym",
		"went to the gym", "went for a run", "went running", "went swimming",
	}

	// Activities are named lifts and cardio activities.
	Activities = []string{
		"bench press", "overhead press", "deadlift", "deadlifts", "squat",
		"squats", "pull-up", "pull-ups", "pullups", "push-up", "push-ups",
		"pushups", "lunges", "running", "jogging", "cycling", "biking",
		"swimming", "rowing", "hiking", "yoga", "pilates", "hiit",
		"crossfit", "spin class",
	}

	// MealPhrases are consumption phrasings that on their own mean food.
	MealPhrases = []string{
		"ate", "eaten", "snacked", "drank",
		"for breakfast", "for lunch", "for dinner", "for a snack", "as a snack",
		"breakfast was", "lunch was", "dinner was", "log meal", "log my meal",
		"log a meal", "log food",
	}

	// WeakMealPhrases only count as food when a meal or food word is present too.
	WeakMealPhrases = []string{
		"i had", "just had", "had a", "had some", "cooked", "made myself",
		"ordered", "grabbed",
	}

	MealWords = []string{
		"breakfast", "lunch", "dinner", "snack", "meal", "brunch",
	}

	PlannerPhrases = []string{
		"schedule", "plan", "planner", "calendar", "remind me", "reminder",
		"book", "add to my", "put on my", "set up a", "every",
	}

	// PlannerWorkoutWords select the workout planner type.
	PlannerWorkoutWords = []string{
		"workout", "workouts", "gym", "training", "exercise", "run", "running",
		"yoga", "cardio", "lifting", "session", "swim", "hiit", "class",
	}

	// PlannerMealWords select the meal planner type.
	PlannerMealWords = []string{
		"meal", "meals", "breakfast", "lunch", "dinner", "snack", "eat",
		"food", "meal prep", "cook", "cooking",
	}

	// FoodKeywords feed the food-name fallback, in output order.
	FoodKeywords = []string{
		"chicken", "beef", "steak", "fish", "salmon", "tuna", "turkey",
		"pork", "shrimp", "tofu", "eggs", "egg", "rice", "pasta", "noodles",
		"bread", "toast", "potatoes", "potato", "oatmeal", "oats", "cereal",
		"salad", "vegetables", "broccoli", "fruit", "banana", "apple",
		"yogurt", "cheese", "sandwich", "pizza", "burger", "soup",
		"smoothie", "protein shake", "nuts",
	}

	CarbWords = []string{
		"rice", "pasta", "bread", "toast", "potato", "potatoes", "fries",
		"pizza", "noodles", "oats", "oatmeal", "cereal", "bagel", "burrito",
		"sandwich", "tortilla", "pancakes",
	}

	ProteinWords = []string{
		"chicken", "beef", "steak", "fish", "salmon", "tuna", "egg", "eggs",
		"turkey", "pork", "tofu", "shrimp", "protein", "yogurt",
	}

	VegetableWords = []string{
		"salad", "vegetables", "veggies", "veg", "broccoli", "spinach",
		"greens", "kale",
	}
)
