package vocab_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/2beens/fitcoach/internal/coach/vocab"
)

func TestContainsPhrase(t *testing.T) {
	cases := []struct {
		text   string
		phrase string
		want   bool
	}{
		{"i ate pasta", "ate", true},
		{"create a workout", "ate", false},
		{"call me maybe", "all", false},
		{"all mondays", "all", true},
		{"ate", "ate", true},
		{"late, then ate.", "ate", true},
		{"bench press today", "bench press", true},
		{"benchpress", "bench press", false},
		{"did 20 push-ups", "push-ups", true},
		{"every monday", "every", true},
		{"everyone is here", "every", false},
		{"", "ate", false},
		{"something", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.text+"/"+tc.phrase, func(t *testing.T) {
			assert.Equal(t, tc.want, vocab.ContainsPhrase(tc.text, tc.phrase))
		})
	}
}

func TestContainsAnyAndFirstMatch(t *testing.T) {
	assert.True(t, vocab.ContainsAny("lunch was great", vocab.MealPhrases))
	assert.False(t, vocab.ContainsAny("what's the weather like", vocab.MealPhrases))

	match, ok := vocab.FirstMatch("squats then bench press", []string{"bench press", "squats"})
	assert.True(t, ok)
	assert.Equal(t, "bench press", match)

	_, ok = vocab.FirstMatch("nothing here", []string{"bench press"})
	assert.False(t, ok)
}
