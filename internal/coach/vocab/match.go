package vocab

import "strings"

// ContainsPhrase reports whether phrase occurs in text as whole words,
// so "ate" does not match inside "create" and "all" not inside "call".
// Both arguments are expected lower-cased.
func ContainsPhrase(text, phrase string) bool {
	if phrase == "" {
		return false
	}
	start := 0
	for start <= len(text)-len(phrase) {
		idx := strings.Index(text[start:], phrase)
		if idx < 0 {
			return false
		}
		idx += start
		end := idx + len(phrase)
		if isBoundary(text, idx-1) && isBoundary(text, end) {
			return true
		}
		start = idx + 1
	}
	return false
}

// ContainsAny reports whether any of the phrases occurs in text as whole words.
func ContainsAny(text string, phrases []string) bool {
	for _, p := range phrases {
		if ContainsPhrase(text, p) {
			return true
		}
	}
	return false
}

// FirstMatch returns the first phrase from phrases found in text.
func FirstMatch(text string, phrases []string) (string, bool) {
	for _, p := range phrases {
		if ContainsPhrase(text, p) {
			return p, true
		}
	}
	return "", false
}

func isBoundary(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return true
	}
	c := text[i]
	switch {
	case c >= 'a' && c <= 'z':
		return false
	case c >= 'A' && c <= 'Z':
		return false
	case c >= '0' && c <= '9':
		return false
	}
	return true
}
