package game

import (
	"regexp"
	"strings"
)

var (
	nonAlnumPattern    = regexp.MustCompile(`[^a-z0-9]+`)
	directGuessPattern = regexp.MustCompile(`(?i)\bis it\s+(?:an?|the)\s+(.+?)[?.!]*$`)
)

// Normalize canonicalizes an object name for equality checks: lower-case,
// every maximal run of characters outside [a-z0-9] collapsed to a single
// space, outer whitespace trimmed.
func Normalize(name string) string {
	return strings.TrimSpace(nonAlnumPattern.ReplaceAllString(strings.ToLower(name), " "))
}

// SameObject reports whether two object names denote the same object under
// normalization. A missing name never matches anything, including another
// missing name.
func SameObject(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == "" || nb == "" {
		return false
	}
	return na == nb
}

// ParseYesNo extracts a yes/no polarity from free text. Exact y/yes/n/no
// tokens win after trimming; otherwise text mentioning one polarity but not
// the other is accepted. The permissive fallback is needed because model
// output is not guaranteed to be a bare token.
func ParseYesNo(text string) (Answer, bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	switch t {
	case "y", "yes":
		return Yes, true
	case "n", "no":
		return No, true
	}
	hasYes := strings.Contains(t, "yes")
	hasNo := strings.Contains(t, "no")
	if hasYes && !hasNo {
		return Yes, true
	}
	if hasNo && !hasYes {
		return No, true
	}
	return "", false
}

// ParseGuess extracts the guess from a "GUESS: cat" style line. The prefix
// match is case-insensitive; the remainder after the first colon is trimmed.
func ParseGuess(text string) (string, bool) {
	t := strings.TrimSpace(text)
	const prefix = "guess:"
	if len(t) < len(prefix) || !strings.EqualFold(t[:len(prefix)], prefix) {
		return "", false
	}
	guess := strings.TrimSpace(t[len(prefix):])
	if guess == "" {
		return "", false
	}
	return guess, true
}

// ExtractDirectGuess recognizes questions of the form "is it a/an/the X",
// tolerating trailing punctuation, and returns the guessed phrase. The
// article is required so that property questions like "is it red?" are
// never misclassified as guesses. Other phrasings ("could it be an X") are
// deliberately not recognized and fall through to the free-text answerer.
func ExtractDirectGuess(question string) (string, bool) {
	m := directGuessPattern.FindStringSubmatch(strings.TrimSpace(question))
	if m == nil {
		return "", false
	}
	guess := strings.TrimSpace(m[1])
	if guess == "" {
		return "", false
	}
	return guess, true
}

// DirectGuessAnswer answers "is it a/an/the X" questions by exact normalized
// comparison against the secret, bypassing the free-text answerer for this
// one unambiguous case. It is authoritative: callers must consult it before
// delegating to any model-backed answerer. Not-ok means the question is not
// a direct guess (or the secret is missing) and the caller should defer.
func DirectGuessAnswer(secret, question string) (Answer, bool) {
	if strings.TrimSpace(secret) == "" {
		return "", false
	}
	guess, ok := ExtractDirectGuess(question)
	if !ok {
		return "", false
	}
	if !SameObject(guess, secret) {
		// Guard against a guess that normalizes to nothing ("is it a ???").
		if Normalize(guess) == "" {
			return "", false
		}
		return No, true
	}
	return Yes, true
}
