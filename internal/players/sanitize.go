package players

import (
	"regexp"
	"strings"
)

var parentheticalPattern = regexp.MustCompile(`\([^)]*\)`)

// exampleMarkers flag questions that smuggle candidate objects in as
// examples, which would leak guesses outside the direct-guess rule.
var exampleMarkers = []string{"like an ", "like a ", "such as ", "for example", "e.g."}

// SanitizeQuestion keeps the first line of model output, drops
// parenthesized asides and makes sure the result reads as a question. It
// cleans, it does not repair: structurally bad output is rejected by
// hasLeakedHints instead.
func SanitizeQuestion(text string) string {
	q := text
	if idx := strings.IndexAny(q, "\r\n"); idx >= 0 {
		q = q[:idx]
	}
	q = parentheticalPattern.ReplaceAllString(q, "")
	q = strings.TrimSpace(q)
	if q == "" {
		return q
	}
	if !strings.Contains(q, "?") {
		q = strings.TrimRight(q, ".!") + "?"
	}
	return q
}

func hasLeakedHints(question string) bool {
	if strings.ContainsAny(question, "()") {
		return true
	}
	lower := strings.ToLower(question)
	for _, marker := range exampleMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
