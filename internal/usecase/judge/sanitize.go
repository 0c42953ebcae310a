package judge

import (
	"regexp"
	"strings"
)

// maxSituationChars caps the situation passed into retrieval and the prompt.
const maxSituationChars = 1000

// injectionPatterns match prompt-injection phrasings that have no place in a
// game-situation description. Matches are removed, the rest of the text is
// kept so a legitimate situation mentioning e.g. "system" still works.
var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+|any\s+)?(previous|prior|above)\s+(instructions?|prompts?)`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+|any\s+)?(previous|prior|above)\s+(instructions?|prompts?)`),
	regexp.MustCompile(`(?i)system\s+prompt`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+`),
	regexp.MustCompile(`(?i)act\s+as\s+(if\s+you\s+are\s+)?a?\s*(different|new)\s+(assistant|ai|model)`),
}

// sanitizeSituation strips prompt-injection phrases and truncates the
// situation to the prompt budget. Truncation counts runes, not bytes, so
// multibyte Korean text is never cut mid-character.
func sanitizeSituation(situation string) string {
	s := situation
	for _, p := range injectionPatterns {
		s = p.ReplaceAllString(s, "")
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxSituationChars {
		s = string(runes[:maxSituationChars])
	}
	return s
}
