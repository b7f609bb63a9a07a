// Package translate provides advisory Hebrew-to-English translation of
// transaction descriptions. The stored description always stays in the
// original language; translations only ever land in the notes field.
package translate

import (
	"context"
	"regexp"
	"strings"
)

var hebrewPattern = regexp.MustCompile(`[\x{0590}-\x{05FF}]`)

// HasHebrew reports whether s contains any Hebrew characters.
func HasHebrew(s string) bool {
	return hebrewPattern.MatchString(s)
}

// Translator is the remote-translation port. A failed translation degrades
// to no note, never to a changed description.
type Translator interface {
	Translate(ctx context.Context, text string) (string, error)
}

// Annotate appends an English note to existing notes. Returns notes
// unchanged when the translation is empty or identical to the original.
func Annotate(notes, original, translated string) string {
	translated = strings.TrimSpace(translated)
	if translated == "" || translated == original {
		return notes
	}
	note := "English: " + translated
	if notes == "" {
		return note
	}
	return notes + " | " + note
}
