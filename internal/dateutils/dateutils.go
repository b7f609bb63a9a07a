// Package dateutils normalizes the date formats found in bank exports into a
// single canonical representation.
package dateutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateLayoutISO is the canonical date layout used across the pipeline.
const DateLayoutISO = "2006-01-02"

const (
	minYear = 2000
	maxYear = 2100
)

var (
	slashPattern   = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})/(\d{4})$`)
	dotPattern     = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4})$`)
	lenientPattern = regexp.MustCompile(`(\d{1,2})[./](\d{1,2})[./](\d{4})`)
	dashPattern    = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})-(\d{4})$`)
	isoPattern     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

// Normalize converts a date string into canonical YYYY-MM-DD form. Day-first
// formats with slash, dot or dash separators are tried in order, then a
// lenient scan anywhere in the string, then ISO passthrough. The second
// return value is false when nothing in the string is a real calendar date;
// callers treat that as "skip row", never as a fatal error.
func Normalize(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	for _, pattern := range []*regexp.Regexp{slashPattern, dotPattern} {
		if m := pattern.FindStringSubmatch(s); m != nil {
			if iso, ok := buildDayFirst(m[1], m[2], m[3]); ok {
				return iso, true
			}
		}
	}

	if m := lenientPattern.FindStringSubmatch(s); m != nil {
		if iso, ok := buildDayFirst(m[1], m[2], m[3]); ok {
			return iso, true
		}
	}

	if m := dashPattern.FindStringSubmatch(s); m != nil {
		if iso, ok := buildDayFirst(m[1], m[2], m[3]); ok {
			return iso, true
		}
	}

	if m := isoPattern.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		day, _ := strconv.Atoi(m[3])
		if iso, ok := buildISO(year, month, day); ok {
			return iso, true
		}
	}

	return "", false
}

func buildDayFirst(dayStr, monthStr, yearStr string) (string, bool) {
	day, _ := strconv.Atoi(dayStr)
	month, _ := strconv.Atoi(monthStr)
	year, _ := strconv.Atoi(yearStr)
	return buildISO(year, month, day)
}

// buildISO validates the components against a real calendar. time.Date
// normalizes overflow (31 April becomes 1 May), so a round-trip mismatch
// means the input date does not exist.
func buildISO(year, month, day int) (string, bool) {
	if day < 1 || day > 31 || month < 1 || month > 12 || year < minYear || year > maxYear {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day), true
}

// LooksLikeDayFirst reports whether s starts with a DD/MM/YYYY-shaped value.
// Used for locating the first data row in positional table layouts.
func LooksLikeDayFirst(s string) bool {
	return slashPattern.MatchString(strings.TrimSpace(s))
}
