// Package textutils normalizes text pulled out of bank exports: markup
// stripping, entity decoding and whitespace cleanup.
package textutils

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	tagPattern           = regexp.MustCompile(`<[^>]*>`)
	decimalEntityPattern = regexp.MustCompile(`&#(\d+);`)
	hexEntityPattern     = regexp.MustCompile(`&#[xX]([0-9a-fA-F]+);`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
)

// namedEntities are decoded in this exact order. Decoding &amp; before the
// bracket entities makes double-encoded fragments like &amp;lt; collapse
// fully, and a fixed order keeps Clean deterministic call to call.
var namedEntities = []struct {
	entity string
	text   string
}{
	{"&nbsp;", " "},
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&apos;", "'"},
}

// Clean turns a markup fragment into plain text: tags removed, entities
// decoded, directional marks stripped, whitespace collapsed. Running it on
// already-clean text is a no-op.
func Clean(fragment string) string {
	text := tagPattern.ReplaceAllString(fragment, " ")

	for _, e := range namedEntities {
		text = strings.ReplaceAll(text, e.entity, e.text)
	}

	text = decimalEntityPattern.ReplaceAllStringFunc(text, func(match string) string {
		digits := match[2 : len(match)-1]
		code, err := strconv.ParseInt(digits, 10, 32)
		if err != nil {
			return ""
		}
		return decodeCodePoint(rune(code))
	})
	text = hexEntityPattern.ReplaceAllStringFunc(text, func(match string) string {
		digits := match[3 : len(match)-1]
		code, err := strconv.ParseInt(digits, 16, 32)
		if err != nil {
			return ""
		}
		return decodeCodePoint(rune(code))
	})

	return Sanitize(text)
}

// Sanitize cleans plain text that never carried markup: drops directional
// marks, zero-width joiners and control characters, collapses whitespace and
// trims. Hebrew, Latin and punctuation ranges pass through untouched.
func Sanitize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if isInvisible(r) {
			continue
		}
		if r < 32 && r != '\t' && r != '\n' && r != '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(b.String(), " "))
}

// decodeCodePoint keeps only code points that legitimately occur in bank
// exports. Everything else decodes to nothing rather than mojibake.
func decodeCodePoint(r rune) string {
	if isInvisible(r) {
		return ""
	}
	switch {
	case r >= 32 && r <= 126: // ASCII printable
	case r >= 160 && r <= 255: // Latin-1 supplement
	case r >= 0x0590 && r <= 0x05FF: // Hebrew
	case r >= 0x2000 && r <= 0x206F: // general punctuation
	case r >= 0x20A0 && r <= 0x20CF: // currency symbols
	default:
		return ""
	}
	return string(r)
}

// isInvisible reports whether r is a zero-width or bidirectional control
// character. These show up constantly in Hebrew bank exports and break
// string matching if kept.
func isInvisible(r rune) bool {
	switch r {
	case 0x200C, 0x200D, 0x200E, 0x200F: // ZWNJ, ZWJ, LRM, RLM
		return true
	case 0x200B, 0xFEFF: // zero-width space, BOM
		return true
	case 0x202A, 0x202B, 0x202C, 0x202D, 0x202E: // embedding and override marks
		return true
	case 0x2066, 0x2067, 0x2068, 0x2069: // isolate marks
		return true
	}
	return false
}
