package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Package-level compiled regex patterns for performance
var multipleSpacesRegex = regexp.MustCompile(`\s+`)

// stripAccents folds accented characters to their base letters by
// decomposing to NFD, dropping combining marks, and recomposing. This turns
// Swedish å/ä into a and ö into o so pattern tables can be written in plain
// ASCII.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeText canonicalizes rider text for pattern matching: lower-case,
// diacritics folded, whitespace runs collapsed, ends trimmed. Total
// function; any input yields a usable result.
func NormalizeText(text string) string {
	lowered := strings.ToLower(text)
	folded, _, err := transform.String(stripAccents, lowered)
	if err != nil {
		// The chain cannot fail on valid UTF-8; fall back to the lowered
		// text for anything exotic.
		folded = lowered
	}
	collapsed := multipleSpacesRegex.ReplaceAllString(folded, " ")
	return strings.TrimSpace(collapsed)
}
