package entities

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldReplacer handles letters that carry no combining mark to strip.
var foldReplacer = strings.NewReplacer(
	"Æ", "Ae", "æ", "ae",
	"Œ", "Oe", "œ", "oe",
	"Ø", "O", "ø", "o",
	"ß", "ss",
	"Ł", "L", "ł", "l",
	"Đ", "D", "đ", "d",
	"Þ", "Th", "þ", "th",
	"ı", "i",
)

// Transliterate reduces a name to its plain-ASCII-equivalent form.
func Transliterate(s string) string {
	folded := foldReplacer.Replace(s)
	// Chains hold state, so each call builds its own.
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(stripMarks, folded)
	if err != nil {
		return folded
	}
	return result
}

// NormalizeName derives the matching key for a display name:
// transliterated, lowercased, commas removed.
func NormalizeName(name string) string {
	lowered := strings.ToLower(Transliterate(strings.TrimSpace(name)))
	return strings.ReplaceAll(lowered, ",", "")
}

// NormalizeWord applies the same folding as NormalizeName to a single token.
func NormalizeWord(word string) string {
	return NormalizeName(word)
}

// NameWords splits a display name into its normalized index words.
func NameWords(name string) []string {
	fields := strings.Fields(name)
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if w := NormalizeWord(f); w != "" {
			words = append(words, w)
		}
	}
	return words
}
