// Package mention implements mention detection and visibility scoring over
// answer text. All computation here is pure and non-blocking.
package mention

import (
	"regexp"
	"strings"
)

// wordPattern matches one token: letters/digits with embedded apostrophes
// (Unicode-aware, so "l'équipe" and "新力" tokenize correctly).
var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:['’][\p{L}\p{N}]+)*`)

// Tokenize splits text into word tokens. Punctuation and symbols are
// dropped, so "costs $10." yields tokens "costs" and "10".
func Tokenize(text string) []string {
	return wordPattern.FindAllString(text, -1)
}

// CountWords returns the token count of text. Zero for empty input.
func CountWords(text string) int {
	return len(Tokenize(text))
}

// normalizeToken lowercases, folds curly apostrophes, and strips possessive
// suffixes so "Acme’s" compares equal to "acme".
func normalizeToken(tok string) string {
	tok = strings.ToLower(tok)
	tok = strings.ReplaceAll(tok, "’", "'")
	tok = strings.TrimSuffix(tok, "'s")
	tok = strings.TrimSuffix(tok, "'")
	return tok
}

// tokenMatches reports whether a normalized text token counts as the
// normalized candidate token, tolerating simple plural forms.
func tokenMatches(token, candidate string) bool {
	if token == candidate {
		return true
	}
	// Plural tolerance: "acmes" or "boxes" match "acme" / "box".
	if token == candidate+"s" || token == candidate+"es" {
		return true
	}
	return false
}
