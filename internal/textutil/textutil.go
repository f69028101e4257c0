// Package textutil holds the text and regex utilities the core extraction
// pipeline shares: normalized inner-text extraction, whitespace/comma
// detection across Unicode punctuation variants, word counting, and
// token-set text similarity. All of this operates on plain strings, so it
// has no dependency on the dom package.
package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// commas lists every comma-like code point the scoring engine must count,
// per the source algorithm's Unicode comma table. Restricting this to a
// literal ASCII "," would silently under-score CJK and Arabic prose.
var commas = []rune{
	',',      // U+002C COMMA
	'،', // ARABIC COMMA
	'﹐', // SMALL COMMA
	'︐', // PRESENTATION FORM FOR VERTICAL COMMA
	'︑', // PRESENTATION FORM FOR VERTICAL IDEOGRAPHIC COMMA
	'⹁', // REVERSED COMMA
	'⸴', // RAISED COMMA
	'⸲', // TURNED COMMA
	'，', // FULLWIDTH COMMA
}

var whitespaceRe = regexp.MustCompile(`[\t\n\r ]+`)

// CountCommas returns the number of comma-like runes (see commas) in s.
func CountCommas(s string) int {
	n := 0
	for _, r := range s {
		for _, c := range commas {
			if r == c {
				n++
				break
			}
		}
	}
	return n
}

// NormalizeWhitespace collapses runs of tab/newline/CR/space into a single
// space and trims the result. This mirrors the source's
// `.replace(/[\t\n\r ]+/g, " ").trim()` normalization used throughout the
// pipeline for innerText comparisons.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// IsWhitespace reports whether s is empty or consists solely of Unicode
// whitespace.
func IsWhitespace(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// WordCount returns the number of whitespace-delimited words in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Unescape decodes HTML entities (&amp;, &#39;, etc.) in s.
func Unescape(s string) string {
	return html.UnescapeString(s)
}

// Similarity computes a token-set similarity between a and b: the fraction
// of the union of their (lowercased, whitespace-tokenized) word sets that
// the intersection accounts for, following the source's textSimilarity
// heuristic (used for JSON-LD title disambiguation). Returns a value in
// [0, 1].
func Similarity(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 && len(tb) == 0 {
		return 1
	}
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	union := make(map[string]struct{}, len(ta)+len(tb))
	for t := range ta {
		union[t] = struct{}{}
	}
	for t := range tb {
		union[t] = struct{}{}
	}
	inter := 0
	for t := range ta {
		if _, ok := tb[t]; ok {
			inter++
		}
	}
	return float64(inter) / float64(len(union))
}

func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// LooksLikeURL reports whether s parses as an absolute http(s) URL, used to
// reject byline values sourced from article:author that are actually
// profile URLs rather than names.
var urlRe = regexp.MustCompile(`^https?://\S+$`)

func LooksLikeURL(s string) bool {
	return urlRe.MatchString(strings.TrimSpace(s))
}
