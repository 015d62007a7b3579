// Package textnorm lower-cases, strips and tokenizes free text for keyword analysis.
//
// Normalization is deliberately lossy: anything outside ASCII letters and digits is
// replaced with a space, so accented or non-Latin words disappear from the token stream.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	tagRe        = regexp.MustCompile(`<[^>]+>`)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

var stopwords = map[string]struct{}{
	"and": {}, "or": {}, "the": {}, "a": {}, "an": {}, "to": {}, "of": {}, "in": {}, "for": {},
	"on": {}, "with": {}, "by": {}, "at": {}, "as": {}, "is": {}, "are": {}, "be": {}, "this": {},
	"that": {}, "from": {}, "over": {}, "into": {}, "about": {}, "your": {}, "our": {}, "their": {},
}

// Normalize lower-cases text, replaces markup tags and punctuation with spaces and
// collapses whitespace. Empty input yields an empty string.
func Normalize(text string) string {
	if text == "" {
		return ""
	}

	out := strings.ToLower(text)
	out = tagRe.ReplaceAllString(out, " ")
	out = nonAlnumRe.ReplaceAllString(out, " ")
	out = whitespaceRe.ReplaceAllString(out, " ")

	return strings.TrimSpace(out)
}

// StripTags replaces markup tags with spaces and leaves everything else as is.
func StripTags(text string) string {
	return tagRe.ReplaceAllString(text, " ")
}

// Tokenize normalizes text and splits it into words. Stopwords are kept;
// callers decide which filtering policy applies.
func Tokenize(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}

	parts := strings.Split(normalized, " ")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			tokens = append(tokens, p)
		}
	}

	return tokens
}

// IsStopword reports whether w belongs to the fixed stopword set.
func IsStopword(w string) bool {
	_, ok := stopwords[w]
	return ok
}

// FilterTokens drops stopwords and, when minLen > 0, every token whose byte length
// is not strictly greater than minLen. Normalized tokens are ASCII, so bytes equal characters.
func FilterTokens(tokens []string, minLen int) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if IsStopword(t) {
			continue
		}
		if minLen > 0 && len(t) <= minLen {
			continue
		}
		out = append(out, t)
	}
	return out
}

// TokenSet returns the deduplicated, stopword-filtered tokens of text.
func TokenSet(text string) map[string]struct{} {
	tokens := FilterTokens(Tokenize(text), 0)
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
