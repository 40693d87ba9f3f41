package nameparse

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokenWord tokenKind = iota
	tokenParen
	tokenQuoted
)

// token is a slice of the raw input. start and end are byte offsets so the
// original spacing between tokens can be recovered.
type token struct {
	text  string
	start int
	end   int
	kind  tokenKind
}

// tokenize splits raw on whitespace. A word is also split before an inner
// hybrid sign, so "Rosa×damascena" yields "Rosa" and "×damascena". Text enclosed in parentheses and text
// enclosed in double quotes (straight or typographic) is kept as a single token
// even when it contains spaces. An unclosed group runs to the end of the input.
func tokenize(raw string) []token {
	var tokens []token

	i := 0
	for i < len(raw) {
		r, size := utf8.DecodeRuneInString(raw[i:])
		if unicode.IsSpace(r) {
			i += size
			continue
		}

		start := i
		kind := tokenWord
		switch {
		case r == '(':
			kind = tokenParen
			i = scanParen(raw, i)
		case r == '"' || r == '“':
			kind = tokenQuoted
			i = scanQuoted(raw, i+size)
		default:
			i = scanWord(raw, i)
			tokens = appendWordSplit(tokens, raw, start, i)
			continue
		}

		tokens = append(tokens, token{text: raw[start:i], start: start, end: i, kind: kind})
	}

	return tokens
}

// scanParen returns the offset just past the parenthesis matching the one at i.
func scanParen(raw string, i int) int {
	depth := 0
	for i < len(raw) {
		r, size := utf8.DecodeRuneInString(raw[i:])
		i += size
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return i
}

// scanQuoted returns the offset just past the closing quote. i points after the
// opening quote.
func scanQuoted(raw string, i int) int {
	for i < len(raw) {
		r, size := utf8.DecodeRuneInString(raw[i:])
		i += size
		if r == '"' || r == '”' {
			return i
		}
	}
	return i
}

func scanWord(raw string, i int) int {
	for i < len(raw) {
		r, size := utf8.DecodeRuneInString(raw[i:])
		if unicode.IsSpace(r) {
			return i
		}
		i += size
	}
	return i
}

// appendWordSplit appends the word raw[start:end], cut before every hybrid
// sign that is not its first rune.
func appendWordSplit(tokens []token, raw string, start, end int) []token {
	from := start
	for {
		at := strings.Index(raw[from+1:end], hybridSign)
		if at < 0 {
			break
		}
		cut := from + 1 + at
		tokens = append(tokens, token{text: raw[from:cut], start: from, end: cut, kind: tokenWord})
		from = cut
	}
	return append(tokens, token{text: raw[from:end], start: from, end: end, kind: tokenWord})
}
