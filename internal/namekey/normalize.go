// Package namekey derives the comparison keys used to look names up in the
// index. Every function is total and deterministic, and applying a function to
// its own output returns that output unchanged.
package namekey

import (
	"strings"
	"unicode"

	"github.com/heartmarshall/namematch-backend/internal/domain"
)

// Separator joins key segments.
const Separator = "|"

const (
	nameSegments = 4
	fullSegments = 5
)

// Normalize returns the name key and full key for p.
//
// Name is genus|specificEpithet|infraspecificEpithet|rankMarker with empty
// segments kept, so names differing only in rank do not collide. Full appends
// the normalized author text as a fifth segment.
func Normalize(p domain.ParsedName) domain.NameKey {
	name := strings.Join([]string{
		NamePart(p.Genus),
		NamePart(p.SpecificEpithet),
		NamePart(p.InfraspecificEpithet),
		Marker(p.RankMarker),
	}, Separator)

	return domain.NameKey{
		Name: name,
		Full: name + Separator + Author(p.AuthorText),
	}
}

// NormalizeKey re-normalizes a key produced by Normalize, segment by segment.
// A key with four segments is treated as a name key, five as a full key.
func NormalizeKey(key string) string {
	segs := strings.Split(key, Separator)
	if len(segs) > fullSegments {
		segs = append(segs[:fullSegments-1], strings.Join(segs[fullSegments-1:], " "))
	}
	for len(segs) < nameSegments {
		segs = append(segs, "")
	}

	out := make([]string, len(segs))
	for i, s := range segs {
		switch {
		case i < 3:
			out[i] = NamePart(s)
		case i == 3:
			out[i] = Marker(s)
		default:
			out[i] = Author(s)
		}
	}
	return strings.Join(out, Separator)
}

// NamePart normalizes a genus or epithet: folded, letters and inner hyphens only.
func NamePart(s string) string {
	var b strings.Builder
	for _, r := range fold(s) {
		if unicode.IsLetter(r) || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-")
}

// Marker normalizes a rank marker: folded, letters and periods only.
func Marker(s string) string {
	var b strings.Builder
	for _, r := range fold(s) {
		if unicode.IsLetter(r) || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Author normalizes an author citation.
//
// A period is kept only after a single-letter word ("L.", "J.") and is
// otherwise replaced by a space; spaces after a kept period are removed, so
// "J. Presl" and "J.Presl" compare equal. The word "et" becomes "&".
// Parentheses, commas and other punctuation are dropped.
func Author(s string) string {
	var b strings.Builder
	run := 0
	for _, r := range fold(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			run++
			continue
		case r == '.':
			if run == 1 {
				b.WriteRune('.')
			} else {
				b.WriteRune(' ')
			}
		case r == '&' || r == '-' || r == '\'':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
		run = 0
	}

	words := strings.Fields(b.String())
	for i, w := range words {
		if w == "et" {
			words[i] = "&"
		}
	}
	return strings.ReplaceAll(strings.Join(words, " "), ". ", ".")
}
