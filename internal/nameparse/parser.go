// Package nameparse turns a loosely structured botanical name string into a
// domain.ParsedName. Pure functions: no I/O, no shared state.
package nameparse

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/heartmarshall/namematch-backend/internal/domain"
)

const hybridSign = "×"

type phase int

const (
	phaseGenus phase = iota
	phaseSpecies
	phaseInfra
	phaseAuthors
)

// authorParticles are lowercase words that open an author citation rather than
// an epithet when followed by a capitalized token ("de Candolle", "ex Desv.").
var authorParticles = map[string]bool{
	"de": true, "van": true, "von": true, "der": true, "du": true, "la": true,
	"le": true, "ex": true, "in": true, "et": true, "den": true, "ter": true,
}

// Parse splits raw into genus, epithets, rank marker and author text.
//
// Before any rank marker the first name-like token is the genus, the next
// lowercase one the specific epithet and a further lowercase one the
// infraspecific epithet. A recognised rank marker followed by a name-like token
// sets RankMarker and takes that token as the infraspecific epithet; a later
// marker replaces an earlier one. Remaining tokens form AuthorText, sliced from
// raw so the original spacing survives.
func Parse(raw string) (domain.ParsedName, error) {
	if strings.TrimSpace(raw) == "" {
		return domain.ParsedName{}, &ParseError{Reason: ReasonEmptyInput}
	}

	tokens := tokenize(raw)

	var p domain.ParsedName
	state := phaseGenus
	authorStart := -1

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		var next *token
		if i+1 < len(tokens) {
			next = &tokens[i+1]
		}

		if tok.kind == tokenQuoted {
			if strings.Contains(tok.text, hybridSign) || strings.Contains(tok.text, " x ") {
				p.Hybrid = true
			}
			if state != phaseGenus && authorStart < 0 {
				authorStart = i
				state = phaseAuthors
			}
			continue
		}

		if p.Genus != "" && tok.kind == tokenWord && isMarkerAt(p, tok, next) {
			marker := canonicalMarker(tok.text)
			epithet, hybrid := stripHybrid(cleanWord(next.text))
			p.RankMarker = marker
			p.InfraspecificEpithet = epithet
			p.Hybrid = p.Hybrid || hybrid || strings.HasPrefix(marker, "notho")
			authorStart = -1
			state = phaseAuthors
			i++
			continue
		}

		if state != phaseAuthors && isHybridToken(p, tok, next, state) {
			p.Hybrid = true
			continue
		}

		word, hybrid := stripHybrid(cleanWord(tok.text))

		switch state {
		case phaseGenus:
			if tok.kind == tokenWord && isNameLike(word) {
				p.Genus = word
				p.Hybrid = p.Hybrid || hybrid
				state = phaseSpecies
			}
			continue
		case phaseSpecies:
			if tok.kind == tokenParen && next != nil && isEpithetLike(cleanWord(next.text), p) {
				// Infrageneric name in parentheses: "Rosa (Eurosa) canina".
				continue
			}
			if tok.kind == tokenWord && isEpithetLike(word, p) && !opensCitation(word, next) {
				p.SpecificEpithet = word
				p.Hybrid = p.Hybrid || hybrid
				state = phaseInfra
				continue
			}
		case phaseInfra:
			if tok.kind == tokenWord && isEpithetLike(word, p) && !opensCitation(word, next) {
				p.InfraspecificEpithet = word
				p.Hybrid = p.Hybrid || hybrid
				state = phaseAuthors
				continue
			}
		}

		if authorStart < 0 {
			authorStart = i
		}
		state = phaseAuthors
	}

	if p.Genus == "" {
		// No token passed as a genus. Fall back to the letters of the first
		// alphabetic token; the rest is author text.
		for i, tok := range tokens {
			if letters := lettersOf(tok.text); utf8.RuneCountInString(letters) >= 2 {
				p.Genus = letters
				if i+1 < len(tokens) {
					authorStart = i + 1
				}
				break
			}
		}
	}
	if p.IsEmpty() {
		return domain.ParsedName{}, &ParseError{Reason: ReasonUnparseable, Input: raw}
	}

	if authorStart >= 0 {
		last := tokens[len(tokens)-1]
		p.AuthorText = strings.TrimSpace(raw[tokens[authorStart].start:last.end])
	}

	return p, nil
}

// Format renders a parsed name as a single-spaced search string.
func Format(p domain.ParsedName) string {
	parts := make([]string, 0, 7)
	if p.Hybrid && p.SpecificEpithet == "" && p.RankMarker == "" {
		parts = append(parts, hybridSign)
	}
	if p.Genus != "" {
		parts = append(parts, p.Genus)
	}
	if p.SpecificEpithet != "" {
		if p.Hybrid && p.RankMarker == "" && p.InfraspecificEpithet == "" {
			parts = append(parts, hybridSign)
		}
		parts = append(parts, p.SpecificEpithet)
	}
	if p.RankMarker != "" {
		parts = append(parts, p.RankMarker)
	}
	if p.InfraspecificEpithet != "" {
		parts = append(parts, p.InfraspecificEpithet)
	}
	if p.AuthorText != "" {
		parts = append(parts, strings.Join(strings.Fields(p.AuthorText), " "))
	}
	return strings.Join(parts, " ")
}

// isMarkerAt reports whether tok is a rank marker that is followed by a token
// that can be the epithet it introduces. A trailing "f." therefore stays in the
// author text ("L. f."), as does "Ser." in "Ser. ex DC.".
func isMarkerAt(p domain.ParsedName, tok token, next *token) bool {
	marker := canonicalMarker(tok.text)
	if marker == "" || next == nil || next.kind != tokenWord {
		return false
	}
	epithet, _ := stripHybrid(cleanWord(next.text))
	if authorParticles[strings.ToLower(epithet)] {
		return false
	}
	if isInfragenericMarker(marker) {
		return p.SpecificEpithet == "" && p.InfraspecificEpithet == "" &&
			isNameLike(epithet) && startsUpper(epithet)
	}
	return isEpithetLike(epithet, p)
}

func isInfragenericMarker(marker string) bool {
	switch marker {
	case "subg.", "sect.", "subsect.", "ser.", "subser.":
		return true
	}
	return false
}

// isHybridToken reports whether tok is a standalone hybrid sign. A bare "x" only
// counts where a hybrid sign is expected: before the genus or between genus
// and specific epithet.
func isHybridToken(p domain.ParsedName, tok token, next *token, state phase) bool {
	if tok.kind != tokenWord {
		return false
	}
	if tok.text == hybridSign {
		return true
	}
	if tok.text != "x" && tok.text != "X" || next == nil {
		return false
	}
	nextWord, _ := stripHybrid(cleanWord(next.text))
	switch state {
	case phaseGenus:
		return isNameLike(nextWord) && startsUpper(nextWord)
	case phaseSpecies:
		return isEpithetLike(nextWord, p)
	}
	return false
}

// opensCitation reports whether a lowercase word is an author particle
// followed by a capitalized token.
func opensCitation(word string, next *token) bool {
	if !authorParticles[strings.ToLower(word)] || next == nil {
		return false
	}
	return startsUpper(next.text)
}

func stripHybrid(word string) (string, bool) {
	if strings.HasPrefix(word, hybridSign) {
		return strings.TrimPrefix(word, hybridSign), true
	}
	return word, false
}

// cleanWord drops trailing separators that are not part of a name.
func cleanWord(s string) string {
	return strings.TrimRight(s, ",;:")
}

// isNameLike reports whether s looks like a name part: at least two runes,
// letters only, with inner hyphens allowed ("novae-angliae").
func isNameLike(s string) bool {
	if utf8.RuneCountInString(s) < 2 {
		return false
	}
	if strings.HasPrefix(s, "-") || strings.HasSuffix(s, "-") {
		return false
	}
	for _, r := range s {
		if r != '-' && !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func isLowerNameLike(s string) bool {
	if !isNameLike(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLower(r)
}

// isEpithetLike reports whether s can be an epithet. Epithets are lowercase;
// when the genus was typed in capitals ("ROSA CANINA") capital epithets are
// accepted too.
func isEpithetLike(s string, p domain.ParsedName) bool {
	return isLowerNameLike(s) || isUpperName(p.Genus) && isUpperName(s)
}

// isUpperName reports whether s is a name-like token written in capitals.
func isUpperName(s string) bool {
	return isNameLike(s) && s == strings.ToUpper(s) && s != strings.ToLower(s)
}

// lettersOf returns the letters of s, dropping everything else.
func lettersOf(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, s)
}

func startsUpper(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsUpper(r)
}
