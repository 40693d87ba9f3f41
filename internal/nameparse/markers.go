package nameparse

import (
	"strings"

	"github.com/heartmarshall/namematch-backend/internal/domain"
)

// rankMarkers maps every accepted spelling of a rank abbreviation (lower case,
// trailing period removed) to its canonical form.
var rankMarkers = map[string]string{
	"subsp":      "subsp.",
	"ssp":        "subsp.",
	"subspecies": "subsp.",
	"nothosubsp": "nothosubsp.",
	"var":        "var.",
	"variety":    "var.",
	"varietas":   "var.",
	"nothovar":   "nothovar.",
	"subvar":     "subvar.",
	"f":          "f.",
	"fo":         "f.",
	"forma":      "f.",
	"nothof":     "nothof.",
	"subf":       "subf.",
	"subforma":   "subf.",
	"prol":       "prol.",
	"proles":     "prol.",
	"subg":       "subg.",
	"subgen":     "subg.",
	"subgenus":   "subg.",
	"sect":       "sect.",
	"sectio":     "sect.",
	"subsect":    "subsect.",
	"ser":        "ser.",
	"series":     "ser.",
	"subser":     "subser.",
}

// markerRanks maps a canonical marker to the rank it denotes.
var markerRanks = map[string]domain.Rank{
	"subsp.":      domain.RankSubspecies,
	"nothosubsp.": domain.RankSubspecies,
	"var.":        domain.RankVariety,
	"nothovar.":   domain.RankVariety,
	"subvar.":     domain.RankSubvariety,
	"f.":          domain.RankForm,
	"nothof.":     domain.RankForm,
	"subf.":       domain.RankSubform,
	"prol.":       domain.RankProle,
	"subg.":       domain.RankSubgenus,
	"sect.":       domain.RankSection,
	"subsect.":    domain.RankSubsection,
	"ser.":        domain.RankSeries,
	"subser.":     domain.RankSubseries,
}

// canonicalMarker returns the canonical marker for a token, or "" if the token
// is not in the vocabulary.
func canonicalMarker(token string) string {
	t := strings.ToLower(strings.TrimSuffix(token, "."))
	return rankMarkers[t]
}

// RankForMarker returns the rank denoted by a rank marker. Both canonical and
// alternative spellings are accepted. ok is false for unknown markers.
func RankForMarker(marker string) (domain.Rank, bool) {
	canonical := canonicalMarker(marker)
	if canonical == "" {
		return "", false
	}
	r, ok := markerRanks[canonical]
	return r, ok
}

// MarkerForRank returns the canonical marker written before the epithet of a
// name at the given rank, or "" for ranks that carry no marker (species and
// above genus level).
func MarkerForRank(r domain.Rank) string {
	switch r {
	case domain.RankSubspecies:
		return "subsp."
	case domain.RankVariety:
		return "var."
	case domain.RankSubvariety:
		return "subvar."
	case domain.RankForm:
		return "f."
	case domain.RankSubform:
		return "subf."
	case domain.RankProle:
		return "prol."
	case domain.RankSubgenus:
		return "subg."
	case domain.RankSection:
		return "sect."
	case domain.RankSubsection:
		return "subsect."
	case domain.RankSeries:
		return "ser."
	case domain.RankSubseries:
		return "subser."
	}
	return ""
}
