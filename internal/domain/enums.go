package domain

import "strings"

// Rank is the level in the taxonomic hierarchy at which a name was published.
type Rank string

const (
	RankCode       Rank = "code"
	RankKingdom    Rank = "kingdom"
	RankPhylum     Rank = "phylum"
	RankClass      Rank = "class"
	RankSubclass   Rank = "subclass"
	RankSuperorder Rank = "superorder"
	RankOrder      Rank = "order"
	RankSuborder   Rank = "suborder"
	RankFamily     Rank = "family"
	RankSubfamily  Rank = "subfamily"
	RankSupertribe Rank = "supertribe"
	RankTribe      Rank = "tribe"
	RankSubtribe   Rank = "subtribe"
	RankGenus      Rank = "genus"
	RankSubgenus   Rank = "subgenus"
	RankSection    Rank = "section"
	RankSubsection Rank = "subsection"
	RankSeries     Rank = "series"
	RankSubseries  Rank = "subseries"
	RankSpecies    Rank = "species"
	RankSubspecies Rank = "subspecies"
	RankProle      Rank = "prole"
	RankVariety    Rank = "variety"
	RankSubvariety Rank = "subvariety"
	RankForm       Rank = "form"
	RankSubform    Rank = "subform"
	RankUnranked   Rank = "unranked"
)

// rankOrder lists ranks from least to most specific. Unranked is deliberately absent.
var rankOrder = []Rank{
	RankCode, RankKingdom, RankPhylum, RankClass, RankSubclass, RankSuperorder,
	RankOrder, RankSuborder, RankFamily, RankSubfamily, RankSupertribe, RankTribe,
	RankSubtribe, RankGenus, RankSubgenus, RankSection, RankSubsection, RankSeries,
	RankSubseries, RankSpecies, RankSubspecies, RankProle, RankVariety, RankSubvariety,
	RankForm, RankSubform,
}

var rankPosition = func() map[Rank]int {
	m := make(map[Rank]int, len(rankOrder))
	for i, r := range rankOrder {
		m[r] = i + 1
	}
	return m
}()

func (r Rank) String() string { return string(r) }

func (r Rank) IsValid() bool {
	if r == RankUnranked {
		return true
	}
	_, ok := rankPosition[r]
	return ok
}

// Specificity orders ranks: species is more specific than genus, form more than
// species. Unranked and unknown values return 0.
func (r Rank) Specificity() int {
	return rankPosition[r]
}

// ParseRank maps a stored rank string (case-insensitive, with a few common
// spellings) to a Rank. Unknown values map to RankUnranked.
func ParseRank(s string) Rank {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "var", "var.", "varietas":
		return RankVariety
	case "subsp", "subsp.", "ssp", "ssp.":
		return RankSubspecies
	case "forma", "f", "f.":
		return RankForm
	case "sect", "sect.":
		return RankSection
	}
	r := Rank(s)
	if r.IsValid() {
		return r
	}
	return RankUnranked
}

// Role is the part a name plays in the current classification. It is read from
// the backing record, never computed here.
type Role string

const (
	RoleAccepted   Role = "accepted"
	RoleSynonym    Role = "synonym"
	RoleUnplaced   Role = "unplaced"
	RoleDeprecated Role = "deprecated"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleAccepted, RoleSynonym, RoleUnplaced, RoleDeprecated:
		return true
	}
	return false
}

// ParseRole maps a taxonomic status column to a Role. Unknown values are unplaced.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accepted":
		return RoleAccepted
	case "synonym", "heterotypicsynonym", "homotypicsynonym":
		return RoleSynonym
	case "deprecated":
		return RoleDeprecated
	default:
		return RoleUnplaced
	}
}

// MatchMethod identifies the strategy that produced a match result.
type MatchMethod int

const (
	MatchMethodNoMatch MatchMethod = iota
	MatchMethodExact
	MatchMethodExactNoAuthor
	MatchMethodExactMultiple
	MatchMethodApproximate
)

func (m MatchMethod) String() string {
	switch m {
	case MatchMethodExact:
		return "exact"
	case MatchMethodExactNoAuthor:
		return "exact-no-author"
	case MatchMethodExactMultiple:
		return "exact-multiple"
	case MatchMethodApproximate:
		return "approximate"
	default:
		return "no-match"
	}
}

func (m MatchMethod) IsValid() bool {
	return m >= MatchMethodNoMatch && m <= MatchMethodApproximate
}

// IsExact reports whether the method came from an exact key lookup.
func (m MatchMethod) IsExact() bool {
	return m == MatchMethodExact || m == MatchMethodExactNoAuthor || m == MatchMethodExactMultiple
}
