package matching

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/namematch-backend/internal/domain"
	"github.com/heartmarshall/namematch-backend/internal/nameindex"
	"github.com/heartmarshall/namematch-backend/internal/namekey"
	"github.com/heartmarshall/namematch-backend/internal/nameparse"
)

// disambiguator decides whether a candidate set resolves to a single match.
// Only a single hit from an exact strategy can become a match; the homonym and
// rank checks can only demote it.
type disambiguator struct{}

func (disambiguator) resolve(
	set candidateSet,
	parsed domain.ParsedName,
	key domain.NameKey,
	f flags,
	idx *nameindex.Index,
	n *Narrator,
) (*domain.NameEntry, []Candidate) {
	switch {
	case len(set.candidates) == 0:
		n.Record("no candidates found")
		return nil, []Candidate{}

	case len(set.candidates) > 1:
		if f.checkHomonyms {
			if conflict := conflictingAuthors(entriesOf(set.candidates)); len(conflict) > 1 {
				n.Record("homonym check: conflicting authors %s among %d entries", quoteAll(conflict), len(set.candidates))
			}
		}
		n.Record("%d candidates passed through unchanged", len(set.candidates))
		return nil, set.candidates

	case set.method == domain.MatchMethodApproximate:
		n.Record("approximate hit %s at distance %d kept as candidate", set.candidates[0].Entry.ID(), set.candidates[0].Distance)
		return nil, set.candidates
	}

	c := set.candidates[0]

	if f.checkHomonyms {
		homonyms := idx.Homonyms(key.Name)
		conflict := conflictingAuthors(homonyms)
		if len(conflict) > 1 {
			n.Record("homonym check: %d entries share name key %q with conflicting authors %s; demoted to candidates",
				len(homonyms), key.Name, quoteAll(conflict))
			out := make([]Candidate, 0, len(homonyms))
			for _, e := range homonyms {
				out = append(out, Candidate{Entry: e})
			}
			return nil, out
		}
		n.Record("homonym check: no conflicting authors for name key %q", key.Name)
	}

	if f.checkRank {
		if parsed.RankMarker == "" {
			n.Record("rank check: no rank marker in input, skipped")
		} else {
			parsedRank, ok := nameparse.RankForMarker(parsed.RankMarker)
			if !ok || parsedRank != c.Entry.Rank() {
				n.Record("rank check: parsed rank %s vs stored rank %q; demoted to candidates",
					describeMarker(parsed.RankMarker, parsedRank, ok), c.Entry.Rank())
				return nil, []Candidate{c}
			}
			n.Record("rank check: parsed rank %q agrees with stored rank", parsedRank)
		}
	}

	n.Record("accepted as unambiguous: %s %q", c.Entry.ID(), c.Entry.FullNameStringPlain())
	return c.Entry, []Candidate{}
}

// conflictingAuthors returns the distinct author strings among entries in
// order of first appearance. Author strings that normalize to the same key
// count once.
func conflictingAuthors(entries []*domain.NameEntry) []string {
	seen := make(map[string]struct{}, len(entries))
	var out []string
	for _, e := range entries {
		norm := namekey.Author(e.AuthorsString())
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, e.AuthorsString())
	}
	return out
}

func entriesOf(cs []Candidate) []*domain.NameEntry {
	out := make([]*domain.NameEntry, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Entry)
	}
	return out
}

func quoteAll(ss []string) string {
	quoted := make([]string, len(ss))
	for i, s := range ss {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return strings.Join(quoted, ", ")
}

func describeMarker(marker string, r domain.Rank, known bool) string {
	if !known {
		return fmt.Sprintf("%q (unknown marker)", marker)
	}
	return fmt.Sprintf("%q (%s)", r, marker)
}
