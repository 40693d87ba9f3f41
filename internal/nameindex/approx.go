package nameindex

import (
	"sort"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
	"github.com/heartmarshall/namematch-backend/internal/domain"
)

const (
	gramSize = 3
	gramPad  = "\x00\x00"
)

// Hit is an approximate lookup result.
type Hit struct {
	Entry    *domain.NameEntry
	Distance int
}

// posting records how often a trigram occurs in one name key.
type posting struct {
	group int32
	count int32
}

// indexGroup adds the trigrams and length of group gi to the search structures.
func (idx *Index) indexGroup(gi int32) {
	g := idx.groups[gi]
	for gram, n := range trigrams(g.key) {
		idx.postings[gram] = append(idx.postings[gram], posting{group: gi, count: int32(n)})
	}
	idx.byLen[g.runeLen] = append(idx.byLen[g.runeLen], gi)
}

// LookupApprox returns entries whose name key is within maxDistance edits of
// key, ordered by distance, then by rank specificity (most specific first),
// then by id.
//
// Candidates are prefiltered with the q-gram lemma: two strings at edit
// distance k share at least max(|A|,|B|) + q - 1 - k*q padded q-grams. When that
// bound is not positive every name key of a compatible length is checked.
func (idx *Index) LookupApprox(key string, maxDistance int) []Hit {
	if maxDistance < 0 || key == "" {
		return nil
	}

	qLen := utf8.RuneCountInString(key)
	qGrams := trigrams(key)
	qCount := qLen + gramSize - 1

	var hits []Hit
	check := func(gi int32) {
		g := idx.groups[gi]
		if abs(g.runeLen-qLen) > maxDistance {
			return
		}
		d := levenshtein.ComputeDistance(key, g.key)
		if d > maxDistance {
			return
		}
		for _, e := range g.entries {
			hits = append(hits, Hit{Entry: e, Distance: d})
		}
	}

	if qCount-gramSize*maxDistance <= 0 {
		for l := qLen - maxDistance; l <= qLen+maxDistance; l++ {
			for _, gi := range idx.byLen[l] {
				check(gi)
			}
		}
	} else {
		shared := make(map[int32]int)
		for gram, qn := range qGrams {
			for _, p := range idx.postings[gram] {
				shared[p.group] += min(qn, int(p.count))
			}
		}
		for gi, n := range shared {
			cCount := idx.groups[gi].runeLen + gramSize - 1
			if n < max(qCount, cCount)-gramSize*maxDistance {
				continue
			}
			check(gi)
		}
	}

	sortHits(hits)
	return hits
}

func sortHits(hits []Hit) {
	sort.Slice(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if sa, sb := a.Entry.Rank().Specificity(), b.Entry.Rank().Specificity(); sa != sb {
			return sa > sb
		}
		return a.Entry.ID() < b.Entry.ID()
	})
}

// trigrams returns the padded trigram multiset of s.
func trigrams(s string) map[string]int {
	r := []rune(gramPad + s + gramPad)
	grams := make(map[string]int, len(r))
	for i := 0; i+gramSize <= len(r); i++ {
		grams[string(r[i:i+gramSize])]++
	}
	return grams
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
