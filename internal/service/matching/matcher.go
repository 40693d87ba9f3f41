package matching

import (
	"github.com/heartmarshall/namematch-backend/internal/domain"
	"github.com/heartmarshall/namematch-backend/internal/nameindex"
)

// candidateSet is what the matcher hands to the disambiguator.
type candidateSet struct {
	method     domain.MatchMethod
	candidates []Candidate
}

// matcher runs the lookup strategies in order and stops at the first one that
// returns anything.
type matcher struct {
	maxDistance int
}

func (m matcher) match(key domain.NameKey, idx *nameindex.Index, n *Narrator) candidateSet {
	// 1. exact-with-author
	hits := idx.LookupExact(key.Full)
	n.Record("exact-with-author: key %q returned %d hit(s)", key.Full, len(hits))
	if len(hits) > 0 {
		return exactSet(hits, domain.MatchMethodExact)
	}

	// 2. exact-without-author
	hits = idx.LookupExact(key.Name)
	n.Record("exact-without-author: key %q returned %d hit(s)", key.Name, len(hits))
	if len(hits) > 0 {
		return exactSet(hits, domain.MatchMethodExactNoAuthor)
	}

	// 3. approximate
	approx := idx.LookupApprox(key.Name, m.maxDistance)
	n.Record("approximate: key %q within distance %d returned %d hit(s)", key.Name, m.maxDistance, len(approx))
	if len(approx) == 0 {
		return candidateSet{method: domain.MatchMethodNoMatch}
	}

	set := candidateSet{
		method:     domain.MatchMethodApproximate,
		candidates: make([]Candidate, 0, len(approx)),
	}
	for _, h := range approx {
		set.candidates = append(set.candidates, Candidate{Entry: h.Entry, Distance: h.Distance})
	}
	return set
}

// exactSet wraps exact hits. More than one hit means possible homonyms.
func exactSet(hits []*domain.NameEntry, single domain.MatchMethod) candidateSet {
	method := single
	if len(hits) > 1 {
		method = domain.MatchMethodExactMultiple
	}
	set := candidateSet{method: method, candidates: make([]Candidate, 0, len(hits))}
	for _, e := range hits {
		set.candidates = append(set.candidates, Candidate{Entry: e})
	}
	return set
}
