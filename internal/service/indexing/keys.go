package indexing

import (
	"github.com/heartmarshall/namematch-backend/internal/domain"
	"github.com/heartmarshall/namematch-backend/internal/nameindex"
	"github.com/heartmarshall/namematch-backend/internal/namekey"
	"github.com/heartmarshall/namematch-backend/internal/nameparse"
)

// KeyFor derives the index keys of e. The plain full name is run through the
// same parser used for request input, so matching an entry's own full name
// always yields the keys it is indexed under. Entries whose full name does not
// parse fall back to their structured fields.
func KeyFor(e *domain.NameEntry) domain.NameKey {
	if p, err := nameparse.Parse(e.FullNameStringPlain()); err == nil {
		return namekey.Normalize(p)
	}
	return namekey.Normalize(structuredName(e))
}

// CountIndexable returns how many records an index built from them would hold.
func CountIndexable(records []nameindex.Record) int {
	n := 0
	for _, r := range records {
		if r.Indexable() {
			n++
		}
	}
	return n
}

// BuildRecords pairs every entry with its keys.
func BuildRecords(entries []*domain.NameEntry) []nameindex.Record {
	records := make([]nameindex.Record, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		records = append(records, nameindex.Record{Entry: e, Key: KeyFor(e)})
	}
	return records
}

func structuredName(e *domain.NameEntry) domain.ParsedName {
	p := domain.ParsedName{AuthorText: e.AuthorsString()}

	r := e.Rank()
	specificity := r.Specificity()
	switch {
	case r == domain.RankSpecies:
		p.Genus = e.GenusString()
		p.SpecificEpithet = e.SpeciesString()
		if p.SpecificEpithet == "" {
			p.SpecificEpithet = e.NameString()
		}
	case specificity > domain.RankSpecies.Specificity():
		p.Genus = e.GenusString()
		p.SpecificEpithet = e.SpeciesString()
		p.InfraspecificEpithet = e.NameString()
		p.RankMarker = nameparse.MarkerForRank(r)
	case specificity > domain.RankGenus.Specificity():
		p.Genus = e.GenusString()
		p.InfraspecificEpithet = e.NameString()
		p.RankMarker = nameparse.MarkerForRank(r)
	default:
		p.Genus = e.NameString()
	}

	if p.Genus == "" {
		p.Genus = e.NameString()
	}
	return p
}
