// Package nameindex holds the immutable lookup structure over the canonical
// name dataset. An Index is built once and then only read; a reload builds a
// new Index and publishes it through a Holder.
package nameindex

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/heartmarshall/namematch-backend/internal/domain"
)

// Record pairs an entry with the keys it is indexed under.
type Record struct {
	Entry *domain.NameEntry
	Key   domain.NameKey
}

// Indexable reports whether r can be reached by a lookup: it needs an entry
// and a name key with a genus segment.
func (r Record) Indexable() bool {
	return r.Entry != nil && r.Key.Name != "" && !strings.HasPrefix(r.Key.Name, "|")
}

// Stats describes an index snapshot.
type Stats struct {
	Entries  int       `json:"entries"`
	NameKeys int       `json:"nameKeys"`
	FullKeys int       `json:"fullKeys"`
	BuiltAt  time.Time `json:"builtAt"`
}

// nameGroup is one distinct name key and the entries that share it.
type nameGroup struct {
	key     string
	runeLen int
	entries []*domain.NameEntry
}

// Index is an immutable snapshot. All methods are safe for concurrent use.
type Index struct {
	byKey map[string][]*domain.NameEntry

	groups   []nameGroup
	postings map[string][]posting
	byLen    map[int][]int32

	stats Stats
}

// Build indexes records under both their name key and full key. Records with an
// empty name key or a nil entry are skipped. An entry listed twice under the
// same key is kept once.
func Build(records []Record) *Index {
	idx := &Index{
		byKey:    make(map[string][]*domain.NameEntry, len(records)*2),
		postings: make(map[string][]posting),
		byLen:    make(map[int][]int32),
	}

	seen := make(map[string]struct{}, len(records))
	groupOf := make(map[string]int, len(records))
	fullKeys := 0

	for _, r := range records {
		if !r.Indexable() {
			continue
		}
		seen[r.Entry.ID()] = struct{}{}

		if _, ok := groupOf[r.Key.Name]; !ok {
			groupOf[r.Key.Name] = len(idx.groups)
			idx.groups = append(idx.groups, nameGroup{
				key:     r.Key.Name,
				runeLen: utf8.RuneCountInString(r.Key.Name),
			})
		}
		idx.add(r.Key.Name, r.Entry)

		if r.Key.Full != "" {
			if _, exists := idx.byKey[r.Key.Full]; !exists {
				fullKeys++
			}
			idx.add(r.Key.Full, r.Entry)
		}
	}

	for _, entries := range idx.byKey {
		sortByID(entries)
	}
	for i := range idx.groups {
		idx.groups[i].entries = idx.byKey[idx.groups[i].key]
		idx.indexGroup(int32(i))
	}

	idx.stats = Stats{
		Entries:  len(seen),
		NameKeys: len(idx.groups),
		FullKeys: fullKeys,
		BuiltAt:  time.Now().UTC(),
	}
	return idx
}

// add appends e under key unless an entry with the same id is already there.
func (idx *Index) add(key string, e *domain.NameEntry) {
	for _, existing := range idx.byKey[key] {
		if existing.ID() == e.ID() {
			return
		}
	}
	idx.byKey[key] = append(idx.byKey[key], e)
}

// LookupExact returns the entries indexed under key (a name key or a full key),
// ordered by id. The returned slice must not be modified.
func (idx *Index) LookupExact(key string) []*domain.NameEntry {
	return idx.byKey[key]
}

// Homonyms returns every entry sharing the given name key, ordered by id.
func (idx *Index) Homonyms(nameKey string) []*domain.NameEntry {
	return idx.LookupExact(nameKey)
}

// Stats returns the snapshot statistics.
func (idx *Index) Stats() Stats {
	return idx.stats
}

// Len returns the number of distinct entries.
func (idx *Index) Len() int {
	return idx.stats.Entries
}

func sortByID(entries []*domain.NameEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID() < entries[j].ID()
	})
}
