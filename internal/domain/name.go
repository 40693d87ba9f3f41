package domain

// NameRecord is the read-only view of an indexed scientific name. Projection
// layers (query APIs, page renderers) read attributes through it.
type NameRecord interface {
	ID() string
	FullNameStringPlain() string
	NameString() string
	GenusString() string
	SpeciesString() string
	AuthorsString() string
	Rank() Rank
	NomenclaturalStatus() string
	Role() Role
}

// NameEntry is an immutable canonical name record (shared across requests).
// Construct it with NewNameEntry; there are no setters.
type NameEntry struct {
	id                  string
	fullNameStringPlain string
	nameString          string
	genusString         string
	speciesString       string
	authorsString       string
	rank                Rank
	nomenclaturalStatus string
	role                Role
}

var _ NameRecord = (*NameEntry)(nil)

// NameEntryParams holds the attributes used to build a NameEntry.
type NameEntryParams struct {
	ID                  string
	FullNameStringPlain string
	NameString          string
	GenusString         string
	SpeciesString       string
	AuthorsString       string
	Rank                Rank
	NomenclaturalStatus string
	Role                Role
}

// NewNameEntry returns a NameEntry with the given attributes. An invalid rank is
// stored as unranked and an invalid role as unplaced.
func NewNameEntry(p NameEntryParams) *NameEntry {
	if !p.Rank.IsValid() {
		p.Rank = RankUnranked
	}
	if !p.Role.IsValid() {
		p.Role = RoleUnplaced
	}
	return &NameEntry{
		id:                  p.ID,
		fullNameStringPlain: p.FullNameStringPlain,
		nameString:          p.NameString,
		genusString:         p.GenusString,
		speciesString:       p.SpeciesString,
		authorsString:       p.AuthorsString,
		rank:                p.Rank,
		nomenclaturalStatus: p.NomenclaturalStatus,
		role:                p.Role,
	}
}

func (e *NameEntry) ID() string { return e.id }
func (e *NameEntry) FullNameStringPlain() string { return e.fullNameStringPlain }

// NameString is the main word of the name: the mononomial for genus and above,
// the specific epithet for species, the lowest epithet for infraspecific names.
func (e *NameEntry) NameString() string { return e.nameString }
func (e *NameEntry) GenusString() string { return e.genusString }
func (e *NameEntry) SpeciesString() string { return e.speciesString }
func (e *NameEntry) AuthorsString() string { return e.authorsString }
func (e *NameEntry) Rank() Rank { return e.rank }
func (e *NameEntry) NomenclaturalStatus() string { return e.nomenclaturalStatus }
func (e *NameEntry) Role() Role { return e.role }

// ParsedName is the structured form of a free-text name string. Absent parts are
// empty strings; at least one name part is set after a successful parse.
type ParsedName struct {
	Genus                string
	SpecificEpithet      string
	InfraspecificEpithet string
	RankMarker           string
	AuthorText           string
	Hybrid               bool
}

// IsEmpty reports whether no name part is populated.
func (p ParsedName) IsEmpty() bool {
	return p.Genus == "" && p.SpecificEpithet == "" && p.InfraspecificEpithet == ""
}

// NameKey is the pair of comparison keys derived from a ParsedName.
// Name covers the name parts and rank marker; Full adds the author text.
type NameKey struct {
	Name string
	Full string
}
