// Package dataset reads name datasets in the WFO backbone layout from
// delimited text files. Pure adapter: file in, domain entries out.
package dataset

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heartmarshall/namematch-backend/internal/domain"
)

// Column names recognised in the header row (case-insensitive).
const (
	colTaxonID             = "taxonid"
	colScientificName      = "scientificname"
	colAuthorship          = "scientificnameauthorship"
	colRank                = "taxonrank"
	colGenus               = "genus"
	colSpecificEpithet     = "specificepithet"
	colInfraEpithet        = "infraspecificepithet"
	colTaxonomicStatus     = "taxonomicstatus"
	colNomenclaturalStatus = "nomenclaturalstatus"
)

// ctxCheckEvery is how many rows are read between cancellation checks.
const ctxCheckEvery = 10000

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("dataset header is missing a required column")

// Reader loads entries from one dataset file.
type Reader struct {
	path string
}

// NewReader creates a reader for the file at path.
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// Path returns the dataset file path.
func (r *Reader) Path() string { return r.path }

// LoadEntries reads and parses the whole file.
func (r *Reader) LoadEntries(ctx context.Context) ([]*domain.NameEntry, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset file: %w", err)
	}
	defer f.Close()

	entries, err := Parse(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", r.path, err)
	}
	return entries, nil
}

// Parse reads a delimited dataset with a header row. The delimiter (tab or
// comma) is detected from the header. Rows without a taxon id are skipped.
func Parse(ctx context.Context, r io.Reader) ([]*domain.NameEntry, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if strings.TrimSpace(header) == "" {
		return nil, nil
	}

	reader := csv.NewReader(io.MultiReader(strings.NewReader(header), br))
	reader.Comma = detectDelimiter(header)
	reader.FieldsPerRecord = -1 // allow variable column count
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	headRow, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	cols := indexColumns(headRow)
	for _, required := range []string{colTaxonID, colScientificName} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	var entries []*domain.NameEntry
	for line := 2; ; line++ {
		if line%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		if e := toEntry(cols, record); e != nil {
			entries = append(entries, e)
		}
	}

	return entries, nil
}

// detectDelimiter picks tab when the header has more tabs than commas.
func detectDelimiter(header string) rune {
	if strings.Count(header, "\t") >= strings.Count(header, ",") && strings.Contains(header, "\t") {
		return '\t'
	}
	return ','
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = domain.NormalizeText(h)
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}
	return cols
}

type row struct {
	cols   map[string]int
	record []string
}

func (r row) get(col string) string {
	i, ok := r.cols[col]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func toEntry(cols map[string]int, record []string) *domain.NameEntry {
	r := row{cols: cols, record: record}

	id := r.get(colTaxonID)
	if id == "" {
		return nil
	}

	name := r.get(colScientificName)
	authors := r.get(colAuthorship)
	rank := domain.ParseRank(r.get(colRank))
	genus := r.get(colGenus)
	species := r.get(colSpecificEpithet)
	infra := r.get(colInfraEpithet)

	full := name
	if authors != "" && !strings.HasSuffix(name, authors) {
		full = name + " " + authors
	}

	return domain.NewNameEntry(domain.NameEntryParams{
		ID:                  id,
		FullNameStringPlain: full,
		NameString:          nameString(name, authors, species, infra),
		GenusString:         genus,
		SpeciesString:       species,
		AuthorsString:       authors,
		Rank:                rank,
		NomenclaturalStatus: r.get(colNomenclaturalStatus),
		Role:                domain.ParseRole(r.get(colTaxonomicStatus)),
	})
}

// nameString returns the lowest epithet present, or the uninomial.
func nameString(name, authors, species, infra string) string {
	switch {
	case infra != "":
		return infra
	case species != "":
		return species
	}
	name = strings.TrimSpace(strings.TrimSuffix(name, authors))
	if words := strings.Fields(name); len(words) > 0 {
		return words[len(words)-1]
	}
	return ""
}
