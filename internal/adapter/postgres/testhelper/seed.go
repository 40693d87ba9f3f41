package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/namematch-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedName inserts an accepted species name with a unique id.
// Returns the stored entry.
func SeedName(t *testing.T, pool *pgxpool.Pool, genus, epithet, authors string) *domain.NameEntry {
	t.Helper()
	ctx := context.Background()

	full := genus + " " + epithet
	if authors != "" {
		full += " " + authors
	}

	entry := domain.NewNameEntry(domain.NameEntryParams{
		ID:                  "wfo-test-" + uniqueSuffix(),
		FullNameStringPlain: full,
		NameString:          epithet,
		GenusString:         genus,
		SpeciesString:       epithet,
		AuthorsString:       authors,
		Rank:                domain.RankSpecies,
		Role:                domain.RoleAccepted,
	})

	_, err := pool.Exec(ctx,
		`INSERT INTO names (id, full_name_plain, name_string, genus_string, species_string, authors_string, rank, nomenclatural_status, role)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		entry.ID(), entry.FullNameStringPlain(), entry.NameString(), entry.GenusString(), entry.SpeciesString(),
		entry.AuthorsString(), entry.Rank().String(), entry.NomenclaturalStatus(), entry.Role().String(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedName insert: %v", err)
	}

	return entry
}
