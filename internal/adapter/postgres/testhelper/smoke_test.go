package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	entry := SeedName(t, pool, "Rosa", "canina", "L.")

	// Verify the name exists in DB via SELECT.
	var full string
	err := pool.QueryRow(
		context.Background(),
		`SELECT full_name_plain FROM names WHERE id = $1`,
		entry.ID(),
	).Scan(&full)
	if err != nil {
		t.Fatalf("expected name in DB, got error: %v", err)
	}

	if full != entry.FullNameStringPlain() {
		t.Fatalf("expected full name %q, got %q", entry.FullNameStringPlain(), full)
	}
}
