// Package name implements the name dataset repository using PostgreSQL.
// It serves the full names table to the index builder and replaces it
// wholesale when a new dataset is imported.
package name

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/namematch-backend/internal/adapter/postgres"
	"github.com/heartmarshall/namematch-backend/internal/domain"
)

const (
	namesTable   = "names"
	importsTable = "name_imports"
)

var nameColumns = []string{
	"id", "full_name_plain", "name_string", "genus_string", "species_string",
	"authors_string", "rank", "nomenclatural_status", "role",
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// DB is the connection handle the repository needs. *pgxpool.Pool satisfies it.
type DB interface {
	postgres.Querier
	postgres.TxBeginner
}

// importRow mirrors one row of the name_imports table.
type importRow struct {
	ID         uuid.UUID `db:"id"`
	Source     string    `db:"source"`
	RowCount   int       `db:"row_count"`
	ImportedAt time.Time `db:"imported_at"`
}

// nameRow mirrors one row of the names table.
type nameRow struct {
	ID                  string `db:"id"`
	FullNamePlain       string `db:"full_name_plain"`
	NameString          string `db:"name_string"`
	GenusString         string `db:"genus_string"`
	SpeciesString       string `db:"species_string"`
	AuthorsString       string `db:"authors_string"`
	Rank                string `db:"rank"`
	NomenclaturalStatus string `db:"nomenclatural_status"`
	Role                string `db:"role"`
}

// Repo provides name persistence backed by PostgreSQL.
type Repo struct {
	db  DB
	txm *postgres.TxManager
}

// New creates a new name repository.
func New(db DB) *Repo {
	return &Repo{db: db, txm: postgres.NewTxManager(db)}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// LoadEntries returns every stored name ordered by id.
// Returns an empty slice (not nil) when the table is empty.
func (r *Repo) LoadEntries(ctx context.Context) ([]*domain.NameEntry, error) {
	query, args, err := psql.Select(nameColumns...).From(namesTable).OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select names: %w", err)
	}

	var rows []nameRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, namesTable, "")
	}

	entries := make([]*domain.NameEntry, len(rows))
	for i, row := range rows {
		entries[i] = toDomainEntry(row)
	}
	return entries, nil
}

// Count returns the number of stored names.
func (r *Repo) Count(ctx context.Context) (int, error) {
	query, args, err := psql.Select("count(*)").From(namesTable).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count names: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, namesTable, "")
	}
	return n, nil
}

// LatestImport returns the most recent dataset import.
// Returns domain.ErrNotFound if nothing was imported yet.
func (r *Repo) LatestImport(ctx context.Context) (*domain.DatasetImport, error) {
	query, args, err := psql.Select("id", "source", "row_count", "imported_at").
		From(importsTable).
		OrderBy("imported_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select import: %w", err)
	}

	var row importRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, query, args...); err != nil {
		return nil, postgres.MapError(noRows(err), importsTable, "latest")
	}
	return &domain.DatasetImport{
		ID:         row.ID,
		Source:     row.Source,
		RowCount:   row.RowCount,
		ImportedAt: row.ImportedAt,
	}, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// ReplaceAll swaps the stored dataset for entries in one transaction and
// records the import. Readers see either the old or the new dataset.
// Nil entries are skipped. Returns the number of rows written.
func (r *Repo) ReplaceAll(ctx context.Context, entries []*domain.NameEntry, source string) (int64, error) {
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		if e == nil {
			continue
		}
		rows = append(rows, []any{
			e.ID(), e.FullNameStringPlain(), e.NameString(), e.GenusString(), e.SpeciesString(),
			e.AuthorsString(), e.Rank().String(), e.NomenclaturalStatus(), e.Role().String(),
		})
	}

	var written int64
	err := r.txm.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, r.db)

		query, args, err := psql.Delete(namesTable).ToSql()
		if err != nil {
			return fmt.Errorf("build delete names: %w", err)
		}
		if _, err := q.Exec(ctx, query, args...); err != nil {
			return postgres.MapError(err, namesTable, "")
		}

		written, err = q.CopyFrom(ctx, pgx.Identifier{namesTable}, nameColumns, pgx.CopyFromRows(rows))
		if err != nil {
			return postgres.MapError(err, namesTable, "")
		}

		query, args, err = psql.Insert(importsTable).
			Columns("id", "source", "row_count").
			Values(uuid.New(), source, written).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert import: %w", err)
		}
		if _, err := q.Exec(ctx, query, args...); err != nil {
			return postgres.MapError(err, importsTable, "")
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("replace names: %w", err)
	}
	return written, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

// noRows normalizes scany's not-found error to pgx.ErrNoRows.
func noRows(err error) error {
	if pgxscan.NotFound(err) {
		return pgx.ErrNoRows
	}
	return err
}

func toDomainEntry(row nameRow) *domain.NameEntry {
	return domain.NewNameEntry(domain.NameEntryParams{
		ID:                  row.ID,
		FullNameStringPlain: row.FullNamePlain,
		NameString:          row.NameString,
		GenusString:         row.GenusString,
		SpeciesString:       row.SpeciesString,
		AuthorsString:       row.AuthorsString,
		Rank:                domain.ParseRank(row.Rank),
		NomenclaturalStatus: row.NomenclaturalStatus,
		Role:                domain.ParseRole(row.Role),
	})
}
