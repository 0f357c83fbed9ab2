package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/playperu/flagquiz/internal/database"
	"github.com/playperu/flagquiz/internal/flagquiz"
	"github.com/playperu/flagquiz/internal/migrations"
)

// Store keeps a catalog in the flags table of a SQLite database.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Catalog reads every stored entry, ordered by tier then position. All three
// tiers are present in the result, possibly empty.
func (s *Store) Catalog(ctx context.Context) (flagquiz.Catalog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tier, country, description
		FROM flags
		ORDER BY tier, position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying flags: %w", err)
	}
	defer rows.Close()

	cat := make(flagquiz.Catalog, len(flagquiz.Tiers))
	for _, t := range flagquiz.Tiers {
		cat[t] = []flagquiz.Entry{}
	}
	for rows.Next() {
		var tier int
		var e flagquiz.Entry
		if err := rows.Scan(&tier, &e.Country, &e.Description); err != nil {
			return nil, fmt.Errorf("scanning flag: %w", err)
		}
		t := flagquiz.Tier(tier)
		if !t.Valid() {
			return nil, fmt.Errorf("%w: %d", flagquiz.ErrInvalidTier, tier)
		}
		cat[t] = append(cat[t], e)
	}
	return cat, rows.Err()
}

// Import replaces the stored catalog with cat in a single transaction.
func (s *Store) Import(ctx context.Context, cat flagquiz.Catalog) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM flags`); err != nil {
		return fmt.Errorf("clearing flags: %w", err)
	}

	for _, t := range flagquiz.Tiers {
		for i, e := range cat[t] {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO flags (tier, position, country, description)
				VALUES (?, ?, ?, ?)
			`, int(t), i, e.Country, e.Description)
			if err != nil {
				return fmt.Errorf("inserting %s flag %q: %w", t.Key(), e.Country, err)
			}
		}
	}

	return tx.Commit()
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM flags`).Scan(&n)
	return n, err
}

// openStore opens the catalog database at path for writing and brings its
// schema up to date. Only Import uses it. The caller closes the *sql.DB.
func openStore(ctx context.Context, path string) (*Store, *sql.DB, error) {
	db, err := database.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, nil, err
	}
	return NewStore(db), db, nil
}

// HasSchema reports whether the database holds a flags table.
func (s *Store) HasSchema(ctx context.Context) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'flags'
	`).Scan(&n)
	return n > 0, err
}

// loadSQLite reads a catalog database without touching it: no migrations,
// and the handle refuses writes.
func loadSQLite(ctx context.Context, path string) (flagquiz.Catalog, error) {
	// libSQL would silently create a missing file.
	if _, err := os.Stat(path); err != nil {
		return nil, loadError(path, err)
	}

	db, err := database.OpenReadOnly(ctx, path)
	if err != nil {
		return nil, loadError(path, err)
	}
	defer db.Close()
	store := NewStore(db)

	ok, err := store.HasSchema(ctx)
	if err != nil {
		return nil, loadError(path, err)
	}
	if !ok {
		return nil, validationError(path, "not a flag catalog database: no flags table")
	}

	cat, err := store.Catalog(ctx)
	if err != nil {
		if errors.Is(err, flagquiz.ErrInvalidTier) {
			return nil, validationError(path, "%v", err)
		}
		return nil, loadError(path, err)
	}
	if err := validateEntries(path, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

// Import loads the catalog document at src and stores it in the SQLite
// catalog database at dbPath, creating the database if needed. It returns
// the number of entries written.
func Import(ctx context.Context, src, dbPath string) (int, error) {
	cat, err := Load(ctx, src)
	if err != nil {
		return 0, err
	}

	store, db, err := openStore(ctx, dbPath)
	if err != nil {
		return 0, fmt.Errorf("opening catalog database: %w", err)
	}
	defer db.Close()

	if err := store.Import(ctx, cat); err != nil {
		return 0, err
	}
	return store.Count(ctx)
}
