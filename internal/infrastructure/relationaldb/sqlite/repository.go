// Package sqlite provides a SQLite implementation of the CatalogStore interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magic-finder/magic-finder/internal/domain/entities"
	"github.com/magic-finder/magic-finder/internal/domain/ports"
	"github.com/magic-finder/magic-finder/internal/infrastructure/config"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// MemoryPath opens a private in-memory database, rebuilt in place.
const MemoryPath = ":memory:"

const cardColumns = `id, name, lowercase_name, type_line, oracle_text, power_toughness, loyalty, mana_cost, scryfall_uri, other_card_name`

const schema = `
	-- One row per playable card face
	CREATE TABLE IF NOT EXISTS cards (
		id TEXT NOT NULL,
		name TEXT NOT NULL UNIQUE,
		lowercase_name TEXT NOT NULL UNIQUE,
		type_line TEXT,
		oracle_text TEXT,
		power_toughness TEXT,
		loyalty TEXT,
		mana_cost TEXT,
		scryfall_uri TEXT UNIQUE,
		other_card_name TEXT DEFAULT NULL
	);

	-- Every word seen in a kept card name
	CREATE TABLE IF NOT EXISTS words (
		word TEXT NOT NULL UNIQUE
	);
	`

// Repository implements ports.CatalogStore using SQLite.
//
// A file-backed repository whose file does not exist yet has no open
// handle; queries report ports.ErrStoreMissing until Rebuild creates it.
// Rebuild swaps the handle, so it must not run alongside queries.
type Repository struct {
	db   *sql.DB
	path string
}

var _ ports.CatalogStore = (*Repository)(nil)

// NewRepository creates a new SQLite repository. The database file is not
// created here.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	repo := &Repository{path: cfg.Path}

	if cfg.Path == MemoryPath {
		db, err := openDB(cfg.Path)
		if err != nil {
			return nil, err
		}
		if err := ensureSchema(context.Background(), db); err != nil {
			db.Close()
			return nil, err
		}
		repo.db = db
		return repo, nil
	}

	if _, err := os.Stat(cfg.Path); err != nil {
		if os.IsNotExist(err) {
			return repo, nil
		}
		return nil, fmt.Errorf("checking sqlite database: %w", err)
	}

	db, err := openDB(cfg.Path)
	if err != nil {
		return nil, err
	}
	repo.db = db
	return repo, nil
}

func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// A single connection keeps ":memory:" databases shared and serializes access.
	db.SetMaxOpenConns(1)

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.ExecContext(context.Background(), "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

func (r *Repository) handle() (*sql.DB, error) {
	if r.db == nil {
		return nil, ports.ErrStoreMissing
	}
	return r.db, nil
}

// CheckPopulated reports whether the store exists and holds cards and words.
func (r *Repository) CheckPopulated(ctx context.Context) error {
	if r.path != MemoryPath {
		if _, err := os.Stat(r.path); os.IsNotExist(err) {
			return ports.ErrStoreMissing
		}
	}
	db, err := r.handle()
	if err != nil {
		return err
	}

	for _, check := range []struct {
		table string
		empty error
	}{
		{table: "cards", empty: ports.ErrStoreEmptyOfCards},
		{table: "words", empty: ports.ErrStoreEmptyOfWords},
	} {
		var exists int
		err := db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, check.table,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking %s table: %w", check.table, err)
		}
		if exists == 0 {
			return check.empty
		}

		n, err := countRows(ctx, db, check.table)
		if err != nil {
			return err
		}
		if n == 0 {
			return check.empty
		}
	}
	return nil
}

// Counts returns the number of stored cards and words.
func (r *Repository) Counts(ctx context.Context) (ports.CatalogCounts, error) {
	db, err := r.handle()
	if err != nil {
		return ports.CatalogCounts{}, err
	}
	cards, err := countRows(ctx, db, "cards")
	if err != nil {
		return ports.CatalogCounts{}, err
	}
	words, err := countRows(ctx, db, "words")
	if err != nil {
		return ports.CatalogCounts{}, err
	}
	return ports.CatalogCounts{Cards: cards, Words: words}, nil
}

func countRows(ctx context.Context, db *sql.DB, table string) (int, error) {
	// table is one of our own constants, never user input.
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return count, nil
}

// GetByExactName finds a card by its case-sensitive display name.
func (r *Repository) GetByExactName(ctx context.Context, name string) (*entities.Card, error) {
	return r.getCard(ctx, `SELECT `+cardColumns+` FROM cards WHERE name = ?`, name)
}

// GetByExactLowercaseName finds a card by its normalized name.
func (r *Repository) GetByExactLowercaseName(ctx context.Context, lowercaseName string) (*entities.Card, error) {
	return r.getCard(ctx, `SELECT `+cardColumns+` FROM cards WHERE lowercase_name = ?`, lowercaseName)
}

func (r *Repository) getCard(ctx context.Context, query string, arg string) (*entities.Card, error) {
	db, err := r.handle()
	if err != nil {
		return nil, err
	}

	card, err := scanCard(db.QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning card: %w", err)
	}
	return card, nil
}

// FindByAllTokensSubstring returns cards whose lowercase name matches every
// LIKE pattern, in insertion order.
func (r *Repository) FindByAllTokensSubstring(ctx context.Context, patterns []string) ([]entities.Card, error) {
	if len(patterns) == 0 {
		return nil, ports.ErrNoSearchTokens
	}
	db, err := r.handle()
	if err != nil {
		return nil, err
	}

	conditions := make([]string, len(patterns))
	args := make([]any, len(patterns))
	for i, p := range patterns {
		conditions[i] = `lowercase_name LIKE ? ESCAPE '\'`
		args[i] = p
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM cards
		WHERE %s
		ORDER BY rowid
	`, cardColumns, strings.Join(conditions, " AND "))

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching cards: %w", err)
	}
	defer rows.Close()

	result := make([]entities.Card, 0, 8)
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning card: %w", err)
		}
		result = append(result, *card)
	}
	return result, rows.Err()
}

// AllWords returns the word index in insertion order.
func (r *Repository) AllWords(ctx context.Context) ([]string, error) {
	return r.queryStrings(ctx, `SELECT word FROM words ORDER BY rowid`)
}

// AllNames returns every display name in insertion order.
func (r *Repository) AllNames(ctx context.Context) ([]string, error) {
	return r.queryStrings(ctx, `SELECT name FROM cards ORDER BY rowid`)
}

// AllLowercaseNames returns every normalized name in insertion order.
func (r *Repository) AllLowercaseNames(ctx context.Context) ([]string, error) {
	return r.queryStrings(ctx, `SELECT lowercase_name FROM cards ORDER BY rowid`)
}

func (r *Repository) queryStrings(ctx context.Context, query string) ([]string, error) {
	db, err := r.handle()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying: %w", err)
	}
	defer rows.Close()

	result := make([]string, 0, 1024)
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCard(row rowScanner) (*entities.Card, error) {
	var card entities.Card
	var typeLine, oracleText, powerToughness, loyalty, manaCost, scryfallURI, otherCardName sql.NullString
	if err := row.Scan(
		&card.ID,
		&card.Name,
		&card.LowercaseName,
		&typeLine,
		&oracleText,
		&powerToughness,
		&loyalty,
		&manaCost,
		&scryfallURI,
		&otherCardName,
	); err != nil {
		return nil, err
	}
	card.TypeLine = typeLine.String
	card.OracleText = oracleText.String
	card.PowerToughness = powerToughness.String
	card.Loyalty = loyalty.String
	card.ManaCost = manaCost.String
	card.ScryfallURI = scryfallURI.String
	card.OtherCardName = otherCardName.String
	return &card, nil
}

// Rebuild replaces the whole corpus. File-backed stores build the new
// corpus in a temporary file next to the live one and rename it into
// place, so readers never see a partial corpus and a failed rebuild leaves
// the old one untouched.
func (r *Repository) Rebuild(ctx context.Context, corpus *entities.Corpus) error {
	if r.path == MemoryPath {
		return r.rebuildInPlace(ctx, corpus)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".rebuild-*.sqlite3")
	if err != nil {
		return fmt.Errorf("creating temporary database: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()

	if err := buildFile(ctx, tmpPath, corpus); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := r.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing database: %w", err)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		if _, statErr := os.Stat(r.path); statErr == nil {
			if db, openErr := openDB(r.path); openErr == nil {
				r.db = db
			}
		}
		return fmt.Errorf("replacing database: %w", err)
	}

	db, err := openDB(r.path)
	if err != nil {
		return err
	}
	r.db = db
	return nil
}

func buildFile(ctx context.Context, path string, corpus *entities.Corpus) error {
	db, err := openDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := ensureSchema(ctx, db); err != nil {
		return err
	}
	return writeCorpus(ctx, db, corpus, false)
}

func (r *Repository) rebuildInPlace(ctx context.Context, corpus *entities.Corpus) error {
	db, err := r.handle()
	if err != nil {
		return err
	}
	return writeCorpus(ctx, db, corpus, true)
}

// writeCorpus inserts the corpus in one transaction, optionally clearing
// existing rows first.
func writeCorpus(ctx context.Context, db *sql.DB, corpus *entities.Corpus, clear bool) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if clear {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cards; DELETE FROM words;`); err != nil {
			return fmt.Errorf("clearing catalog: %w", err)
		}
	}

	cardStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO cards (`+cardColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing card insert: %w", err)
	}
	defer cardStmt.Close()

	for i := range corpus.Cards {
		c := &corpus.Cards[i]
		if _, err := cardStmt.ExecContext(ctx,
			c.ID,
			c.Name,
			c.LowercaseName,
			nullIfEmpty(c.TypeLine),
			nullIfEmpty(c.OracleText),
			nullIfEmpty(c.PowerToughness),
			nullIfEmpty(c.Loyalty),
			nullIfEmpty(c.ManaCost),
			nullIfEmpty(c.ScryfallURI),
			nullIfEmpty(c.OtherCardName),
		); err != nil {
			return fmt.Errorf("saving card %q: %w", c.Name, err)
		}
	}

	wordStmt, err := tx.PrepareContext(ctx, `INSERT INTO words (word) VALUES (?) ON CONFLICT(word) DO NOTHING`)
	if err != nil {
		return fmt.Errorf("preparing word insert: %w", err)
	}
	defer wordStmt.Close()

	for _, w := range corpus.Words {
		if _, err := wordStmt.ExecContext(ctx, w); err != nil {
			return fmt.Errorf("saving word %q: %w", w, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing catalog: %w", err)
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}
