// Package sqlite persists draft picks to a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"github.com/JakeFAU/draftpicks/internal/draft"
)

// DefaultPath is the database file used when none is configured.
const DefaultPath = "bills_draft.db"

// Config controls where the picks table lives.
type Config struct {
	Path  string
	Table string
}

// Store implements draft.Sink on top of database/sql.
type Store struct {
	db    *sql.DB
	table string
	path  string
}

// Open opens (creating if needed) the SQLite file and verifies it is usable.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	path := cfg.Path
	if strings.TrimSpace(path) == "" {
		path = DefaultPath
	}
	table, err := draft.TableName(cfg.Table)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite3", "file:"+path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	return &Store{db: db, table: table, path: path}, nil
}

// NewWithDB wraps an existing handle (primarily for testing).
func NewWithDB(db *sql.DB, table string) (*Store, error) {
	if db == nil {
		return nil, errors.New("db is required")
	}
	name, err := draft.TableName(table)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, table: name}, nil
}

// Path is the database file backing the store.
func (s *Store) Path() string { return s.path }

// Location is Path; it names the store in run summaries.
func (s *Store) Location() string { return s.path }

// Table is the picks table name.
func (s *Store) Table() string { return s.table }

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) ensureSchema(ctx context.Context, ex execer) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	season TEXT,
	pick_overall TEXT,
	player TEXT,
	position TEXT,
	college TEXT,
	notes TEXT
)`, s.table)
	if _, err := ex.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create table %s: %w", s.table, err)
	}
	return nil
}

// Replace swaps the table contents for records inside one transaction. On any
// error the transaction is rolled back and the previous rows survive.
func (s *Store) Replace(ctx context.Context, records []draft.Record) (n int, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = fmt.Errorf("%w (rollback: %v)", err, rbErr)
			}
		}
	}()

	if err = s.ensureSchema(ctx, tx); err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", s.table)); err != nil {
		return 0, fmt.Errorf("clear %s: %w", s.table, err)
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (?, ?, ?, ?, ?, ?)",
		s.table, strings.Join(draft.Columns[:], ", "),
	))
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close() //nolint:errcheck // closed with the transaction

	for i, rec := range records {
		if _, err = stmt.ExecContext(ctx, rec.Values()...); err != nil {
			return 0, fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(records), nil
}

// List returns every stored pick ordered by id.
func (s *Store) List(ctx context.Context) ([]draft.Record, error) {
	if err := s.ensureSchema(ctx, s.db); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY id", strings.Join(draft.Columns[:], ", "), s.table,
	))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close() //nolint:errcheck // read-only cursor

	var out []draft.Record
	for rows.Next() {
		var cells [draft.Width]sql.NullString
		if err := rows.Scan(&cells[0], &cells[1], &cells[2], &cells[3], &cells[4], &cells[5]); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}
		out = append(out, draft.Record{
			Season:   cells[0].String,
			Pick:     cells[1].String,
			Player:   cells[2].String,
			Position: cells[3].String,
			College:  cells[4].String,
			Notes:    cells[5].String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", s.table, err)
	}
	return out, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close sqlite: %w", err)
	}
	return nil
}
