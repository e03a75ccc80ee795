// Package postgres provides a Postgres-backed draft.Sink.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JakeFAU/draftpicks/internal/draft"
)

// Config controls the Postgres connection pool used for the picks table.
type Config struct {
	DSN             string
	Table           string
	MaxConns        int32
	MaxConnLifetime time.Duration
}

type pool interface {
	Begin(context.Context) (pgx.Tx, error)
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	Close()
}

// Store writes draft picks into Postgres.
type Store struct {
	pool     pool
	table    string
	location string
}

// Open creates a Postgres-backed Store using the provided config.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, errors.New("store.dsn is required")
	}
	table, err := draft.TableName(cfg.Table)
	if err != nil {
		return nil, err
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	p, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := p.Ping(ctx); err != nil {
		p.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	location := fmt.Sprintf("postgres://%s:%d/%s",
		poolCfg.ConnConfig.Host, poolCfg.ConnConfig.Port, poolCfg.ConnConfig.Database)
	return &Store{pool: p, table: table, location: location}, nil
}

// NewWithPool constructs a store from an existing pool (primarily for testing).
func NewWithPool(p pool, table string) (*Store, error) {
	if p == nil {
		return nil, errors.New("pool is required")
	}
	name, err := draft.TableName(table)
	if err != nil {
		return nil, err
	}
	return &Store{pool: p, table: name, location: "postgres"}, nil
}

// Table is the picks table name.
func (s *Store) Table() string { return s.table }

// Location names the database without credentials.
func (s *Store) Location() string { return s.location }

func (s *Store) createTableSQL() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
	season TEXT,
	pick_overall TEXT,
	player TEXT,
	position TEXT,
	college TEXT,
	notes TEXT
)`, s.table)
}

// Replace clears the table and copies records in within one transaction.
func (s *Store) Replace(ctx context.Context, records []draft.Record) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err := tx.Exec(ctx, s.createTableSQL()); err != nil {
		return 0, fmt.Errorf("create table %s: %w", s.table, err)
	}
	if _, err := tx.Exec(ctx, fmt.Sprintf("DELETE FROM %s", s.table)); err != nil {
		return 0, fmt.Errorf("clear %s: %w", s.table, err)
	}

	var inserted int64
	if len(records) > 0 {
		rows := make([][]any, 0, len(records))
		for _, rec := range records {
			rows = append(rows, rec.Values())
		}
		inserted, err = tx.CopyFrom(ctx, pgx.Identifier{s.table}, draft.Columns[:], pgx.CopyFromRows(rows))
		if err != nil {
			return 0, fmt.Errorf("copy into %s: %w", s.table, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	committed = true
	return int(inserted), nil
}

// List returns every stored pick ordered by id.
func (s *Store) List(ctx context.Context) ([]draft.Record, error) {
	if _, err := s.pool.Exec(ctx, s.createTableSQL()); err != nil {
		return nil, fmt.Errorf("create table %s: %w", s.table, err)
	}
	rows, err := s.pool.Query(ctx, fmt.Sprintf(
		"SELECT %s FROM %s ORDER BY id", strings.Join(draft.Columns[:], ", "), s.table,
	))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	var out []draft.Record
	for rows.Next() {
		var cells [draft.Width]*string
		if err := rows.Scan(&cells[0], &cells[1], &cells[2], &cells[3], &cells[4], &cells[5]); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.table, err)
		}
		fields := make([]string, draft.Width)
		for i, c := range cells {
			if c != nil {
				fields[i] = *c
			}
		}
		out = append(out, draft.RecordFromFields(fields))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", s.table, err)
	}
	return out, nil
}

// Close releases the underlying pool resources.
func (s *Store) Close() error {
	if s == nil || s.pool == nil {
		return nil
	}
	s.pool.Close()
	return nil
}
