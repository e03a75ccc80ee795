// Package storage opens the configured persistence backends: the relational
// sink the picks are refreshed into and the blob store raw pages are archived to.
package storage

import (
	"context"
	"fmt"
	"strings"

	gcsclient "cloud.google.com/go/storage"

	"github.com/JakeFAU/draftpicks/internal/draft"
	"github.com/JakeFAU/draftpicks/internal/storage/gcs"
	"github.com/JakeFAU/draftpicks/internal/storage/local"
	"github.com/JakeFAU/draftpicks/internal/storage/postgres"
	"github.com/JakeFAU/draftpicks/internal/storage/sqlite"
)

// Sink drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Blob backends.
const (
	BlobLocal = "local"
	BlobGCS   = "gcs"
)

// SinkConfig selects and configures the relational sink.
type SinkConfig struct {
	Driver   string
	Path     string
	DSN      string
	Table    string
	MaxConns int32
}

// Sink is a draft.Sink that can describe where it writes.
type Sink interface {
	draft.Sink
	Table() string
	Location() string
}

// OpenSink opens the sink named by cfg.Driver.
func OpenSink(ctx context.Context, cfg SinkConfig) (Sink, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", DriverSQLite:
		s, err := sqlite.Open(ctx, sqlite.Config{Path: cfg.Path, Table: cfg.Table})
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return s, nil
	case DriverPostgres:
		s, err := postgres.Open(ctx, postgres.Config{DSN: cfg.DSN, Table: cfg.Table, MaxConns: cfg.MaxConns})
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}

// BlobConfig selects and configures the archive blob store.
type BlobConfig struct {
	Backend string
	Dir     string
	Bucket  string
}

// OpenBlobStore opens the blob store named by cfg.Backend. The returned close
// func releases any client the store owns.
func OpenBlobStore(ctx context.Context, cfg BlobConfig) (draft.BlobStore, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(cfg.Backend) {
	case "", BlobLocal:
		s, err := local.New(local.Config{BaseDir: cfg.Dir})
		if err != nil {
			return nil, noop, fmt.Errorf("open local blob store: %w", err)
		}
		return s, noop, nil
	case BlobGCS:
		client, err := gcsclient.NewClient(ctx)
		if err != nil {
			return nil, noop, fmt.Errorf("create gcs client: %w", err)
		}
		s, err := gcs.New(client, gcs.Config{Bucket: cfg.Bucket})
		if err != nil {
			_ = client.Close()
			return nil, noop, fmt.Errorf("open gcs blob store: %w", err)
		}
		return s, client.Close, nil
	default:
		return nil, noop, fmt.Errorf("unsupported archive backend %q", cfg.Backend)
	}
}
