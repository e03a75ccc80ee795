package draft

import (
	"context"
	"io"
	"time"
)

// Fetcher retrieves the raw source document.
type Fetcher interface {
	Fetch(ctx context.Context, request FetchRequest) (FetchResponse, error)
}

// Sink persists records with full-refresh semantics.
type Sink interface {
	// Replace deletes every stored row and inserts records in one transaction.
	Replace(ctx context.Context, records []Record) (int, error)
	// List returns the stored rows ordered by id.
	List(ctx context.Context) ([]Record, error)
	Close() error
}

// BlobStore writes raw artifacts and returns a URI.
type BlobStore interface {
	PutObject(ctx context.Context, path string, contentType string, r io.Reader) (string, error)
}

// Publisher pushes refresh notices to Pub/Sub (or similar).
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) (string, error)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// IDGenerator produces run IDs.
type IDGenerator interface {
	NewID() (string, error)
}
