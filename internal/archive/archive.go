// Package archive writes fetched source documents to a blob store before they
// are parsed, so a refresh can be audited against the exact bytes it read.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/JakeFAU/draftpicks/internal/draft"
	"github.com/JakeFAU/draftpicks/internal/hash/sha256"
)

// DefaultPrefix is the object prefix used when none is configured.
const DefaultPrefix = "pages"

// ContentType is the content type recorded for archived documents.
const ContentType = "text/html; charset=utf-8"

// Archiver stores raw documents under <prefix>/<YYYY-MM-DD>/<sha256>.html.
type Archiver struct {
	store  draft.BlobStore
	clock  draft.Clock
	hasher *sha256.Hasher
	prefix string
}

// New builds an Archiver. An empty prefix falls back to DefaultPrefix.
func New(store draft.BlobStore, clock draft.Clock, prefix string) (*Archiver, error) {
	if store == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if clock == nil {
		return nil, fmt.Errorf("clock is required")
	}
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Archiver{
		store:  store,
		clock:  clock,
		hasher: sha256.New(),
		prefix: prefix,
	}, nil
}

// ObjectPath returns the key a document body is archived under.
func (a *Archiver) ObjectPath(body []byte) string {
	day := a.clock.Now().Format(time.DateOnly)
	return path.Join(a.prefix, day, a.hasher.Hash(body)+".html")
}

// Archive writes body and returns the store URI.
func (a *Archiver) Archive(ctx context.Context, body []byte) (string, error) {
	key := a.ObjectPath(body)
	uri, err := a.store.PutObject(ctx, key, ContentType, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("archive %s: %w", key, err)
	}
	return uri, nil
}
