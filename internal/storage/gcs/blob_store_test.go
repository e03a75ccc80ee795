package gcs

import (
	"testing"

	"cloud.google.com/go/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidation(t *testing.T) {
	t.Parallel()

	_, err := New(nil, Config{Bucket: "picks"})
	require.ErrorContains(t, err, "storage client is required")

	_, err = New(&storage.Client{}, Config{Bucket: "  "})
	require.ErrorContains(t, err, "bucket name is required")

	store, err := New(&storage.Client{}, Config{Bucket: "picks"})
	require.NoError(t, err)
	assert.Equal(t, "picks", store.bucket)
}

func TestURI(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "gs://picks/pages/a.html", URI("picks", "pages/a.html"))
	assert.Equal(t, "gs://picks/pages/a.html", URI("picks", "/pages/a.html"))
}
