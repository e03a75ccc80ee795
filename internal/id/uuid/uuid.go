// Package uuid generates run identifiers.
package uuid

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator creates UUIDv7 run IDs. It satisfies draft.IDGenerator.
type Generator struct{}

// New creates a new Generator.
func New() *Generator {
	return &Generator{}
}

// NewID returns a UUIDv7 string. IDs sort by creation time.
func (Generator) NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	return id.String(), nil
}

// Static always returns the same ID. Useful when a run must be reproducible.
type Static string

// NewID returns the static value.
func (s Static) NewID() (string, error) {
	if s == "" {
		return "", fmt.Errorf("static run id is empty")
	}
	return string(s), nil
}
