package draft

import (
	"fmt"
	"regexp"
)

var validTableName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// TableName returns name, or DefaultTable when empty, after checking that it
// is safe to interpolate into SQL.
func TableName(name string) (string, error) {
	if name == "" {
		name = DefaultTable
	}
	if !validTableName.MatchString(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTable, name)
	}
	return name, nil
}
