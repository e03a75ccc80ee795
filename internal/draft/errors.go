package draft

import "errors"

var (
	// ErrUnexpectedStatus is returned when the source answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected http status")
	// ErrTableNotFound is returned when no table matches the configured selector.
	ErrTableNotFound = errors.New("target table not found")
	// ErrUnexpectedColumns is returned when the header does not have Width columns.
	ErrUnexpectedColumns = errors.New("unexpected column count")
	// ErrInvalidTable is returned for table names that are not plain SQL identifiers.
	ErrInvalidTable = errors.New("invalid table name")
)
