package store

import (
	"errors"
	"fmt"
)

var (
	// ErrSchemaMigration indicates the header rewrite could not be applied.
	// Fatal for the tenant's session: every row mapping depends on it.
	ErrSchemaMigration = errors.New("schema migration failed")

	// ErrMalformedBlob indicates the history blob column failed to parse.
	// Decode degrades to empty collections instead of failing the load.
	ErrMalformedBlob = errors.New("malformed history blob")
)

// PayloadTooLargeError reports which logical column exceeded the backend's
// per-cell limit. The write fails before any cell is sent.
type PayloadTooLargeError struct {
	Column string
	Size   int
	Limit  int
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("payload too large: column %q is %d characters, limit %d", e.Column, e.Size, e.Limit)
}
