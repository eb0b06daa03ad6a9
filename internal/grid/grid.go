// Package grid abstracts a remote tabular storage service: a 2-D grid of
// text cells addressed by (table, row, column), with a hard per-cell size
// limit, no transactions, and rate-limited calls.
package grid

import "context"

// DefaultCellLimit is the observed per-cell character limit of the backend.
const DefaultCellLimit = 50000

// Client is the contract the store layer consumes. Row 0 of every table is
// the header row; data rows start at index 1. A multi-cell write is not
// atomic on any backend.
type Client interface {
	// EnsureTable creates the table if it does not exist.
	EnsureTable(ctx context.Context, table string) error

	// HeaderRow returns the header row, empty if the table has no header yet.
	HeaderRow(ctx context.Context, table string) ([]string, error)

	// WriteHeaderRow replaces the header row.
	WriteHeaderRow(ctx context.Context, table string, columns []string) error

	// ResizeColumns widens the table to at least count columns.
	ResizeColumns(ctx context.Context, table string, count int) error

	// FindRowByKey scans data rows for one whose keyCol cell equals key and
	// returns its row index, or ErrRowNotFound.
	FindRowByKey(ctx context.Context, table string, keyCol int, key string) (int, error)

	// ReadRow returns the cells of a data row.
	ReadRow(ctx context.Context, table string, row int) ([]string, error)

	// ReadColumn returns one cell per data row for the given column, in row
	// order. Rows shorter than the column read back as empty string.
	ReadColumn(ctx context.Context, table string, col int) ([]string, error)

	// AppendRow adds a data row after the last one and returns its index.
	AppendRow(ctx context.Context, table string, values []string) (int, error)

	// OverwriteRow replaces the cells of an existing data row.
	OverwriteRow(ctx context.Context, table string, row int, values []string) error

	// CellLimit returns the per-cell character limit enforced by the backend.
	CellLimit() int
}
