package grid

import "errors"

var (
	// ErrRowNotFound indicates no data row matched the key. Not a failure:
	// callers treat it as "document absent".
	ErrRowNotFound = errors.New("row not found")
	// ErrCellTooLarge indicates a cell value exceeds the backend limit.
	ErrCellTooLarge = errors.New("cell value exceeds backend limit")
	// ErrUnavailable indicates an auth or connectivity failure talking to
	// the backend. Surfaced to the caller, never retried here.
	ErrUnavailable = errors.New("tabular backend unavailable")
	// ErrNoSuchTable indicates an operation on a table that was never ensured.
	ErrNoSuchTable = errors.New("no such table")
	// ErrNoSuchRow indicates a row index outside the table's data rows.
	ErrNoSuchRow = errors.New("no such row")
)
