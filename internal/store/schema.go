package store

import (
	"context"
	"fmt"

	"github.com/okabe-h/gridstore/internal/grid"
)

// Schema migrates a table's header forward to a required column set
// without touching data rows. Older rows read back as empty string for
// columns added after they were written.
type Schema struct {
	client grid.Client
}

// NewSchema creates a schema manager over a grid backend.
func NewSchema(client grid.Client) *Schema {
	return &Schema{client: client}
}

// Ensure makes sure the table exists and its header contains every
// required column, returning the effective header. Pre-existing columns
// keep their left-to-right order; missing ones are appended at the end.
// Calling it again with the same requirements performs no mutation.
func (s *Schema) Ensure(ctx context.Context, table string, required []string) ([]string, error) {
	if err := s.client.EnsureTable(ctx, table); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMigration, err)
	}

	header, err := s.client.HeaderRow(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("%w: read header of %q: %v", ErrSchemaMigration, table, err)
	}

	if len(header) == 0 {
		if err := s.client.WriteHeaderRow(ctx, table, required); err != nil {
			return nil, fmt.Errorf("%w: write header of %q: %v", ErrSchemaMigration, table, err)
		}
		return append([]string(nil), required...), nil
	}

	existing := make(map[string]struct{}, len(header))
	for _, col := range header {
		existing[col] = struct{}{}
	}

	union := append([]string(nil), header...)
	for _, col := range required {
		if _, ok := existing[col]; !ok {
			union = append(union, col)
		}
	}

	if len(union) == len(header) {
		return header, nil
	}

	if err := s.client.ResizeColumns(ctx, table, len(union)); err != nil {
		return nil, fmt.Errorf("%w: resize %q to %d columns: %v", ErrSchemaMigration, table, len(union), err)
	}
	if err := s.client.WriteHeaderRow(ctx, table, union); err != nil {
		return nil, fmt.Errorf("%w: rewrite header of %q: %v", ErrSchemaMigration, table, err)
	}
	return union, nil
}
