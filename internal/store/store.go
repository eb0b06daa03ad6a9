// Package store turns a tabular grid backend into a multi-tenant document
// store: typed scalar columns, one packed blob column for the nested
// history collections, forward schema migration, and upsert with a stable
// row index per key.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/okabe-h/gridstore/internal/domain/project"
	"github.com/okabe-h/gridstore/internal/grid"
	"github.com/okabe-h/gridstore/internal/repository"
)

// Store implements repository.DocumentStore over a grid backend.
type Store struct {
	client grid.Client
	schema *Schema
	codec  *Codec
	ns     Namespace
	logger *slog.Logger
}

// New creates a document store.
func New(client grid.Client, ns Namespace, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		client: client,
		schema: NewSchema(client),
		codec:  NewCodec(logger),
		ns:     ns,
		logger: logger,
	}
}

// Get loads the document stored under (tenant, projectID).
func (s *Store) Get(ctx context.Context, tenantID, projectID string) (*project.Document, error) {
	table := s.ns.Table(tenantID)

	header, err := s.client.HeaderRow(ctx, table)
	if err != nil {
		if errors.Is(err, grid.ErrNoSuchTable) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("reading header of %q: %w", table, err)
	}

	keyCol := columnIndex(header, ColProjectID)
	if keyCol < 0 {
		return nil, repository.ErrNotFound
	}

	row, err := s.client.FindRowByKey(ctx, table, keyCol, s.ns.RowKey(tenantID, projectID))
	if err != nil {
		if errors.Is(err, grid.ErrRowNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("locating %q in %q: %w", projectID, table, err)
	}

	values, err := s.client.ReadRow(ctx, table, row)
	if err != nil {
		return nil, fmt.Errorf("reading row %d of %q: %w", row, table, err)
	}

	doc := s.codec.Decode(header, values)
	if key, ok := s.ns.ParseRowKey(tenantID, doc.ProjectID); ok {
		doc.ProjectID = key
	}
	return doc, nil
}

// Upsert writes the full document under (tenant, projectID), overwriting
// the existing row or appending a new one. Every cell is validated
// against the backend limit before the first write, so an oversize
// payload leaves the stored row untouched.
func (s *Store) Upsert(ctx context.Context, tenantID, projectID string, doc *project.Document) error {
	table := s.ns.Table(tenantID)

	header, err := s.schema.Ensure(ctx, table, Columns)
	if err != nil {
		return err
	}

	enc := doc.Clone()
	enc.ProjectID = s.ns.RowKey(tenantID, projectID)
	values, err := s.codec.Encode(enc, header)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", projectID, err)
	}

	limit := s.client.CellLimit()
	for i, v := range values {
		if size := len([]rune(v)); size > limit {
			return &PayloadTooLargeError{Column: header[i], Size: size, Limit: limit}
		}
	}

	keyCol := columnIndex(header, ColProjectID)
	row, err := s.client.FindRowByKey(ctx, table, keyCol, enc.ProjectID)
	switch {
	case errors.Is(err, grid.ErrRowNotFound):
		if _, err := s.client.AppendRow(ctx, table, values); err != nil {
			return fmt.Errorf("appending %q to %q: %w", projectID, table, err)
		}
	case err != nil:
		return fmt.Errorf("locating %q in %q: %w", projectID, table, err)
	default:
		if err := s.client.OverwriteRow(ctx, table, row, values); err != nil {
			return fmt.Errorf("overwriting %q in %q: %w", projectID, table, err)
		}
	}
	return nil
}

// ListKeys enumerates the tenant's project IDs. An unknown tenant lists
// empty rather than failing.
func (s *Store) ListKeys(ctx context.Context, tenantID string) ([]string, error) {
	table := s.ns.Table(tenantID)

	header, err := s.client.HeaderRow(ctx, table)
	if err != nil {
		if errors.Is(err, grid.ErrNoSuchTable) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading header of %q: %w", table, err)
	}

	keyCol := columnIndex(header, ColProjectID)
	if keyCol < 0 {
		return nil, nil
	}

	raw, err := s.client.ReadColumn(ctx, table, keyCol)
	if err != nil {
		return nil, fmt.Errorf("scanning key column of %q: %w", table, err)
	}

	var keys []string
	for _, rowKey := range raw {
		if rowKey == "" {
			continue
		}
		if key, ok := s.ns.ParseRowKey(tenantID, rowKey); ok {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func columnIndex(header []string, name string) int {
	for i, col := range header {
		if col == name {
			return i
		}
	}
	return -1
}
