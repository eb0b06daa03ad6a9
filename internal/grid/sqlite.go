package grid

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLite is a durable grid backend. Cells live in a single SQLite table
// keyed by (tbl, rowno, colno); row 0 holds the header. Row writes are
// issued cell by cell, preserving the remote contract's lack of multi-cell
// atomicity.
type SQLite struct {
	db        *sql.DB
	cellLimit int
}

// NewSQLite opens (or creates) a SQLite-backed grid at the given path.
// Use ":memory:" for an ephemeral backend.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", ErrUnavailable, err)
	}

	schema := `
CREATE TABLE IF NOT EXISTS grid_tables (
    name TEXT PRIMARY KEY,
    width INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS grid_cells (
    tbl TEXT NOT NULL,
    rowno INTEGER NOT NULL,
    colno INTEGER NOT NULL,
    value TEXT NOT NULL,
    PRIMARY KEY (tbl, rowno, colno)
);
CREATE INDEX IF NOT EXISTS idx_cells_lookup ON grid_cells(tbl, colno, value);
`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create schema: %v", ErrUnavailable, err)
	}

	return &SQLite{db: db, cellLimit: DefaultCellLimit}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error { return s.db.Close() }

func (s *SQLite) CellLimit() int { return s.cellLimit }

func (s *SQLite) EnsureTable(ctx context.Context, table string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO grid_tables (name, width) VALUES (?, 0) ON CONFLICT(name) DO NOTHING`, table)
	if err != nil {
		return fmt.Errorf("%w: ensure table %q: %v", ErrUnavailable, table, err)
	}
	return nil
}

func (s *SQLite) requireTable(ctx context.Context, table string) error {
	var name string
	err := s.db.QueryRowContext(ctx, `SELECT name FROM grid_tables WHERE name = ?`, table).Scan(&name)
	if err == sql.ErrNoRows {
		return ErrNoSuchTable
	}
	if err != nil {
		return fmt.Errorf("%w: lookup table %q: %v", ErrUnavailable, table, err)
	}
	return nil
}

func (s *SQLite) HeaderRow(ctx context.Context, table string) ([]string, error) {
	if err := s.requireTable(ctx, table); err != nil {
		return nil, err
	}
	return s.readCells(ctx, table, 0)
}

func (s *SQLite) WriteHeaderRow(ctx context.Context, table string, columns []string) error {
	return s.writeCells(ctx, table, 0, columns)
}

func (s *SQLite) ResizeColumns(ctx context.Context, table string, count int) error {
	if err := s.requireTable(ctx, table); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE grid_tables SET width = ? WHERE name = ? AND width < ?`, count, table, count)
	if err != nil {
		return fmt.Errorf("%w: resize %q: %v", ErrUnavailable, table, err)
	}
	return nil
}

func (s *SQLite) FindRowByKey(ctx context.Context, table string, keyCol int, key string) (int, error) {
	if err := s.requireTable(ctx, table); err != nil {
		return 0, err
	}
	var row int
	err := s.db.QueryRowContext(ctx,
		`SELECT rowno FROM grid_cells WHERE tbl = ? AND colno = ? AND value = ? AND rowno >= 1 ORDER BY rowno LIMIT 1`,
		table, keyCol, key).Scan(&row)
	if err == sql.ErrNoRows {
		return 0, ErrRowNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("%w: find row in %q: %v", ErrUnavailable, table, err)
	}
	return row, nil
}

func (s *SQLite) ReadRow(ctx context.Context, table string, row int) ([]string, error) {
	if err := s.requireTable(ctx, table); err != nil {
		return nil, err
	}
	if row < 1 || row > s.lastRow(ctx, table) {
		return nil, ErrNoSuchRow
	}
	return s.readCells(ctx, table, row)
}

func (s *SQLite) ReadColumn(ctx context.Context, table string, col int) ([]string, error) {
	if err := s.requireTable(ctx, table); err != nil {
		return nil, err
	}
	last := s.lastRow(ctx, table)
	out := make([]string, last)

	rows, err := s.db.QueryContext(ctx,
		`SELECT rowno, value FROM grid_cells WHERE tbl = ? AND colno = ? AND rowno >= 1`, table, col)
	if err != nil {
		return nil, fmt.Errorf("%w: read column in %q: %v", ErrUnavailable, table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var rowno int
		var value string
		if err := rows.Scan(&rowno, &value); err != nil {
			return nil, fmt.Errorf("%w: scan cell in %q: %v", ErrUnavailable, table, err)
		}
		if rowno >= 1 && rowno <= last {
			out[rowno-1] = value
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read column in %q: %v", ErrUnavailable, table, err)
	}
	return out, nil
}

func (s *SQLite) AppendRow(ctx context.Context, table string, values []string) (int, error) {
	if err := s.requireTable(ctx, table); err != nil {
		return 0, err
	}
	row := s.lastRow(ctx, table) + 1
	if err := s.writeCells(ctx, table, row, values); err != nil {
		return 0, err
	}
	return row, nil
}

func (s *SQLite) OverwriteRow(ctx context.Context, table string, row int, values []string) error {
	if err := s.requireTable(ctx, table); err != nil {
		return err
	}
	if row < 1 || row > s.lastRow(ctx, table) {
		return ErrNoSuchRow
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM grid_cells WHERE tbl = ? AND rowno = ?`, table, row); err != nil {
		return fmt.Errorf("%w: clear row in %q: %v", ErrUnavailable, table, err)
	}
	return s.writeCells(ctx, table, row, values)
}

func (s *SQLite) lastRow(ctx context.Context, table string) int {
	var last int
	s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(rowno), 0) FROM grid_cells WHERE tbl = ?`, table).Scan(&last)
	return last
}

func (s *SQLite) readCells(ctx context.Context, table string, row int) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT colno, value FROM grid_cells WHERE tbl = ? AND rowno = ? ORDER BY colno`, table, row)
	if err != nil {
		return nil, fmt.Errorf("%w: read row in %q: %v", ErrUnavailable, table, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var colno int
		var value string
		if err := rows.Scan(&colno, &value); err != nil {
			return nil, fmt.Errorf("%w: scan cell in %q: %v", ErrUnavailable, table, err)
		}
		for len(out) <= colno {
			out = append(out, "")
		}
		out[colno] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read row in %q: %v", ErrUnavailable, table, err)
	}
	return out, nil
}

// writeCells upserts one cell at a time. There is no surrounding
// transaction: a failure mid-row leaves earlier cells written, matching
// the remote backend's behavior.
func (s *SQLite) writeCells(ctx context.Context, table string, row int, values []string) error {
	if err := s.requireTable(ctx, table); err != nil {
		return err
	}
	for _, v := range values {
		if len([]rune(v)) > s.cellLimit {
			return ErrCellTooLarge
		}
	}
	for col, v := range values {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO grid_cells (tbl, rowno, colno, value) VALUES (?, ?, ?, ?)
			 ON CONFLICT(tbl, rowno, colno) DO UPDATE SET value = excluded.value`,
			table, row, col, v)
		if err != nil {
			return fmt.Errorf("%w: write cell (%d,%d) in %q: %v", ErrUnavailable, row, col, table, err)
		}
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE grid_tables SET width = ? WHERE name = ? AND width < ?`,
		len(values), table, len(values)); err != nil {
		return fmt.Errorf("%w: update width of %q: %v", ErrUnavailable, table, err)
	}
	return nil
}
