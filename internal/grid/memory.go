package grid

import (
	"context"
	"sync"
)

// Memory is an in-process grid backend. It mirrors the remote service's
// shape (header row at 0, per-cell limit, no cross-cell atomicity) and is
// the backend used by tests and local runs.
type Memory struct {
	mu        sync.Mutex
	tables    map[string]*memTable
	cellLimit int
}

type memTable struct {
	header []string
	rows   [][]string // data rows, index 1 maps to rows[0]
	width  int
}

// NewMemory creates an empty in-memory backend with the default cell limit.
func NewMemory() *Memory {
	return &Memory{tables: make(map[string]*memTable), cellLimit: DefaultCellLimit}
}

// NewMemoryWithLimit creates an in-memory backend with a custom cell limit.
func NewMemoryWithLimit(limit int) *Memory {
	return &Memory{tables: make(map[string]*memTable), cellLimit: limit}
}

func (m *Memory) CellLimit() int { return m.cellLimit }

func (m *Memory) EnsureTable(ctx context.Context, table string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tables[table]; !ok {
		m.tables[table] = &memTable{}
	}
	return nil
}

func (m *Memory) table(name string) (*memTable, error) {
	t, ok := m.tables[name]
	if !ok {
		return nil, ErrNoSuchTable
	}
	return t, nil
}

func (m *Memory) HeaderRow(ctx context.Context, table string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.table(table)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.header))
	copy(out, t.header)
	return out, nil
}

func (m *Memory) WriteHeaderRow(ctx context.Context, table string, columns []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.table(table)
	if err != nil {
		return err
	}
	if err := m.checkCells(columns); err != nil {
		return err
	}
	t.header = append([]string(nil), columns...)
	if len(columns) > t.width {
		t.width = len(columns)
	}
	return nil
}

func (m *Memory) ResizeColumns(ctx context.Context, table string, count int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.table(table)
	if err != nil {
		return err
	}
	if count > t.width {
		t.width = count
	}
	return nil
}

func (m *Memory) FindRowByKey(ctx context.Context, table string, keyCol int, key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.table(table)
	if err != nil {
		return 0, err
	}
	for i, row := range t.rows {
		if cellAt(row, keyCol) == key {
			return i + 1, nil
		}
	}
	return 0, ErrRowNotFound
}

func (m *Memory) ReadRow(ctx context.Context, table string, row int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.table(table)
	if err != nil {
		return nil, err
	}
	if row < 1 || row > len(t.rows) {
		return nil, ErrNoSuchRow
	}
	out := make([]string, len(t.rows[row-1]))
	copy(out, t.rows[row-1])
	return out, nil
}

func (m *Memory) ReadColumn(ctx context.Context, table string, col int) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.table(table)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = cellAt(row, col)
	}
	return out, nil
}

func (m *Memory) AppendRow(ctx context.Context, table string, values []string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.table(table)
	if err != nil {
		return 0, err
	}
	if err := m.checkCells(values); err != nil {
		return 0, err
	}
	t.rows = append(t.rows, append([]string(nil), values...))
	if len(values) > t.width {
		t.width = len(values)
	}
	return len(t.rows), nil
}

func (m *Memory) OverwriteRow(ctx context.Context, table string, row int, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.table(table)
	if err != nil {
		return err
	}
	if row < 1 || row > len(t.rows) {
		return ErrNoSuchRow
	}
	if err := m.checkCells(values); err != nil {
		return err
	}
	t.rows[row-1] = append([]string(nil), values...)
	return nil
}

// RowCount reports the number of data rows, for tests and diagnostics.
func (m *Memory) RowCount(table string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tables[table]
	if !ok {
		return 0
	}
	return len(t.rows)
}

func (m *Memory) checkCells(values []string) error {
	for _, v := range values {
		if len([]rune(v)) > m.cellLimit {
			return ErrCellTooLarge
		}
	}
	return nil
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
