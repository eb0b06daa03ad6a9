package grid

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// backends returns a fresh instance of every Client implementation.
func backends(t *testing.T) map[string]Client {
	t.Helper()

	sq, err := NewSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })

	return map[string]Client{
		"memory": NewMemory(),
		"sqlite": sq,
	}
}

func TestClient_HeaderRoundTrip(t *testing.T) {
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, c.EnsureTable(ctx, "projects_alice"))

			header, err := c.HeaderRow(ctx, "projects_alice")
			require.NoError(t, err)
			require.Empty(t, header)

			cols := []string{"project_id", "confirmed", "pending"}
			require.NoError(t, c.WriteHeaderRow(ctx, "projects_alice", cols))

			header, err = c.HeaderRow(ctx, "projects_alice")
			require.NoError(t, err)
			require.Equal(t, cols, header)
		})
	}
}

func TestClient_AppendFindOverwrite(t *testing.T) {
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, c.EnsureTable(ctx, "t"))
			require.NoError(t, c.WriteHeaderRow(ctx, "t", []string{"id", "body"}))

			idx, err := c.AppendRow(ctx, "t", []string{"P1", "first"})
			require.NoError(t, err)
			require.Equal(t, 1, idx)

			idx2, err := c.AppendRow(ctx, "t", []string{"P2", "second"})
			require.NoError(t, err)
			require.Equal(t, 2, idx2)

			found, err := c.FindRowByKey(ctx, "t", 0, "P2")
			require.NoError(t, err)
			require.Equal(t, 2, found)

			_, err = c.FindRowByKey(ctx, "t", 0, "P3")
			require.ErrorIs(t, err, ErrRowNotFound)

			require.NoError(t, c.OverwriteRow(ctx, "t", 1, []string{"P1", "rewritten"}))
			row, err := c.ReadRow(ctx, "t", 1)
			require.NoError(t, err)
			require.Equal(t, []string{"P1", "rewritten"}, row)

			// Header must never match a key scan.
			_, err = c.FindRowByKey(ctx, "t", 0, "id")
			require.ErrorIs(t, err, ErrRowNotFound)
		})
	}
}

func TestClient_ReadColumn(t *testing.T) {
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, c.EnsureTable(ctx, "t"))
			require.NoError(t, c.WriteHeaderRow(ctx, "t", []string{"id", "body"}))

			_, err := c.AppendRow(ctx, "t", []string{"P1", "x"})
			require.NoError(t, err)
			_, err = c.AppendRow(ctx, "t", []string{"P2"}) // short row
			require.NoError(t, err)

			keys, err := c.ReadColumn(ctx, "t", 0)
			require.NoError(t, err)
			require.Equal(t, []string{"P1", "P2"}, keys)

			bodies, err := c.ReadColumn(ctx, "t", 1)
			require.NoError(t, err)
			require.Equal(t, []string{"x", ""}, bodies)
		})
	}
}

func TestClient_CellLimit(t *testing.T) {
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, c.EnsureTable(ctx, "t"))

			atLimit := strings.Repeat("a", c.CellLimit())
			_, err := c.AppendRow(ctx, "t", []string{"P1", atLimit})
			require.NoError(t, err)

			_, err = c.AppendRow(ctx, "t", []string{"P2", atLimit + "a"})
			require.ErrorIs(t, err, ErrCellTooLarge)
		})
	}
}

func TestClient_UnknownTable(t *testing.T) {
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, err := c.HeaderRow(ctx, "never_ensured")
			require.ErrorIs(t, err, ErrNoSuchTable)
		})
	}
}

func TestClient_EnsureTableIdempotent(t *testing.T) {
	for name, c := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, c.EnsureTable(ctx, "t"))
			require.NoError(t, c.WriteHeaderRow(ctx, "t", []string{"id"}))
			_, err := c.AppendRow(ctx, "t", []string{"P1"})
			require.NoError(t, err)

			// Ensuring again must not clear anything.
			require.NoError(t, c.EnsureTable(ctx, "t"))
			header, err := c.HeaderRow(ctx, "t")
			require.NoError(t, err)
			require.Equal(t, []string{"id"}, header)
			row, err := c.ReadRow(ctx, "t", 1)
			require.NoError(t, err)
			require.Equal(t, []string{"P1"}, row)
		})
	}
}
