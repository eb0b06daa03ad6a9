package mcp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/okabe-h/gridstore/internal/domain/project"
	"github.com/okabe-h/gridstore/internal/domain/tenant"
	"github.com/okabe-h/gridstore/internal/store"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{project.ErrProjectNotFound, "PROJECT_NOT_FOUND"},
		{fmt.Errorf("getting project: %w", project.ErrProjectNotFound), "PROJECT_NOT_FOUND"},
		{project.ErrUnknownField, "UNKNOWN_FIELD"},
		{tenant.ErrUnknownTenant, "UNKNOWN_TENANT"},
		{store.ErrSchemaMigration, "SCHEMA_MIGRATION_FAILED"},
		{&store.PayloadTooLargeError{Column: "blob", Size: 51000, Limit: 50000}, "PAYLOAD_TOO_LARGE"},
	}

	for _, tc := range cases {
		apiErr := MapError(tc.err)
		require.NotNil(t, apiErr, "expected mapping for %v", tc.err)
		require.Equal(t, tc.code, apiErr.Code)
	}

	require.Nil(t, MapError(nil))
	require.Nil(t, MapError(errors.New("unclassified")))
}
