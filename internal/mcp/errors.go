package mcp

import (
	"errors"
	"fmt"

	"github.com/okabe-h/gridstore/internal/domain/project"
	"github.com/okabe-h/gridstore/internal/domain/tenant"
	"github.com/okabe-h/gridstore/internal/grid"
	"github.com/okabe-h/gridstore/internal/store"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain and storage errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}

	var tooLarge *store.PayloadTooLargeError
	if errors.As(err, &tooLarge) {
		return &APIError{
			Code:         "PAYLOAD_TOO_LARGE",
			Message:      tooLarge.Error(),
			RecoveryHint: "Trim the field or archive older history entries",
		}
	}

	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Check ID spelling or call list_projects"}
	case errors.Is(err, project.ErrUnknownField):
		return &APIError{Code: "UNKNOWN_FIELD", Message: "unknown project field", RecoveryHint: "Use confirmed, pending, strategy, memo, or transcript"}
	case errors.Is(err, project.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: "invalid project input"}
	case errors.Is(err, tenant.ErrUnknownTenant):
		return &APIError{Code: "UNKNOWN_TENANT", Message: "identifier not on the allow-list"}
	case errors.Is(err, store.ErrSchemaMigration):
		return &APIError{Code: "SCHEMA_MIGRATION_FAILED", Message: "table schema could not be migrated", RecoveryHint: "Inspect the backend table manually"}
	case errors.Is(err, grid.ErrUnavailable):
		return &APIError{Code: "BACKEND_UNAVAILABLE", Message: "tabular backend unavailable", RecoveryHint: "Retry once connectivity is restored"}
	default:
		return nil
	}
}
