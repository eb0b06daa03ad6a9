package tenant

import "errors"

var (
	// ErrUnknownTenant indicates the identifier is not on the allow-list.
	ErrUnknownTenant = errors.New("unknown tenant")
)
