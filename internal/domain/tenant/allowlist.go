package tenant

import "strings"

// Allowlist is the static membership check for tenant identifiers. There
// is no other authorization logic: an identifier either is a tenant or it
// is nobody.
type Allowlist struct {
	members map[string]struct{}
}

// NewAllowlist builds an allow-list from identifiers. Blank entries are
// dropped; matching is exact after trimming surrounding whitespace.
func NewAllowlist(identifiers []string) *Allowlist {
	members := make(map[string]struct{}, len(identifiers))
	for _, id := range identifiers {
		id = strings.TrimSpace(id)
		if id != "" {
			members[id] = struct{}{}
		}
	}
	return &Allowlist{members: members}
}

// Resolve returns the tenant ID for an identifier, or ErrUnknownTenant.
func (a *Allowlist) Resolve(identifier string) (string, error) {
	identifier = strings.TrimSpace(identifier)
	if _, ok := a.members[identifier]; !ok {
		return "", ErrUnknownTenant
	}
	return identifier, nil
}
