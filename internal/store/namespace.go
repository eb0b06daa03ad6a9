package store

import "strings"

// Namespace maps a tenant to its region of the backend. Two layouts exist
// across deployments: a dedicated table per tenant, and a single shared
// table with tenant-prefixed row keys. Every store call goes through the
// namespace, so neither layout can reach across a tenant boundary.
type Namespace interface {
	// Table returns the backend table holding the tenant's rows.
	Table(tenantID string) string
	// RowKey returns the key-column value for a tenant's project.
	RowKey(tenantID, projectID string) string
	// ParseRowKey maps a key-column value back to a project ID, reporting
	// false for rows belonging to other tenants.
	ParseRowKey(tenantID, rowKey string) (string, bool)
}

// TablePerTenant gives each tenant a dedicated table named after it.
type TablePerTenant struct {
	// Prefix is prepended to the tenant ID to form the table name.
	Prefix string
}

func (n TablePerTenant) Table(tenantID string) string {
	return n.Prefix + tenantID
}

func (n TablePerTenant) RowKey(tenantID, projectID string) string {
	return projectID
}

func (n TablePerTenant) ParseRowKey(tenantID, rowKey string) (string, bool) {
	return rowKey, true
}

// SharedTable keeps every tenant in one table, one row per (tenant,
// project), with the tenant folded into the row key.
type SharedTable struct {
	Name string
}

func (n SharedTable) Table(tenantID string) string {
	return n.Name
}

func (n SharedTable) RowKey(tenantID, projectID string) string {
	return tenantID + "/" + projectID
}

func (n SharedTable) ParseRowKey(tenantID, rowKey string) (string, bool) {
	return strings.CutPrefix(rowKey, tenantID+"/")
}
