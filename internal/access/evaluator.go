// Package access maps roles to permission tuples and enforces condominium
// scoping. Everything here is a pure lookup over static tables: no state, no
// clock, no store. The same inputs always produce the same answer.
package access

import "syndik/internal/domain"

// PermissionSet is the four booleans the dashboard derives its controls from.
type PermissionSet struct {
	View   bool `json:"canView"`
	Create bool `json:"canCreate"`
	Edit   bool `json:"canEdit"`
	Delete bool `json:"canDelete"`
}

// ReadOnly reports whether the tuple allows viewing and nothing else. Screens
// use it to disable form controls; the evaluator itself disables nothing.
func (p PermissionSet) ReadOnly() bool {
	return p.View && !p.Create && !p.Edit && !p.Delete
}

// viewOnly is the fully-restrictive fallback for roles absent from the
// tables. It never silently grants write access to an unknown role.
var viewOnly = PermissionSet{View: true}

// defaults is the per-role tuple applied to any resource family without an
// explicit override row. Unusual combinations (delete without edit on
// technician) are intentional and must not be normalized.
var defaults = map[domain.Role]PermissionSet{
	domain.RoleTopAdministrator:   {View: true, Create: true, Edit: true, Delete: true},
	domain.RoleLocalAdministrator: {View: true, Create: true, Edit: true, Delete: true},
	domain.RoleManager:            {View: true, Create: true, Edit: true, Delete: true},
	domain.RoleOperator:           {View: true, Create: true, Edit: true, Delete: false},
	domain.RoleTechnician:         {View: true, Create: true, Edit: false, Delete: true},
	domain.RoleReception:          {View: true, Create: true, Edit: true, Delete: false},
	domain.RoleServiceProvider:    {View: true, Create: false, Edit: false, Delete: false},
	domain.RoleTemporary:          {View: true, Create: false, Edit: false, Delete: false},
	domain.RoleReadOnlyTester:     {View: true, Create: false, Edit: false, Delete: false},
}

// overrides narrows specific resource families below the role defaults.
// An all-false row is a valid, reachable state: the consuming screen refuses
// to render instead of falling back to view-only.
var overrides = map[domain.Resource]map[domain.Role]PermissionSet{
	domain.ResourceAccounts: {
		domain.RoleManager:         {View: true},
		domain.RoleOperator:        {},
		domain.RoleTechnician:      {},
		domain.RoleReception:       {},
		domain.RoleServiceProvider: {},
		domain.RoleTemporary:       {},
		domain.RoleReadOnlyTester:  {View: true},
	},
	domain.ResourceCondominiums: {
		domain.RoleManager:         {View: true},
		domain.RoleOperator:        {View: true},
		domain.RoleTechnician:      {View: true},
		domain.RoleReception:       {View: true},
		domain.RoleServiceProvider: {},
		domain.RoleTemporary:       {},
	},
	domain.ResourceAuditLogs: {
		domain.RoleManager:         {View: true},
		domain.RoleOperator:        {},
		domain.RoleTechnician:      {},
		domain.RoleReception:       {},
		domain.RoleServiceProvider: {},
		domain.RoleTemporary:       {},
		domain.RoleReadOnlyTester:  {View: true},
	},
}

// Evaluate returns the permission tuple for role on a resource family.
// Lookup order: resource override row, then the role default, then the
// view-only fallback for roles outside the enumeration. Total over all
// inputs; never errors.
func Evaluate(role domain.Role, resource domain.Resource) PermissionSet {
	if rows, ok := overrides[resource]; ok {
		if set, ok := rows[role]; ok {
			return set
		}
	}
	if set, ok := defaults[role]; ok {
		return set
	}
	return viewOnly
}

// CanAccessCondominium decides whether a caller may act on data belonging to
// target. Top administrators pass unconditionally. An empty target is the
// global-listing variant: "view all accessible" degrades to "view own", so it
// is always allowed and the listing is filtered elsewhere. Every other case
// requires the caller's own condominium to match.
func CanAccessCondominium(role domain.Role, callerCondominiumID, targetCondominiumID string) bool {
	if role == domain.RoleTopAdministrator {
		return true
	}
	if targetCondominiumID == "" {
		return true
	}
	return targetCondominiumID == callerCondominiumID
}
