package domain

import (
	"fmt"
	"time"
)

// Role is the fixed category assigned to an Account. It governs the default
// permission tuple for every resource family and is immutable after creation:
// no workflow in this service changes an account's role.
type Role string

const (
	RoleTopAdministrator   Role = "top_administrator"
	RoleLocalAdministrator Role = "local_administrator"
	RoleManager            Role = "manager"
	RoleOperator           Role = "operator"
	RoleTechnician         Role = "technician"
	RoleServiceProvider    Role = "service_provider"
	RoleTemporary          Role = "temporary"
	RoleReception          Role = "reception"
	RoleReadOnlyTester     Role = "read_only_tester"
)

var roles = map[Role]struct{}{
	RoleTopAdministrator:   {},
	RoleLocalAdministrator: {},
	RoleManager:            {},
	RoleOperator:           {},
	RoleTechnician:         {},
	RoleServiceProvider:    {},
	RoleTemporary:          {},
	RoleReception:          {},
	RoleReadOnlyTester:     {},
}

// ParseRole validates a role string against the closed enumeration.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roles[r]; !ok {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether the role belongs to the closed enumeration. Callers
// that receive arbitrary strings (the evaluator, stored records written by
// older versions) must tolerate invalid roles rather than fail.
func (r Role) Valid() bool {
	_, ok := roles[r]
	return ok
}

// Account is the identity entity behind every dashboard session.
// CondominiumID is empty for accounts without an owning site; references to
// deleted condominiums are tolerated and filtered out at read time.
type Account struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	SecretHash    string    `json:"secretHash"`
	Role          Role      `json:"role"`
	CondominiumID string    `json:"condominiumId,omitempty"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
	// Permissions carries fine-grained permission identifiers. They are only
	// meaningful on top-administrator accounts, where they further describe a
	// still-privileged account; they never grant capabilities beyond the role.
	Permissions []string `json:"permissions,omitempty"`
}

// Actor is the denormalized identity snapshot attached to audit entries and
// used by the permission checks. It is built from the session claims, not
// reloaded from the store, so records stay meaningful if the account changes.
type Actor struct {
	ID            string
	Name          string
	Role          Role
	CondominiumID string
}
