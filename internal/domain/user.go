package domain

import "time"

// Role enumerates the two access tiers in the tracker.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleLineOperator Role = "line_operator"
)

// Valid reports whether the role is one of the known tiers.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleLineOperator
}

// User is the local profile for an externally-provisioned account.
// Rows are created by the identity provider's signup hook; this service
// only reads them and mutates role, access_granted, and full_name.
type User struct {
	ID            string
	Email         string
	FullName      string
	Role          Role
	AccessGranted bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
