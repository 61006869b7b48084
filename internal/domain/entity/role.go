// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleAdmin indicates a platform administrator.
	RoleAdmin Role = "admin"
	// RoleShopOwner indicates a user running a shop. A shop reference is
	// required for this role.
	RoleShopOwner Role = "shop-owner"
	// RoleShopOwnerPending indicates a user awaiting assignment to a shop.
	RoleShopOwnerPending Role = "shop-owner-pending"
	// RoleClient indicates an end customer. An address is required for
	// this role.
	RoleClient Role = "client"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleShopOwner, RoleShopOwnerPending, RoleClient:
		return true
	default:
		return false
	}
}

// Roles is a slice of Role for convenience.
type Roles []Role

// Contains checks if the roles slice contains a specific role.
func (rs Roles) Contains(role Role) bool {
	return slices.Contains(rs, role)
}

// ToStrings converts Roles to []string for JWT compatibility.
func (rs Roles) ToStrings() []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r.String()
	}

	return result
}
