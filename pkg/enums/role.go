package enums

import "fmt"

// Role is the effective permission level of a requester.
type Role string

const (
	RoleManager      Role = "manager"
	RoleDeliveryCrew Role = "delivery_crew"
	RoleCustomer     Role = "customer"
)

var validRoles = []Role{RoleManager, RoleDeliveryCrew, RoleCustomer}

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// IsValid reports whether the value is a known Role.
func (r Role) IsValid() bool {
	for _, candidate := range validRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRole converts raw input into a Role.
func ParseRole(value string) (Role, error) {
	for _, candidate := range validRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", value)
}

// RoleForGroups resolves group membership into a single role.
// Manager wins over delivery crew; no staff group means customer.
func RoleForGroups(groups []Group) Role {
	crew := false
	for _, g := range groups {
		switch g {
		case GroupManager:
			return RoleManager
		case GroupDeliveryCrew:
			crew = true
		}
	}
	if crew {
		return RoleDeliveryCrew
	}
	return RoleCustomer
}
