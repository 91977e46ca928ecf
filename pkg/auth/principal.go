package auth

import (
	"github.com/angelmondragon/littlelemon-backend/pkg/enums"
)

// Principal is the authenticated requester, resolved once per request.
type Principal struct {
	UserID   uint
	Username string
	Role     enums.Role
	// IsAdmin marks staff accounts allowed to manage categories and groups.
	IsAdmin bool
}

// NewPrincipal resolves the effective role from group membership.
func NewPrincipal(userID uint, username string, isStaff bool, groups []enums.Group) Principal {
	return Principal{
		UserID:   userID,
		Username: username,
		Role:     enums.RoleForGroups(groups),
		IsAdmin:  isStaff,
	}
}

func (p Principal) IsManager() bool {
	return p.Role == enums.RoleManager
}

func (p Principal) IsDeliveryCrew() bool {
	return p.Role == enums.RoleDeliveryCrew
}

func (p Principal) IsCustomer() bool {
	return p.Role == enums.RoleCustomer
}

// CanManageStaff reports whether the principal may edit group membership.
func (p Principal) CanManageStaff() bool {
	return p.IsManager() || p.IsAdmin
}
