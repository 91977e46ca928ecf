package enums

import "fmt"

// Group names a staff group a user can belong to.
type Group string

const (
	GroupManager      Group = "Manager"
	GroupDeliveryCrew Group = "delivery_crew"
)

var validGroups = []Group{GroupManager, GroupDeliveryCrew}

// String implements fmt.Stringer.
func (g Group) String() string {
	return string(g)
}

// IsValid reports whether the value is a known Group.
func (g Group) IsValid() bool {
	for _, candidate := range validGroups {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseGroup converts raw input into a Group.
func ParseGroup(value string) (Group, error) {
	for _, candidate := range validGroups {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid group %q", value)
}
