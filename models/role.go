package models

import (
	"fmt"
	"strings"
)

// Role is an ordered access level. Higher values grant more rights, so roles
// are compared by their order rather than through ad hoc lookup tables.
type Role int

const (
	RoleViewer Role = iota + 1
	RoleMember
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleViewer: "viewer",
	RoleMember: "member",
	RoleAdmin:  "admin",
}

// String returns the lowercase role name, or "unknown" for out-of-range values.
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether r is one of the declared roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// AtLeast reports whether r grants at least the rights of required.
// Unknown roles never satisfy any requirement.
func (r Role) AtLeast(required Role) bool {
	if !r.Valid() || !required.Valid() {
		return false
	}
	return r >= required
}

// ParseRole converts a role name (case-insensitive) to a [Role].
func ParseRole(s string) (Role, error) {
	for role, name := range roleNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return role, nil
		}
	}
	return 0, fmt.Errorf("unknown role %q", s)
}
