package auth

import "errors"

// Role names. Roles are independent flags checked per operation, not a
// ladder: Admin does not inherit author-only rights such as comment edit.
const (
	RoleAdmin      = "Admin"
	RoleTechWriter = "TechWriter"
	RoleUser       = "User"
)

// AllRoles is the seed set created at startup.
var AllRoles = []string{RoleAdmin, RoleTechWriter, RoleUser}

// HasAnyRole reports whether the caller's role set intersects the
// required set.
func HasAnyRole(userRoles []string, required ...string) bool {
	set := make(map[string]struct{}, len(userRoles))
	for _, r := range userRoles {
		set[r] = struct{}{}
	}
	for _, r := range required {
		if _, ok := set[r]; ok {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the role set contains Admin.
func IsAdmin(userRoles []string) bool {
	return HasAnyRole(userRoles, RoleAdmin)
}

// ValidateRole rejects unknown role names.
func ValidateRole(role string) error {
	switch role {
	case RoleAdmin, RoleTechWriter, RoleUser:
		return nil
	default:
		return errors.New("invalid role")
	}
}
