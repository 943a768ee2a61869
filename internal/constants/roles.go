package constants

const (
	Admin  = "admin"
	Tenant = "tenant"
)

// ValidRoles is the set of allowed DB enum values for user role.
var ValidRoles = []string{Tenant, Admin}

// IsValidRole returns true if role is one of the allowed enum values.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
