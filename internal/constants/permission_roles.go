package constants

// PermissionRoles maps each permission to the roles allowed to perform it.
// Landlord-side administration (room creation, price/status updates,
// reclamation) is admin-only; leasing is open to any authenticated identity.
// Read endpoints carry no permission and are not listed.
var PermissionRoles = map[string][]string{
	LeaseShares:       {Tenant, Admin},
	CreateRoom:        {Admin},
	UpdateLeaseStatus: {Admin},
	ReclaimShares:     {Admin},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
