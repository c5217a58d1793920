package constants

// Staff roles. Every user carries exactly one.
const (
	RoleAdmin        = "admin"
	RoleReceptionist = "receptionist"
	RoleHost         = "host"
	RoleSecurity     = "security"
	RoleUser         = "user"
)

var AllRoles = []string{RoleAdmin, RoleReceptionist, RoleHost, RoleSecurity, RoleUser}

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
