package identity

import "strings"

// LoginRole is the role a user picks on the login form
type LoginRole string

const (
	LoginRoleAdmin LoginRole = "admin"
	LoginRoleUser  LoginRole = "user"
)

// ParseLoginRole normalizes a submitted role value
func ParseLoginRole(s string) LoginRole {
	return LoginRole(strings.ToLower(strings.TrimSpace(s)))
}

// LoginDestination is where a signed-in user goes next
type LoginDestination string

const (
	DestinationAdminDashboard LoginDestination = "admin_dashboard"
	DestinationHome           LoginDestination = "home"
	// DestinationRoleMismatch means the role does not fit the account.
	// The session stays established; the user is sent back to login.
	DestinationRoleMismatch LoginDestination = "role_mismatch"
)

// ResolveLoginDestination decides where an authenticated user lands for the chosen role
func ResolveLoginDestination(role LoginRole, isStaff bool) LoginDestination {
	switch {
	case role == LoginRoleAdmin && isStaff:
		return DestinationAdminDashboard
	case role == LoginRoleUser:
		return DestinationHome
	default:
		return DestinationRoleMismatch
	}
}
