package identity

import "github.com/google/uuid"

// Identity is the caller of a request: either anonymous or a signed-in user.
// It is resolved once per request and passed explicitly to handlers.
type Identity struct {
	authenticated bool
	userID        uuid.UUID
	username      string
	isStaff       bool
}

// Anonymous is the identity of a request without a valid session
var Anonymous = Identity{}

// NewUserIdentity builds the identity of a signed-in user
func NewUserIdentity(userID uuid.UUID, username string, isStaff bool) Identity {
	return Identity{
		authenticated: true,
		userID:        userID,
		username:      username,
		isStaff:       isStaff,
	}
}

// IsAuthenticated reports whether a user is signed in
func (i Identity) IsAuthenticated() bool {
	return i.authenticated
}

// IsStaff reports whether the caller is a signed-in staff user
func (i Identity) IsStaff() bool {
	return i.authenticated && i.isStaff
}

// UserID returns the user ID, or uuid.Nil for anonymous callers
func (i Identity) UserID() uuid.UUID {
	return i.userID
}

// Username returns the username, or "" for anonymous callers
func (i Identity) Username() string {
	return i.username
}
