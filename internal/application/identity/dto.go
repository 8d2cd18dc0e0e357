package identity

import (
	"sort"
	"strings"

	"github.com/fliamecomm/storefront/internal/domain/identity"
	"github.com/fliamecomm/storefront/internal/domain/shared"
	"github.com/fliamecomm/storefront/internal/infrastructure/auth"
)

// RegisterInput contains the sign-up form fields
type RegisterInput struct {
	Username        string `form:"username" binding:"required,max=150"`
	Email           string `form:"email" binding:"omitempty,email,max=254"`
	Password        string `form:"password1" binding:"required"`
	ConfirmPassword string `form:"password2" binding:"required"`
}

// LoginInput contains the login form fields
type LoginInput struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	Role     string `form:"role"`
}

// AuthResult is a signed-in user and their new session
type AuthResult struct {
	User    *identity.User
	Session *auth.SessionToken
}

// LoginResult is an established session and where the user goes next
type LoginResult struct {
	AuthResult
	Destination identity.LoginDestination
}

// Mismatch returns the authorization mismatch error when the chosen role
// does not fit the account. The session is established either way.
func (r *LoginResult) Mismatch() error {
	if r.Destination == identity.DestinationRoleMismatch {
		return shared.ErrAuthorizationMismatch
	}
	return nil
}

// FieldErrors maps form fields to their validation messages
type FieldErrors map[string]string

// Error joins the messages in field order
func (f FieldErrors) Error() string {
	fields := make([]string, 0, len(f))
	for field := range f {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	msgs := make([]string, len(fields))
	for i, field := range fields {
		msgs[i] = field + ": " + f[field]
	}
	return strings.Join(msgs, "; ")
}

// validationFailed wraps field errors in a VALIDATION_FAILED domain error
func validationFailed(fields FieldErrors) error {
	return shared.NewDomainErrorWithCause("VALIDATION_FAILED", "Please correct the errors below.", fields)
}
