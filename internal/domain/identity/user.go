package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/fliamecomm/storefront/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the cost used when hashing passwords
var BcryptCost = 12

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_@+.\-]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// User is a storefront account. Staff users can manage the catalog.
type User struct {
	shared.BaseAggregateRoot
	Username     string
	Email        string
	PasswordHash string
	IsStaff      bool
	IsActive     bool
	LastLoginAt  *time.Time
}

// NewUser creates a new active, non-staff user
func NewUser(username, email, password string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if email != "" {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainErrorWithCause("PASSWORD_HASH_ERROR", "Failed to hash password", err)
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Username:          username,
		Email:             email,
		PasswordHash:      hash,
		IsActive:          true,
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// NewStaffUser creates a user with catalog-management rights
func NewStaffUser(username, email, password string) (*User, error) {
	user, err := NewUser(username, email, password)
	if err != nil {
		return nil, err
	}
	user.IsStaff = true
	return user, nil
}

// VerifyPassword checks a plain password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// SetPassword replaces the password hash
func (u *User) SetPassword(password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return shared.NewDomainErrorWithCause("PASSWORD_HASH_ERROR", "Failed to hash password", err)
	}
	u.PasswordHash = hash
	u.Touch()
	return nil
}

// CanLogin reports whether the account may sign in
func (u *User) CanLogin() bool {
	return u.IsActive
}

// RecordLogin stamps the last login time
func (u *User) RecordLogin(at time.Time) {
	u.LastLoginAt = &at
	u.Touch()
}

// Deactivate disables the account
func (u *User) Deactivate() {
	u.IsActive = false
	u.Touch()
}

// Identity returns the per-request identity for this user
func (u *User) Identity() Identity {
	return NewUserIdentity(u.ID, u.Username, u.IsStaff)
}

func validateUsername(username string) error {
	if username == "" {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot be empty")
	}
	if len(username) < 3 {
		return shared.NewDomainError("INVALID_USERNAME", "Username must be at least 3 characters")
	}
	if len(username) > 150 {
		return shared.NewDomainError("INVALID_USERNAME", "Username cannot exceed 150 characters")
	}
	if !usernamePattern.MatchString(username) {
		return shared.NewDomainError("INVALID_USERNAME", "Username may contain only letters, digits and @/./+/-/_")
	}
	return nil
}

func validatePassword(password string) error {
	if password == "" {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot be empty")
	}
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 128 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 254 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 254 characters")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
