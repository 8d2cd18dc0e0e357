package identity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	BcryptCost = bcrypt.MinCost
	m.Run()
}

func TestNewUser(t *testing.T) {
	t.Run("creates active non-staff user", func(t *testing.T) {
		user, err := NewUser("alice", "alice@example.com", "s3cretpass")
		require.NoError(t, err)

		assert.Equal(t, "alice", user.Username)
		assert.True(t, user.IsActive)
		assert.False(t, user.IsStaff)
		assert.NotEqual(t, "s3cretpass", user.PasswordHash)
		assert.True(t, user.VerifyPassword("s3cretpass"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("publishes UserRegistered event", func(t *testing.T) {
		user, err := NewUser("bob", "", "password123")
		require.NoError(t, err)

		events := user.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeUserRegistered, events[0].EventType())
	})

	t.Run("rejects short username", func(t *testing.T) {
		_, err := NewUser("ab", "", "password123")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 3")
	})

	t.Run("rejects bad characters in username", func(t *testing.T) {
		_, err := NewUser("bad name", "", "password123")
		require.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("carol", "", "short")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8")
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		_, err := NewUser("dave", "not-an-email", "password123")
		require.Error(t, err)
	})
}

func TestNewStaffUser(t *testing.T) {
	user, err := NewStaffUser("admin", "", "password123")
	require.NoError(t, err)
	assert.True(t, user.IsStaff)
	assert.True(t, user.Identity().IsStaff())
}

func TestIdentity(t *testing.T) {
	assert.False(t, Anonymous.IsAuthenticated())
	assert.False(t, Anonymous.IsStaff())
	assert.Equal(t, uuid.Nil, Anonymous.UserID())

	id := uuid.New()
	user := NewUserIdentity(id, "alice", false)
	assert.True(t, user.IsAuthenticated())
	assert.False(t, user.IsStaff())
	assert.Equal(t, id, user.UserID())
	assert.Equal(t, "alice", user.Username())

	assert.True(t, NewUserIdentity(id, "root", true).IsStaff())
}

func TestShowRegister(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		expected := hour >= 8 && hour <= 20
		assert.Equal(t, expected, ShowRegister(hour), "hour %d", hour)
	}
}

func TestResolveLoginDestination(t *testing.T) {
	tests := []struct {
		name    string
		role    LoginRole
		isStaff bool
		want    LoginDestination
	}{
		{"staff as admin", LoginRoleAdmin, true, DestinationAdminDashboard},
		{"non-staff as admin", LoginRoleAdmin, false, DestinationRoleMismatch},
		{"non-staff as user", LoginRoleUser, false, DestinationHome},
		{"staff as user", LoginRoleUser, true, DestinationHome},
		{"unknown role", LoginRole("owner"), true, DestinationRoleMismatch},
		{"empty role", LoginRole(""), false, DestinationRoleMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLoginDestination(tt.role, tt.isStaff))
		})
	}
}

func TestParseLoginRole(t *testing.T) {
	assert.Equal(t, LoginRoleAdmin, ParseLoginRole(" Admin "))
	assert.Equal(t, LoginRoleUser, ParseLoginRole("user"))
}
