package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	s := newServices(t)

	u, err := s.users.CreateUser(t.Context(), "  Test4@example.COM ", "Test User", "test123")
	require.NoError(t, err)
	require.Equal(t, "Test4@example.com", u.Email)
	require.Equal(t, "Test4@example.com", u.String())
	require.True(t, u.IsActive)
	require.False(t, u.IsStaff)
	require.False(t, u.IsSuperuser)
	require.Nil(t, u.LastLogin)
	require.NotContains(t, u.PasswordHash, "test123")

	require.True(t, s.users.CheckPassword(u, "test123"))
	require.False(t, s.users.CheckPassword(u, "test124"))
}

func TestCreateUser_Validation(t *testing.T) {
	s := newServices(t)
	s.mustUser(t, "taken@example.com")

	tests := []struct {
		name     string
		email    string
		userName string
		password string
		field    string
	}{
		{"empty email", "", "Test", "test123", "email"},
		{"whitespace email", "   ", "Test", "test123", "email"},
		{"malformed email", "not-an-email", "Test", "test123", "email"},
		{"blank name", "a@example.com", " ", "test123", "name"},
		{"short password", "a@example.com", "Test", "test", "password"},
		{"long password", "a@example.com", "Test", strings.Repeat("x", 129), "password"},
		{"duplicate email", "taken@example.com", "Test", "test123", "email"},
		{"duplicate email different domain case", "taken@EXAMPLE.com", "Test", "test123", "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.users.CreateUser(t.Context(), tt.email, tt.userName, tt.password)
			requireFieldError(t, err, tt.field)
		})
	}

	users, err := s.admin.ListUsers(t.Context())
	require.NoError(t, err)
	require.Len(t, users, 1, "failed creations must not persist anything")
}

func TestCreateSuperuser(t *testing.T) {
	s := newServices(t)

	u, err := s.users.CreateSuperuser(t.Context(), "admin@Example.com", "Admin", "adminpass")
	require.NoError(t, err)
	require.Equal(t, "admin@example.com", u.Email)
	require.True(t, u.IsStaff)
	require.True(t, u.IsSuperuser)
	require.True(t, u.IsActive)
}

func TestUpdateProfile(t *testing.T) {
	s := newServices(t)
	u := s.mustUser(t, "me@example.com")

	t.Run("partial name and password", func(t *testing.T) {
		got, err := s.users.UpdateProfile(t.Context(), u.ID, ProfileUpdate{
			Name:     ptr("Admin updated"),
			Password: ptr("password updated"),
		}, true)
		require.NoError(t, err)
		require.Equal(t, "Admin updated", got.Name)
		require.Equal(t, "me@example.com", got.Email)
		require.True(t, s.users.CheckPassword(got, "password updated"))
	})

	t.Run("partial leaves password alone", func(t *testing.T) {
		got, err := s.users.UpdateProfile(t.Context(), u.ID, ProfileUpdate{Name: ptr("Only name")}, true)
		require.NoError(t, err)
		require.True(t, s.users.CheckPassword(got, "password updated"))
	})

	t.Run("full update requires all fields", func(t *testing.T) {
		_, err := s.users.UpdateProfile(t.Context(), u.ID, ProfileUpdate{Name: ptr("x")}, false)
		requireFieldError(t, err, "email")
		requireFieldError(t, err, "password")
	})

	t.Run("email normalized and unique", func(t *testing.T) {
		s.mustUser(t, "other@example.com")

		_, err := s.users.UpdateProfile(t.Context(), u.ID, ProfileUpdate{Email: ptr("other@EXAMPLE.com")}, true)
		requireFieldError(t, err, "email")

		got, err := s.users.UpdateProfile(t.Context(), u.ID, ProfileUpdate{Email: ptr("New@Example.COM")}, true)
		require.NoError(t, err)
		require.Equal(t, "New@example.com", got.Email)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := s.users.UpdateProfile(t.Context(), "missing", ProfileUpdate{Name: ptr("x")}, true)
		require.ErrorIs(t, err, ErrNotFound)
	})
}
