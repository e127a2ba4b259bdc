package users_test

import (
	"encoding/json"
	"testing"

	"github.com/jrsteele09/quickserve-session/users"
	"github.com/stretchr/testify/require"
)

func TestUser_Accessors(t *testing.T) {
	var u users.User
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 7,
		"fullName": "Asha Rao",
		"email": "asha@example.com",
		"phone": "9876543210",
		"role": "SERVICE_PROVIDER",
		"providerId": 3,
		"customerId": null,
		"rating": 4.5
	}`), &u))

	require.Equal(t, "asha@example.com", u.Email())
	require.Equal(t, "Asha Rao", u.FullName())
	require.Equal(t, "9876543210", u.Phone())
	require.Equal(t, users.RoleServiceProvider, u.Role())

	id, ok := u.ID()
	require.True(t, ok)
	require.Equal(t, int64(7), id)

	pid, ok := u.ProviderID()
	require.True(t, ok)
	require.Equal(t, int64(3), pid)

	_, ok = u.CustomerID()
	require.False(t, ok)

	require.Equal(t, 4.5, u["rating"], "unknown fields are preserved")
}

func TestUser_NilIsSafe(t *testing.T) {
	var u users.User
	require.Equal(t, "", u.Email())
	require.False(t, u.HasRole(users.RoleAdmin))
	require.Nil(t, u.Clone())
}

func TestUser_Merge(t *testing.T) {
	t.Run("overlay", func(t *testing.T) {
		u := users.User{"email": "a@b.com"}
		merged := u.Merge(users.User{"phone": "123"})
		require.Equal(t, users.User{"email": "a@b.com", "phone": "123"}, merged)
		require.NotContains(t, u, "phone")
	})

	t.Run("into nil", func(t *testing.T) {
		var u users.User
		require.Equal(t, users.User{"phone": "123"}, u.Merge(users.User{"phone": "123"}))
	})
}

func TestUser_HasRole(t *testing.T) {
	admin := users.User{"email": "root@example.com", "role": "ADMIN"}
	require.True(t, admin.IsAdmin())
	require.True(t, admin.HasRole(users.RoleCustomer, users.RoleAdmin))
	require.False(t, admin.IsServiceProvider())
	require.True(t, users.RoleAdmin.Valid())
	require.False(t, users.RoleType("GUEST").Valid())
}

func TestPasswordHash(t *testing.T) {
	hash, err := users.HashPassword("password123")
	require.NoError(t, err)
	require.True(t, users.CheckPasswordHash("password123", hash))
	require.False(t, users.CheckPasswordHash("wrong", hash))
}
