package pantry_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/pantry/pkg/pantrysdk"
	"github.com/stretchr/testify/require"
)

// TestAdminConsole creates a superuser with the CLI and manages accounts.
func TestAdminConsole(t *testing.T) {
	c := setupPantryContainer(t)
	c.createSuperuser(t)

	client := pantrysdk.NewSDKClient(c.BaseURL)
	ctx := t.Context()

	admin, err := client.Login(ctx, adminEmail, adminPassword)
	require.NoError(t, err)

	cook := registerAndLogin(t, client, "cook@example.com")
	_, err = cook.AdminListUsers(ctx)
	assertStatus(t, err, http.StatusForbidden, "non-staff admin access")

	users, err := admin.AdminListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users.Users, 2)

	var cookID string
	for _, u := range users.Users {
		if u.Email == "cook@example.com" {
			cookID = u.ID
		}
	}
	require.NotEmpty(t, cookID)

	updated, err := admin.AdminUpdateUser(ctx, cookID, pantrysdk.AdminUpdateUserRequest{IsActive: ptr(false)})
	require.NoError(t, err)
	require.False(t, updated.IsActive)

	_, err = cook.Me(ctx)
	assertStatus(t, err, http.StatusUnauthorized, "deactivated account")

	require.NoError(t, admin.AdminDeleteUser(ctx, cookID))
	_, err = admin.AdminGetUser(ctx, cookID)
	assertStatus(t, err, http.StatusNotFound, "deleted account")
}
