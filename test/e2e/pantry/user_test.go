package pantry_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/pantry/pkg/pantrysdk"
	"github.com/stretchr/testify/require"
)

// TestUserLifecycle registers, logs in, edits the profile and logs out.
func TestUserLifecycle(t *testing.T) {
	c := setupPantryContainer(t)
	client := pantrysdk.NewSDKClient(c.BaseURL)
	ctx := t.Context()

	created, err := client.CreateUser(ctx, pantrysdk.CreateUserRequest{
		Email:    "Cook@EXAMPLE.com",
		Name:     "Cook",
		Password: userPassword,
	})
	require.NoError(t, err)
	require.Equal(t, "Cook@example.com", created.Email)

	_, err = client.CreateUser(ctx, pantrysdk.CreateUserRequest{
		Email:    "Cook@example.com",
		Name:     "Again",
		Password: userPassword,
	})
	assertStatus(t, err, http.StatusBadRequest, "duplicate email")

	_, err = client.Login(ctx, "Cook@example.com", "wrong-password")
	assertStatus(t, err, http.StatusBadRequest, "wrong password")

	session, err := client.Login(ctx, "Cook@example.com", userPassword)
	require.NoError(t, err)

	me, err := session.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, &pantrysdk.UserResponse{Email: "Cook@example.com", Name: "Cook"}, me)

	me, err = session.UpdateMe(ctx, pantrysdk.UpdateMeRequest{Name: ptr("Head Cook")})
	require.NoError(t, err)
	require.Equal(t, "Head Cook", me.Name)

	require.NoError(t, session.Logout(ctx))

	_, err = session.Me(ctx)
	assertStatus(t, err, http.StatusUnauthorized, "revoked token")

	_, err = client.NewSession("").Me(ctx)
	assertStatus(t, err, http.StatusUnauthorized, "no token")
}
