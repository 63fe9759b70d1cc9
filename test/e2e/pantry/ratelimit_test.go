package pantry_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/pantry/pkg/pantrysdk"
	"github.com/stretchr/testify/require"
)

// TestLoginRateLimit verifies repeated logins for one email are throttled
// with the default strict profile.
func TestLoginRateLimit(t *testing.T) {
	c := setupPantryContainerWithDefaultRateLimits(t)
	client := pantrysdk.NewSDKClient(c.BaseURL)
	ctx := t.Context()

	var limited bool
	for i := 0; i < 20; i++ {
		_, err := client.Login(ctx, "nobody@example.com", "wrong-password")
		var apiErr *pantrysdk.APIError
		require.True(t, errors.As(err, &apiErr), "unexpected error: %v", err)
		if apiErr.StatusCode == http.StatusTooManyRequests {
			limited = true
			require.Equal(t, pantrysdk.ErrorCodeRateLimitExceeded, apiErr.Code)
			break
		}
		require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	}
	require.True(t, limited, "login should be rate limited")
}
