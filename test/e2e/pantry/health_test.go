package pantry_test

import (
	"testing"

	"github.com/aussiebroadwan/pantry/pkg/pantrysdk"
	"github.com/stretchr/testify/require"
)

// TestHealthEndpoints verifies both probes answer on a fresh container.
func TestHealthEndpoints(t *testing.T) {
	c := setupPantryContainer(t)
	client := pantrysdk.NewSDKClient(c.BaseURL)

	health, err := client.GetLiveness(t.Context())
	assertHealthy(t, health, err)

	health, err = client.GetReadiness(t.Context())
	assertHealthy(t, health, err)
	require.NotNil(t, health.Checks)
	require.Equal(t, "ok", health.Checks.Database)
}
