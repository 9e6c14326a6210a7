//go:build integration

package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWorkflow_InspectThenEnrich extracts observables from text and feeds the
// JSON output back into a route call, the way an analyst chains commands.
func TestWorkflow_InspectThenEnrich(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	stdout, stderr, err := runner.RunWithInput("callback to 8.8.8.8 and cisco.com", "inspect", "-", "--output", "json")
	require.NoError(t, err, stderr)

	var observables []map[string]string
	require.NoError(t, json.Unmarshal([]byte(stdout), &observables))
	require.NotEmpty(t, observables)

	stdout, stderr, err = runner.Run("call", "enrich.deliberate.observables", stdout, "--output", "json")
	require.NoError(t, err, stderr)

	var deliberation map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(stdout), &deliberation))
	assert.Contains(t, deliberation, "data")

	// The verdict command runs the same flow in one step.
	stdout, stderr, err = runner.Run("verdict", "--text", "callback to 8.8.8.8 and cisco.com", "--output", "json")
	require.NoError(t, err, stderr)
	AssertJSONOutput(t, stdout)
}

// TestWorkflow_TokenRefresh forces a new exchange and checks that later
// commands reuse the refreshed token.
func TestWorkflow_TokenRefresh(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	first, stderr, err := runner.Run("token", "--output", "json")
	require.NoError(t, err, stderr)

	refreshed, stderr, err := runner.Run("token", "--refresh", "--output", "json")
	require.NoError(t, err, stderr)

	var before, after map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(first), &before))
	require.NoError(t, json.Unmarshal([]byte(refreshed), &after))
	assert.NotEqual(t, before["access_token"], after["access_token"])

	_, stderr, err = runner.Run("whoami")
	require.NoError(t, err, stderr)
}
