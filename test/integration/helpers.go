//go:build integration

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Region       string
	ClientID     string
	ClientSecret string
	CtrPath      string
	Verbose      bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		Region:       os.Getenv("CTR_REGION"),
		ClientID:     os.Getenv("CTR_CLIENT_ID"),
		ClientSecret: os.Getenv("CTR_CLIENT_SECRET"),
		CtrPath:      getCtrPath(),
		Verbose:      os.Getenv("CTR_TEST_VERBOSE") == "true",
	}
}

// getCtrPath determines the path to the ctr binary
func getCtrPath() string {
	if path := os.Getenv("CTR_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../ctr",
		"./ctr",
		"../ctr",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "ctr"
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.ClientID == "" || config.ClientSecret == "" {
		t.Skip("CTR_CLIENT_ID or CTR_CLIENT_SECRET not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.CtrPath); err != nil {
		t.Skipf("ctr binary not found at %s, skipping integration test", config.CtrPath)
	}
}

// CommandRunner provides utilities for running ctr commands
type CommandRunner struct {
	config     *TestConfig
	configFile string
	t          *testing.T
}

// NewCommandRunner creates a command runner with its own config file, so the
// tests never touch ~/.ctr.
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:     config,
		configFile: filepath.Join(t.TempDir(), "config.yml"),
		t:          t,
	}
}

// Run executes a ctr command and returns output
func (runner *CommandRunner) Run(args ...string) (string, string, error) {
	return runner.RunWithInput("", args...)
}

// RunWithInput executes a ctr command with stdin input
func (runner *CommandRunner) RunWithInput(input string, args ...string) (string, string, error) {
	args = append([]string{"--config", runner.configFile}, args...)

	// #nosec G204 -- the binary path comes from the test environment
	cmd := exec.Command(runner.config.CtrPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	cmd.Stdin = strings.NewReader(input)

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.CtrPath, strings.Join(args, " "))
	}

	err := cmd.Run()
	stdout := stdoutBuf.String()
	stderr := stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	output = strings.TrimSpace(output)
	if !strings.HasPrefix(output, "{") && !strings.HasPrefix(output, "[") {
		t.Errorf("Output does not appear to be JSON: %s", output)
	}
}

// AssertYAMLOutput verifies command output is valid YAML
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	output = strings.TrimSpace(output)
	if strings.Contains(output, "---") || strings.Contains(output, ":") {
		return
	}

	t.Errorf("Output does not appear to be YAML: %s", output)
}
