package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves the test into a fresh directory so no stray .env or
// config.json is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })
	return dir
}

func TestParseArgs_Defaults(t *testing.T) {
	chdir(t)

	opts, err := ParseArgs(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, opts.BaseURL)
	assert.Equal(t, Duration(DefaultTimeout), opts.Timeout)
	assert.Equal(t, DefaultTokenFile, opts.TokenFile)
	assert.Equal(t, DefaultLogLevel, opts.LogLevel)
	assert.Empty(t, opts.TokenDSN)
	assert.Zero(t, opts.RPS)
	assert.Zero(t, opts.ReconcileInterval)
}

func TestParseArgs_Flags(t *testing.T) {
	chdir(t)

	opts, err := ParseArgs([]string{
		"-url", "https://api.example.com/six-cities",
		"-timeout", "2s",
		"-token-file", "tok.json",
		"-rps", "3.5",
		"-reconcile", "1m",
		"-demo",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/six-cities", opts.BaseURL)
	assert.Equal(t, Duration(2*time.Second), opts.Timeout)
	assert.Equal(t, "tok.json", opts.TokenFile)
	assert.Equal(t, 3.5, opts.RPS)
	assert.Equal(t, Duration(time.Minute), opts.ReconcileInterval)
	assert.True(t, opts.Demo)
}

func TestParseArgs_ConfigFileThenEnv(t *testing.T) {
	dir := chdir(t)

	cfgPath := filepath.Join(dir, "client.json")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`{
		"base_url": "http://from-file",
		"timeout": "7s",
		"log_level": "debug",
		"reconcile_interval": 30000000000
	}`), 0600))

	t.Setenv("LOG_LEVEL", "error")

	opts, err := ParseArgs([]string{"-c", cfgPath, "-url", "http://from-flag"})
	require.NoError(t, err)

	// file overrides flags, env overrides file
	assert.Equal(t, "http://from-file", opts.BaseURL)
	assert.Equal(t, Duration(7*time.Second), opts.Timeout)
	assert.Equal(t, Duration(30*time.Second), opts.ReconcileInterval)
	assert.Equal(t, "error", opts.LogLevel)
}

func TestParseArgs_DotEnv(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TOKEN_FILE=from-dotenv.json\n"), 0600))
	t.Cleanup(func() { _ = os.Unsetenv("TOKEN_FILE") })

	opts, err := ParseArgs(nil)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.json", opts.TokenFile)
}

func TestParseArgs_Errors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		env  map[string]string
		file string
	}{
		{name: "unknown flag", args: []string{"-nope"}},
		{name: "bad timeout env", env: map[string]string{"API_TIMEOUT": "soon"}},
		{name: "bad rps env", env: map[string]string{"API_RPS": "many"}},
		{name: "bad config json", file: `{"timeout": true}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dir := chdir(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			args := tc.args
			if tc.file != "" {
				p := filepath.Join(dir, "bad.json")
				require.NoError(t, os.WriteFile(p, []byte(tc.file), 0600))
				args = append(args, "-c", p)
			}
			_, err := ParseArgs(args)
			assert.Error(t, err)
		})
	}
}
