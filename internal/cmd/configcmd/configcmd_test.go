package configcmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/confluence-markdown/internal/config"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	cfg := &config.Config{}
	cfg.SetProfile("default", config.Profile{
		BaseURL: "https://confluence.example.com",
		Token:   "secret-token-value",
	})
	cfg.SetProfile("work", config.Profile{
		BaseURL:  "https://work.example.com",
		Username: "alice",
		Password: "hunter2",
	})
	require.NoError(t, cfg.Save(config.DefaultConfigPath()))
	return config.DefaultConfigPath()
}

func TestRunList(t *testing.T) {
	writeTestConfig(t)
	require.NoError(t, runList("", true))
}

func TestRunList_NoConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, runList("", true))
}

func TestRunShow(t *testing.T) {
	writeTestConfig(t)
	require.NoError(t, runShow("default", true))
	require.NoError(t, runShow("work", true))
}

func TestRunShow_MissingProfile(t *testing.T) {
	writeTestConfig(t)
	// Showing an unknown profile renders empty fields rather than failing.
	require.NoError(t, runShow("missing", true))
}

func TestRunDelete_Force(t *testing.T) {
	path := writeTestConfig(t)

	require.NoError(t, runDelete("work", true, "", true))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, cfg.ProfileNames())
}

func TestRunDelete_MissingProfile(t *testing.T) {
	writeTestConfig(t)

	err := runDelete("missing", true, "", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRunDelete_NoConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	err := runDelete("default", true, "", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}
