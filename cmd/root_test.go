package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/josephlewis42/techshell/core/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eventsFixture = "../core/logger/testdata/events.jsonl"

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Cleanup(func() {
		cfgPath = ""
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestBuiltinsCmd(t *testing.T) {
	out, err := runCommand(t, "builtins")

	require.NoError(t, err)
	assert.Equal(t, "cd\nexit\nhelp\nhistory\n", out)
}

func TestRootCmd_rejectsArgs(t *testing.T) {
	_, err := runCommand(t, "script.sh")

	assert.Error(t, err)
}

func TestInitCmd(t *testing.T) {
	dir := t.TempDir()

	out, err := runCommand(t, "--config", dir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "writing")
	assert.FileExists(t, filepath.Join(dir, config.ConfigurationName))

	out, err = runCommand(t, "--config", dir, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
}

func TestEventsCmd(t *testing.T) {
	t.Run("bugs from file", func(t *testing.T) {
		out, err := runCommand(t, "events", "bugs", eventsFixture)

		require.NoError(t, err)
		assert.Contains(t, out, "log_entries: 12")
		assert.Contains(t, out, "command: nope")
	})

	t.Run("report from app log", func(t *testing.T) {
		dir := t.TempDir()
		fixture, err := os.ReadFile(eventsFixture)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "events.log"), fixture, 0600))
		require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigurationName), []byte("app_log: events.log\n"), 0600))

		out, err := runCommand(t, "--config", dir, "events", "report")

		require.NoError(t, err)
		assert.Contains(t, out, "log_entries: 12")
	})

	t.Run("app log disabled", func(t *testing.T) {
		_, err := runCommand(t, "--config", t.TempDir(), "events", "sessions")

		assert.ErrorIs(t, err, config.ErrAppLogDisabled)
	})
}
