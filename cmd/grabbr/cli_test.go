package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/grabbr/cmd/grabbr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allCommands = []string{"extract", "batch", "save", "decks", "show", "delete", "serve"}

func newTestMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "test.db")
	m.ConfigPath = filepath.Join(t.TempDir(), "missing.yaml")
	return m
}

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range allCommands {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("help shows kong output", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := newTestMain(t).Run(context.Background(), []string{"--help"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)

		helpOutput := stdout.String()
		for _, cmd := range allCommands {
			assert.Contains(t, helpOutput, cmd)
		}
		assert.Contains(t, helpOutput, "Usage:")
		assert.Contains(t, helpOutput, "Flags:")
	})

	t.Run("no arguments is an error", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := newTestMain(t).Run(context.Background(), nil, stdout, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout.String(), "Usage:")
	})

	t.Run("decks on empty library", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}
		err := newTestMain(t).Run(context.Background(), []string{"decks"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No decks found")
	})

	t.Run("delete of missing deck", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		err := newTestMain(t).Run(context.Background(), []string{"delete", "biology", "--force"}, &bytes.Buffer{}, stderr)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), `deck "biology" not found`)
	})

	t.Run("extracts a local file as json", func(t *testing.T) {
		t.Parallel()

		page := filepath.Join(t.TempDir(), "quiz.html")
		require.NoError(t, os.WriteFile(page, []byte(`<html><body>
			<h2>Which planet is largest?</h2>
			<ul><li>Mars</li><li>Jupiter</li></ul>
		</body></html>`), 0644))

		stdout := &bytes.Buffer{}
		err := newTestMain(t).Run(context.Background(), []string{"extract", page, "--format", "json"}, stdout, &bytes.Buffer{})
		require.NoError(t, err)
		assert.True(t, json.Valid(stdout.Bytes()), "output should be JSON: %s", stdout.String())
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		t.Parallel()

		page := filepath.Join(t.TempDir(), "page.html")
		require.NoError(t, os.WriteFile(page, []byte(`<html><body><p>Hi</p></body></html>`), 0644))

		stderr := &bytes.Buffer{}
		err := newTestMain(t).Run(context.Background(), []string{"extract", page, "--mode", "bogus"}, &bytes.Buffer{}, stderr)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "unknown mode")
	})

	t.Run("invalid config file", func(t *testing.T) {
		t.Parallel()

		cfg := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(cfg, []byte("mode: sideways\n"), 0644))

		err := newTestMain(t).Run(context.Background(), []string{"--config", cfg, "decks"}, &bytes.Buffer{}, &bytes.Buffer{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sideways")
	})
}
