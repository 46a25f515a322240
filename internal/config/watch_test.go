// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReloadsGlobalOnChange(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	path, err := ConfigPath()
	require.NoError(t, err)

	cfg := Default()
	cfg.UI.Theme = "dark"
	require.NoError(t, SaveTOML(cfg, path))
	require.Equal(t, "dark", Global().UI.Theme)

	var reloaded []*Config
	w, err := NewWatcher(50*time.Millisecond, func(c *Config) {
		reloaded = append(reloaded, c)
	})
	require.NoError(t, err)
	require.NoError(t, w.Watch())
	defer w.Close()

	cfg.UI.Theme = "light"
	require.NoError(t, SaveTOML(cfg, path))

	assert.Eventually(t, func() bool {
		return Global().UI.Theme == "light"
	}, 3*time.Second, 20*time.Millisecond, "watcher should reload the changed config")

	assert.Eventually(t, func() bool {
		return len(reloaded) >= 1
	}, time.Second, 20*time.Millisecond, "onReload callback should fire")
}

func TestWatcherKeepsStaleConfigOnParseFailure(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	path, err := ConfigPath()
	require.NoError(t, err)

	cfg := Default()
	cfg.Ollama.DefaultModel = "llama2"
	require.NoError(t, SaveTOML(cfg, path))
	require.Equal(t, "llama2", Global().Ollama.DefaultModel)

	w, err := NewWatcher(50*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, w.Watch())
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("ollama = {{{ not toml"), 0o600))

	// Give the debounce window time to pass; the broken file must not
	// replace the working config.
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, "llama2", Global().Ollama.DefaultModel)
}

func TestWatcherCloseStopsGoroutines(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	ResetGlobalForTesting()
	t.Cleanup(ResetGlobalForTesting)

	path, err := ConfigPath()
	require.NoError(t, err)
	require.NoError(t, SaveTOML(Default(), path))

	w, err := NewWatcher(50*time.Millisecond, nil)
	require.NoError(t, err)
	require.NoError(t, w.Watch())
	require.NoError(t, w.Close())
}
