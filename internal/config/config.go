// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration management for quill.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

// =============================================================================
// CONFIG STRUCTURE
// =============================================================================

// Config is the root configuration for quill.
type Config struct {
	// Version of the config schema
	Version string `toml:"version" json:"version"`

	// Ollama holds backend connection settings
	Ollama OllamaConfig `toml:"ollama" json:"ollama"`

	// Session holds conversation engine settings
	Session SessionConfig `toml:"session" json:"session"`

	// UI holds terminal interface settings
	UI UIConfig `toml:"ui" json:"ui"`
}

// OllamaConfig holds backend connection settings.
type OllamaConfig struct {
	// BaseURL is the Ollama server address
	BaseURL string `toml:"base_url" json:"base_url"`

	// DefaultModel is used when the server cannot be reached for a
	// model listing (synthetic fallback) and as the initial selection
	DefaultModel string `toml:"default_model" json:"default_model"`

	// TimeoutSecs bounds non-streaming requests (model listing)
	TimeoutSecs int `toml:"timeout_secs" json:"timeout_secs"`
}

// SessionConfig holds conversation engine settings.
type SessionConfig struct {
	// WorkingDir is the root all tool paths resolve against.
	// Empty means the process working directory at startup.
	WorkingDir string `toml:"working_dir" json:"working_dir"`

	// DisplayCap bounds the visible history; oldest entries are
	// evicted first when the cap is exceeded
	DisplayCap int `toml:"display_cap" json:"display_cap"`

	// InputPollMs is the driver's input poll bound in milliseconds
	InputPollMs int `toml:"input_poll_ms" json:"input_poll_ms"`

	// StreamPollMs is the per-tick stream advance budget in milliseconds
	StreamPollMs int `toml:"stream_poll_ms" json:"stream_poll_ms"`
}

// UIConfig holds terminal interface settings.
type UIConfig struct {
	// Theme selects the color palette ("dark" or "light")
	Theme string `toml:"theme" json:"theme"`

	// WordWrap is the markdown render width for replies
	WordWrap int `toml:"word_wrap" json:"word_wrap"`

	// ShowTitleArt toggles the banner above the chat area
	ShowTitleArt bool `toml:"show_title_art" json:"show_title_art"`
}

// =============================================================================
// DEFAULTS
// =============================================================================

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: "1.0.0",

		Ollama: OllamaConfig{
			BaseURL:      "http://127.0.0.1:11434",
			DefaultModel: "llama2",
			TimeoutSecs:  30,
		},

		Session: SessionConfig{
			WorkingDir:   "",
			DisplayCap:   50,
			InputPollMs:  100,
			StreamPollMs: 10,
		},

		UI: UIConfig{
			Theme:        "dark",
			WordWrap:     80,
			ShowTitleArt: true,
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the quill configuration directory path.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "quill"), nil
}

// ConfigPath returns the path to the TOML config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "quill.toml"), nil
}

// EnsureConfigDir ensures the config directory exists.
func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// =============================================================================
// LOAD / SAVE
// =============================================================================

// Load loads configuration from the config file, falling back to
// defaults when the file is absent. Environment overrides apply last.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML loads configuration from a TOML file into cfg.
func LoadTOML(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// Save writes the configuration to the default config path.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML saves the configuration to a TOML file with owner-only
// permissions.
func SaveTOML(cfg *Config, path string) error {
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	fmt.Fprintln(file, "# quill configuration file")
	fmt.Fprintln(file, "# Generated by quill - edit with care")
	fmt.Fprintln(file, "")

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// =============================================================================
// ENVIRONMENT OVERRIDES
// =============================================================================

// ApplyEnvOverrides applies QUILL_* environment variables over the
// loaded values. Command-line flags are applied later by the CLI layer
// and take precedence over both.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("QUILL_OLLAMA_URL"); v != "" {
		c.Ollama.BaseURL = v
	}
	if v := os.Getenv("QUILL_MODEL"); v != "" {
		c.Ollama.DefaultModel = v
	}
	if v := os.Getenv("QUILL_WORKDIR"); v != "" {
		c.Session.WorkingDir = v
	}
	if v := os.Getenv("QUILL_THEME"); v != "" {
		c.UI.Theme = v
	}
}

// =============================================================================
// DEFAULT FILLING AND VALIDATION
// =============================================================================

// SetDefaults fills zero values with usable defaults.
// Unlike Validate it never fails; it clamps instead.
func (c *Config) SetDefaults() {
	def := Default()

	if c.Version == "" {
		c.Version = def.Version
	}
	if c.Ollama.BaseURL == "" {
		c.Ollama.BaseURL = def.Ollama.BaseURL
	}
	if c.Ollama.DefaultModel == "" {
		c.Ollama.DefaultModel = def.Ollama.DefaultModel
	}
	if c.Ollama.TimeoutSecs <= 0 {
		c.Ollama.TimeoutSecs = def.Ollama.TimeoutSecs
	}
	if c.Session.DisplayCap <= 0 {
		c.Session.DisplayCap = def.Session.DisplayCap
	}
	if c.Session.InputPollMs <= 0 {
		c.Session.InputPollMs = def.Session.InputPollMs
	}
	if c.Session.StreamPollMs <= 0 {
		c.Session.StreamPollMs = def.Session.StreamPollMs
	}
	if c.UI.WordWrap <= 0 {
		c.UI.WordWrap = def.UI.WordWrap
	}
	if c.UI.Theme == "" {
		c.UI.Theme = def.UI.Theme
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate validates the configuration and returns any errors.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if !strings.HasPrefix(c.Ollama.BaseURL, "http://") && !strings.HasPrefix(c.Ollama.BaseURL, "https://") {
		errs = append(errs, ValidationError{
			Field:   "ollama.base_url",
			Message: fmt.Sprintf("invalid URL '%s', must start with http:// or https://", c.Ollama.BaseURL),
		})
	}

	if c.Session.DisplayCap < 1 || c.Session.DisplayCap > 10000 {
		errs = append(errs, ValidationError{
			Field:   "session.display_cap",
			Message: "must be between 1 and 10000",
		})
	}

	if c.Session.StreamPollMs > c.Session.InputPollMs {
		errs = append(errs, ValidationError{
			Field:   "session.stream_poll_ms",
			Message: "stream poll bound must not exceed the input poll bound",
		})
	}

	validThemes := map[string]bool{"dark": true, "light": true}
	if !validThemes[strings.ToLower(c.UI.Theme)] {
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: dark, light", c.UI.Theme),
		})
	}

	if c.Session.WorkingDir != "" {
		if info, err := os.Stat(c.Session.WorkingDir); err != nil || !info.IsDir() {
			errs = append(errs, ValidationError{
				Field:   "session.working_dir",
				Message: fmt.Sprintf("'%s' is not an accessible directory", c.Session.WorkingDir),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// DERIVED ACCESSORS
// =============================================================================

// RequestTimeout returns the non-streaming request timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Ollama.TimeoutSecs) * time.Second
}

// InputPoll returns the driver's input poll bound.
func (c *Config) InputPoll() time.Duration {
	return time.Duration(c.Session.InputPollMs) * time.Millisecond
}

// StreamPoll returns the per-tick stream advance budget.
func (c *Config) StreamPoll() time.Duration {
	return time.Duration(c.Session.StreamPollMs) * time.Millisecond
}

// ResolveWorkingDir returns the absolute tool-path root: the configured
// directory when set, otherwise the process working directory.
func (c *Config) ResolveWorkingDir() string {
	dir := c.Session.WorkingDir
	if dir == "" {
		if cwd, err := os.Getwd(); err == nil {
			dir = cwd
		} else {
			dir = "."
		}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}

// =============================================================================
// GLOBAL CONFIG INSTANCE
// =============================================================================

var (
	globalConfig     *Config
	globalConfigOnce sync.Once
	globalConfigMu   sync.RWMutex
)

// Global returns the global configuration instance.
// Loads configuration on first access. Thread-safe.
func Global() *Config {
	globalConfigOnce.Do(func() {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
			cfg = Default()
		}
		globalConfig = cfg
	})

	globalConfigMu.RLock()
	defer globalConfigMu.RUnlock()
	return globalConfig
}

// ReloadGlobal reloads the global configuration from disk. Thread-safe.
func ReloadGlobal() error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
	return nil
}

// SetGlobal sets the global configuration instance. Thread-safe.
// Consumes the load-once guard so a later Global() cannot clobber the
// explicitly set value.
func SetGlobal(cfg *Config) {
	globalConfigOnce.Do(func() {})
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = cfg
}

// ResetGlobalForTesting resets the global config state for testing.
// This should only be used in tests to reset state between test runs.
func ResetGlobalForTesting() {
	globalConfigMu.Lock()
	defer globalConfigMu.Unlock()
	globalConfig = nil
	globalConfigOnce = sync.Once{}
}
