// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for communicating with the Ollama API.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the Ollama client.
type ClientError struct {
	Type       ErrorType
	Message    string
	StatusCode int // HTTP status for ErrTypeRequestFailed, 0 otherwise
	Cause      error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota

	// ErrTypeNotRunning: the server is unreachable. Callers recover by
	// falling back to a synthetic default model instead of aborting.
	ErrTypeNotRunning

	// ErrTypeRequestFailed: the stream handshake returned a non-2xx
	// status before any fragment was produced.
	ErrTypeRequestFailed

	// ErrTypeStreamInterrupted: the fragment source failed mid-stream.
	// The turn finalizes with whatever text accumulated.
	ErrTypeStreamInterrupted

	ErrTypeTimeout
	ErrTypeConnection
	ErrTypeInvalidResponse
)

// Sentinel errors for easy checking.
var (
	ErrNotRunning = &ClientError{Type: ErrTypeNotRunning, Message: "Ollama is not running"}
	ErrTimeout    = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsNotRunning reports whether err indicates an unreachable server.
func IsNotRunning(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeNotRunning
}

// IsRequestFailed reports whether err is a failed stream handshake.
func IsRequestFailed(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeRequestFailed
}

// IsStreamInterrupted reports whether err is a mid-stream failure.
func IsStreamInterrupted(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeStreamInterrupted
}

// IsTimeout reports whether err is a timeout.
func IsTimeout(err error) bool {
	var ce *ClientError
	return errors.As(err, &ce) && ce.Type == ErrTypeTimeout
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the Ollama client.
type ClientConfig struct {
	// BaseURL is the Ollama API base URL (default: http://127.0.0.1:11434)
	// Note: Uses explicit IPv4 address instead of localhost to avoid IPv6
	// resolution issues on Windows
	BaseURL string

	// Timeout for non-streaming requests (default: 30s)
	Timeout time.Duration

	// DefaultModel names the synthetic fallback used when the server
	// cannot be reached for a model listing (default: "llama2")
	DefaultModel string
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:      "http://127.0.0.1:11434",
		Timeout:      30 * time.Second,
		DefaultModel: "llama2",
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the Ollama API.
// It provides methods for health checks, model listing, and streaming chat.
//
// The Client is thread-safe for concurrent use.
//
// Example:
//
//	client := ollama.NewClient()
//	models, _ := client.ListModelsWithFallback(ctx)
//	stream, err := client.OpenChatStream(ctx, models[0].Name, transcript)
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
}

// NewClient creates a new Ollama client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new Ollama client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:11434"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.DefaultModel == "" {
		config.DefaultModel = "llama2"
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
	}
}

// BaseURL returns the configured server address.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// =============================================================================
// HEALTH CHECK
// =============================================================================

// CheckRunning verifies that Ollama is reachable and running.
func (c *Client) CheckRunning(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL, nil)
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrTimeout
		}
		return ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ClientError{
			Type:    ErrTypeConnection,
			Message: "unexpected status from Ollama: " + resp.Status,
		}
	}

	return nil
}

// =============================================================================
// MODEL OPERATIONS
// =============================================================================

// ListModels retrieves all available models from Ollama.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+"/api/tags", nil)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ErrNotRunning
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ClientError{
			Type:    ErrTypeInvalidResponse,
			Message: "failed to list models: " + resp.Status,
		}
	}

	var result ListModelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return result.Models, nil
}

// ListModelsWithFallback lists models, substituting a single synthetic
// default model when the server is unreachable so a session can start
// offline. The second return value reports whether the fallback was used.
func (c *Client) ListModelsWithFallback(ctx context.Context) ([]ModelInfo, bool) {
	models, err := c.ListModels(ctx)
	if err != nil || len(models) == 0 {
		return []ModelInfo{{
			Name:       c.config.DefaultModel,
			ModifiedAt: time.Now().UTC(),
			Size:       0,
		}}, true
	}
	return models, false
}

// =============================================================================
// STREAMING CHAT
// =============================================================================

// OpenChatStream opens a streaming chat request and returns the fragment
// source once the handshake succeeds. The handshake blocks until the
// server accepts or rejects the request; a non-2xx status is returned as
// an ErrTypeRequestFailed ClientError carrying the HTTP status code.
//
// The returned Stream must be Closed (or fully drained) to release the
// connection. Abandoning it after Close is the only cancellation path;
// there is no mid-request cancel operation.
func (c *Client) OpenChatStream(ctx context.Context, model string, messages []Message) (*Stream, error) {
	if model == "" {
		model = c.config.DefaultModel
	}

	reqBody := ChatRequest{
		Model:    model,
		Messages: messages,
		Stream:   true,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	// The request context must outlive this call; closing the stream
	// cancels it. No overall timeout: replies stream indefinitely.
	streamCtx, cancel := context.WithCancel(ctx)

	req, err := http.NewRequestWithContext(streamCtx, http.MethodPost, c.config.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		cancel()
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	// A fresh client without timeout: the streaming body stays open for
	// the whole reply. Ollama runs locally over plain HTTP.
	streamClient := &http.Client{}

	resp, err := streamClient.Do(req)
	if err != nil {
		cancel()
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return nil, ErrTimeout
		}
		return nil, ErrNotRunning
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		defer cancel()

		// Try to surface the server's own error message
		var ollamaErr OllamaError
		if err := json.NewDecoder(resp.Body).Decode(&ollamaErr); err == nil && ollamaErr.Error != "" {
			return nil, &ClientError{
				Type:       ErrTypeRequestFailed,
				Message:    ollamaErr.Error,
				StatusCode: resp.StatusCode,
			}
		}
		return nil, &ClientError{
			Type:       ErrTypeRequestFailed,
			Message:    "chat request failed: " + resp.Status,
			StatusCode: resp.StatusCode,
		}
	}

	return newStream(resp.Body, cancel), nil
}
