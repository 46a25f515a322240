// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for communicating with the Ollama API.
package ollama

import (
	"time"
)

// =============================================================================
// MESSAGE TYPES
// =============================================================================

// Message represents a single message in a chat conversation.
type Message struct {
	// Role is one of: "system", "user", "assistant"
	Role string `json:"role"`

	// Content is the message text
	Content string `json:"content"`
}

// NewSystemMessage creates a system message.
func NewSystemMessage(content string) Message {
	return Message{Role: "system", Content: content}
}

// NewUserMessage creates a user message.
func NewUserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(content string) Message {
	return Message{Role: "assistant", Content: content}
}

// =============================================================================
// REQUEST TYPES
// =============================================================================

// ChatRequest is the request body for /api/chat.
type ChatRequest struct {
	// Model is the model name to use
	Model string `json:"model"`

	// Messages is the conversation history
	Messages []Message `json:"messages"`

	// Stream enables line-delimited streaming responses
	Stream bool `json:"stream"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ModelInfo describes an available model from /api/tags.
type ModelInfo struct {
	// Name is the model identifier (e.g., "llama2", "qwen2.5:14b")
	Name string `json:"name"`

	// ModifiedAt is when the model was last updated
	ModifiedAt time.Time `json:"modified_at"`

	// Size is the model size in bytes
	Size int64 `json:"size"`
}

// ListModelsResponse is the response from /api/tags.
type ListModelsResponse struct {
	Models []ModelInfo `json:"models"`
}

// OllamaError is an error payload returned by the Ollama API.
type OllamaError struct {
	Error string `json:"error"`
}
