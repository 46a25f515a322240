// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for communicating with the
// Ollama API.
//
// The client covers the three operations quill needs: a health check,
// the model listing (with an offline fallback so a session can always
// start), and opening a streaming chat request.
//
// # Streaming
//
// OpenChatStream performs the blocking handshake and hands back a
// Stream, a lazy sequence of raw reply fragments fed by a single
// producer goroutine. Consumers drain it cooperatively:
//
//	stream, err := client.OpenChatStream(ctx, model, transcript)
//	if err != nil { ... } // handshake failed, no stream exists
//	defer stream.Close()
//	for {
//	    text, status, err := stream.Poll(10 * time.Millisecond)
//	    switch status {
//	    case ollama.PollFragment: // accumulate text
//	    case ollama.PollTimeout:  // yield, poll again
//	    case ollama.PollEnded:    // reply complete
//	    case ollama.PollError:    // mid-stream failure, err set
//	    }
//	}
//
// Fragments are raw bytes off the wire: NDJSON lines that may arrive
// split or batched. Parsing them is the session assembler's job, not
// this package's.
//
// # Errors
//
// All failures are *ClientError values categorized by ErrorType and
// checked with the Is* predicates. An unreachable server is
// ErrTypeNotRunning; a rejected handshake is ErrTypeRequestFailed with
// the HTTP status; a mid-stream failure is ErrTypeStreamInterrupted.
package ollama
