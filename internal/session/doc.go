// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package session implements the conversation engine: the turn data
// model, bounded display history, backend transcript, incremental
// reply assembly, and the approval state machine for tool calls.
//
// # Architecture
//
// The Engine owns all mutable session state and is driven from a
// single goroutine by an external loop that alternates input delivery
// with short Advance ticks:
//
//	engine := session.NewEngine(backend, runner, opts)
//	engine.LoadModels(ctx)
//	engine.Submit(ctx, "hi")
//	for engine.State() == session.StateStreaming {
//	    engine.Advance(10 * time.Millisecond)
//	}
//
// # States
//
//   - StateIdle: accepts Submit and model selection
//   - StateStreaming: accepts Advance; everything else is ignored
//   - StateAwaitingApproval: accepts Approve and Deny only
//
// # Histories
//
// DisplayHistory is what gets rendered: bounded, oldest-first
// eviction, and the only place pending/denied tool entries exist.
// Transcript is the unbounded role/content sequence resent to the
// backend on every request, seeded with one system entry. MemoryLog
// pairs each prompt with its committed reply for the alternate
// single-string prompt builder.
//
// # Failure Model
//
// Nothing here is fatal. A failed request handshake, an interrupted
// stream, and a failed tool read all degrade to visible text: the
// first two set the engine's visible error, the last is formatted as
// conversation content for the model to react to.
package session
