// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for communicating with the Ollama API.
package ollama

import (
	"errors"
	"io"
	"sync"
	"time"
)

// =============================================================================
// POLL STATUS
// =============================================================================

// PollStatus describes the outcome of a single Stream.Poll call.
type PollStatus int

const (
	// PollFragment: a fragment arrived; the text return value holds it.
	PollFragment PollStatus = iota

	// PollTimeout: nothing arrived within the budget. Not an error;
	// the caller re-polls on its next tick.
	PollTimeout

	// PollEnded: the source is exhausted (EOF) with no more fragments.
	PollEnded

	// PollError: the source failed; the error return value holds the
	// mid-stream failure.
	PollError
)

// String returns a human-readable status name.
func (s PollStatus) String() string {
	switch s {
	case PollFragment:
		return "fragment"
	case PollTimeout:
		return "timeout"
	case PollEnded:
		return "ended"
	case PollError:
		return "error"
	default:
		return "unknown"
	}
}

// =============================================================================
// STREAM
// =============================================================================

// streamFragment is one producer item: raw reply bytes or a terminal error.
type streamFragment struct {
	text string
	err  error
}

// Stream is a lazy sequence of raw reply fragments from one chat request.
// A fragment is whatever the connection delivered in one read: it may
// contain several newline-delimited JSON objects, or an object split
// across fragment boundaries. Consumers poll with a short budget so a
// single-threaded driver loop stays responsive.
//
// The producer goroutine owns the response body; it touches nothing
// else, so all session state stays single-owner.
type Stream struct {
	frags     chan streamFragment
	done      chan struct{}
	cancel    func()
	closeOnce sync.Once
}

// readBufferSize matches the typical size of one Ollama NDJSON batch.
const readBufferSize = 4096

// newStream starts the producer goroutine over the response body.
// cancel releases the underlying request when the stream is closed.
func newStream(body io.ReadCloser, cancel func()) *Stream {
	s := &Stream{
		frags:  make(chan streamFragment),
		done:   make(chan struct{}),
		cancel: cancel,
	}
	go s.produce(body)
	return s
}

// produce reads raw chunks from the body until EOF, error, or Close.
func (s *Stream) produce(body io.ReadCloser) {
	defer body.Close()
	defer close(s.frags)

	buf := make([]byte, readBufferSize)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			select {
			case s.frags <- streamFragment{text: string(buf[:n])}:
			case <-s.done:
				return
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			interrupted := &ClientError{
				Type:    ErrTypeStreamInterrupted,
				Message: "stream interrupted",
				Cause:   err,
			}
			select {
			case s.frags <- streamFragment{err: interrupted}:
			case <-s.done:
			}
			return
		}
	}
}

// Poll waits up to budget for the next fragment.
//
// Outcomes:
//   - (text, PollFragment, nil): one fragment of raw reply text
//   - ("", PollTimeout, nil): nothing within budget; poll again later
//   - ("", PollEnded, nil): the reply ended (connection EOF)
//   - ("", PollError, err): the source failed mid-stream
//
// A budget of zero makes the poll non-blocking.
func (s *Stream) Poll(budget time.Duration) (string, PollStatus, error) {
	timer := time.NewTimer(budget)
	defer timer.Stop()

	select {
	case frag, ok := <-s.frags:
		if !ok {
			return "", PollEnded, nil
		}
		if frag.err != nil {
			return "", PollError, frag.err
		}
		return frag.text, PollFragment, nil
	case <-timer.C:
		return "", PollTimeout, nil
	}
}

// Close releases the stream: the request context is cancelled, which
// unblocks the producer and closes the connection. Safe to call more
// than once and safe to call concurrently with Poll.
func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		if s.cancel != nil {
			s.cancel()
		}
	})
}
