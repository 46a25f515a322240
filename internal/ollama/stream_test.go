// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package ollama

import (
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

// errReader yields some data then fails.
type errReader struct {
	data string
	err  error
	read bool
}

func (r *errReader) Read(p []byte) (int, error) {
	if !r.read && r.data != "" {
		r.read = true
		n := copy(p, r.data)
		return n, nil
	}
	return 0, r.err
}

func (r *errReader) Close() error { return nil }

// drain polls until the stream ends or errors, concatenating fragments.
func drain(t *testing.T, s *Stream) (string, PollStatus, error) {
	t.Helper()
	var collected string
	deadline := time.After(5 * time.Second)
	for {
		select {
		case <-deadline:
			t.Fatal("stream did not finish in time")
		default:
		}

		text, status, err := s.Poll(50 * time.Millisecond)
		switch status {
		case PollFragment:
			collected += text
		case PollTimeout:
			continue
		default:
			return collected, status, err
		}
	}
}

// =============================================================================
// POLL TESTS
// =============================================================================

func TestPollDeliversFragmentsThenEnds(t *testing.T) {
	body := io.NopCloser(strings.NewReader("{\"message\":{\"content\":\"Hi\"}}\n{\"done\":true}\n"))
	stream := newStream(body, func() {})
	defer stream.Close()

	collected, status, err := drain(t, stream)
	if err != nil {
		t.Fatalf("drain error: %v", err)
	}
	if status != PollEnded {
		t.Fatalf("status = %v, want PollEnded", status)
	}
	if collected != "{\"message\":{\"content\":\"Hi\"}}\n{\"done\":true}\n" {
		t.Errorf("collected = %q", collected)
	}
}

func TestPollTimesOutWhenNoDataReady(t *testing.T) {
	// A pipe with no writer activity blocks the producer.
	pr, pw := io.Pipe()
	stream := newStream(pr, func() {})
	defer func() {
		stream.Close()
		pw.Close()
	}()

	start := time.Now()
	text, status, err := stream.Poll(20 * time.Millisecond)
	if status != PollTimeout {
		t.Fatalf("status = %v, want PollTimeout", status)
	}
	if text != "" || err != nil {
		t.Errorf("timeout should carry no payload, got text=%q err=%v", text, err)
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Errorf("Poll returned after %v, want it to honor the budget", elapsed)
	}
}

func TestPollNonBlocking(t *testing.T) {
	pr, pw := io.Pipe()
	stream := newStream(pr, func() {})
	defer func() {
		stream.Close()
		pw.Close()
	}()

	_, status, _ := stream.Poll(0)
	if status != PollTimeout {
		t.Errorf("zero-budget Poll = %v, want PollTimeout", status)
	}
}

func TestPollReportsReaderFailure(t *testing.T) {
	boom := errors.New("connection reset by peer")
	stream := newStream(&errReader{data: "partial", err: boom}, func() {})
	defer stream.Close()

	collected, status, err := drain(t, stream)
	if status != PollError {
		t.Fatalf("status = %v, want PollError", status)
	}
	if collected != "partial" {
		t.Errorf("fragments before failure = %q, want 'partial'", collected)
	}
	if !IsStreamInterrupted(err) {
		t.Errorf("err = %v, want stream-interrupted error", err)
	}
	if !errors.Is(err, boom) {
		t.Error("err should wrap the reader failure")
	}
}

func TestPollAfterEndKeepsReportingEnded(t *testing.T) {
	body := io.NopCloser(strings.NewReader("x"))
	stream := newStream(body, func() {})
	defer stream.Close()

	if _, status, _ := drain(t, stream); status != PollEnded {
		t.Fatalf("first drain = %v, want PollEnded", status)
	}
	if _, status, _ := stream.Poll(10 * time.Millisecond); status != PollEnded {
		t.Errorf("Poll after end = %v, want PollEnded", status)
	}
}

// =============================================================================
// CLOSE TESTS
// =============================================================================

func TestCloseIsIdempotent(t *testing.T) {
	body := io.NopCloser(strings.NewReader("data"))
	stream := newStream(body, func() {})

	stream.Close()
	stream.Close() // must not panic
}

func TestCloseInvokesCancel(t *testing.T) {
	cancelled := false
	body := io.NopCloser(strings.NewReader("data"))
	stream := newStream(body, func() { cancelled = true })

	stream.Close()
	if !cancelled {
		t.Error("Close should invoke the cancel function")
	}
}

func TestCloseUnblocksProducer(t *testing.T) {
	// Producer is stuck on a pipe read; Close must not hang even though
	// nothing is draining the fragment channel.
	pr, pw := io.Pipe()
	stream := newStream(pr, func() { pw.CloseWithError(io.ErrClosedPipe) })

	done := make(chan struct{})
	go func() {
		stream.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close blocked")
	}
}

// =============================================================================
// STATUS STRING TESTS
// =============================================================================

func TestPollStatusString(t *testing.T) {
	tests := []struct {
		status PollStatus
		want   string
	}{
		{PollFragment, "fragment"},
		{PollTimeout, "timeout"},
		{PollEnded, "ended"},
		{PollError, "error"},
		{PollStatus(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("PollStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
