// Package fetch implements the loading/error contract shared by every
// asynchronous rate lookup.
//
// A Tracker belongs to exactly one call site. Begin marks the call site as
// pending, clears the previous error and hands out a monotonically increasing
// Token. Only the settle carrying the latest token may release the pending
// flag or record an error; results of superseded calls are reported as stale
// so the caller can discard them.
package fetch

import (
	"fmt"
	"sync"
)

// Token identifies one attempt at a call site.
type Token uint64

// Status is the observable state of a call site.
type Status struct {
	Err     string
	Pending bool
}

// Failed reports whether the last settled attempt failed.
func (s Status) Failed() bool {
	return s.Err != ""
}

// Idle reports whether nothing is in flight and no error is recorded.
func (s Status) Idle() bool {
	return !s.Pending && s.Err == ""
}

// Tracker holds the pending/error flags for one call site.
type Tracker struct {
	err     string
	latest  Token
	mu      sync.Mutex
	pending bool
}

// NewTracker creates an idle tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin starts a new attempt.
func (t *Tracker) Begin() Token {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.latest++
	t.pending = true
	t.err = ""
	return t.latest
}

// Settle finishes the attempt identified by tok. It returns false, and
// changes nothing, when a newer attempt has been started since.
func (t *Tracker) Settle(tok Token, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if tok != t.latest {
		return false
	}

	t.pending = false
	if err != nil {
		t.err = err.Error()
	} else {
		t.err = ""
	}
	return true
}

// Current reports whether tok is the latest attempt.
func (t *Tracker) Current(tok Token) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return tok == t.latest
}

// Invalidate supersedes any in-flight attempt and returns the tracker to idle.
func (t *Tracker) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.latest++
	t.pending = false
	t.err = ""
}

// Status returns a snapshot of the flags.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Status{Pending: t.pending, Err: t.err}
}

// Do runs fn as one attempt on t. The pending flag is released on every exit
// path, including a panic inside fn, which is returned as an error.
func Do[T any](t *Tracker, fn func() (T, error)) (result T, err error) {
	tok := t.Begin()
	defer func() {
		t.Settle(tok, err)
	}()

	return Capture(fn)
}

// Capture runs fn and converts a panic into an error.
func Capture[T any](fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = zero
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()
	return fn()
}
