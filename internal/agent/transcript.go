// In file: internal/agent/transcript.go

// Package agent implements Scout's single-turn dispatch loop and the
// conversation log it writes to. One run takes a user utterance, asks the
// reasoning service what to do, executes at most one tool, composes the
// final response from fixed templates, and appends exactly one user entry
// and one assistant entry to the transcript.
package agent

import (
	"context"
	"sync"
)

// Role identifies who authored a conversation entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationEntry is one line of the conversation log.
type ConversationEntry struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Transcript is the flat, append-only conversation log. Entries keep arrival
// order; nothing is ever updated or removed. Implementations must be safe
// for concurrent appends, since the web server runs turns on concurrent
// request goroutines sharing one agent.
type Transcript interface {
	Append(ctx context.Context, entry ConversationEntry) error
	Entries(ctx context.Context) ([]ConversationEntry, error)
}

// MemoryTranscript keeps the log in process memory. It is the default store
// for both binaries and the natural choice for the terminal harness, where
// the log lives and dies with the session.
type MemoryTranscript struct {
	mu      sync.Mutex
	entries []ConversationEntry
}

// Statically verify that MemoryTranscript implements the Transcript interface.
var _ Transcript = (*MemoryTranscript)(nil)

func NewMemoryTranscript() *MemoryTranscript {
	return &MemoryTranscript{}
}

// Append adds one entry to the end of the log.
func (mt *MemoryTranscript) Append(ctx context.Context, entry ConversationEntry) error {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.entries = append(mt.entries, entry)
	return nil
}

// Entries returns a copy of the log, so callers can range over it without
// holding the lock or observing later appends.
func (mt *MemoryTranscript) Entries(ctx context.Context) ([]ConversationEntry, error) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	out := make([]ConversationEntry, len(mt.entries))
	copy(out, mt.entries)
	return out, nil
}
