// In file: internal/agent/transcript_test.go

package agent

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestMemoryTranscriptPreservesAppendOrder(t *testing.T) {
	transcript := NewMemoryTranscript()
	ctx := context.Background()

	entries := []ConversationEntry{
		{Role: RoleUser, Content: "What is the current weather in Paris, France?"},
		{Role: RoleAssistant, Content: "Sunny."},
		{Role: RoleUser, Content: "And in Oslo?"},
		{Role: RoleAssistant, Content: "Snowing."},
	}
	for _, entry := range entries {
		if err := transcript.Append(ctx, entry); err != nil {
			t.Fatalf("Append returned error: %v", err)
		}
	}

	got, err := transcript.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries returned error: %v", err)
	}
	if len(got) != len(entries) {
		t.Fatalf("Transcript holds %d entries, want %d", len(got), len(entries))
	}
	for i := range entries {
		if got[i] != entries[i] {
			t.Errorf("Entry %d is %+v, want %+v", i, got[i], entries[i])
		}
	}
}

func TestMemoryTranscriptEntriesReturnsACopy(t *testing.T) {
	transcript := NewMemoryTranscript()
	ctx := context.Background()
	if err := transcript.Append(ctx, ConversationEntry{Role: RoleUser, Content: "original"}); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	first, _ := transcript.Entries(ctx)
	first[0].Content = "mutated"

	second, _ := transcript.Entries(ctx)
	if second[0].Content != "original" {
		t.Errorf("Mutating a returned slice leaked into the log: %q", second[0].Content)
	}
}

func TestMemoryTranscriptConcurrentAppends(t *testing.T) {
	transcript := NewMemoryTranscript()
	ctx := context.Background()

	const appends = 64
	var wg sync.WaitGroup
	for i := 0; i < appends; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			entry := ConversationEntry{Role: RoleUser, Content: fmt.Sprintf("message %d", n)}
			if err := transcript.Append(ctx, entry); err != nil {
				t.Errorf("Append returned error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, err := transcript.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries returned error: %v", err)
	}
	if len(got) != appends {
		t.Errorf("Transcript holds %d entries after concurrent appends, want %d", len(got), appends)
	}
}

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestRedisTranscriptRoundTrip(t *testing.T) {
	rdb := newRedisClient(t)
	transcript := NewRedisTranscript(rdb, "test:transcript")
	ctx := context.Background()

	user := ConversationEntry{Role: RoleUser, Content: "What is the current weather in Paris, France?"}
	assistant := ConversationEntry{Role: RoleAssistant, Content: "Sunny, 21.5°C."}
	if err := transcript.Append(ctx, user); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	if err := transcript.Append(ctx, assistant); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	got, err := transcript.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Transcript holds %d entries, want 2", len(got))
	}
	if got[0] != user {
		t.Errorf("First entry is %+v, want %+v", got[0], user)
	}
	if got[1] != assistant {
		t.Errorf("Second entry is %+v, want %+v", got[1], assistant)
	}
}

func TestRedisTranscriptUsesDefaultKey(t *testing.T) {
	rdb := newRedisClient(t)
	transcript := NewRedisTranscript(rdb, "")
	ctx := context.Background()

	if err := transcript.Append(ctx, ConversationEntry{Role: RoleUser, Content: "hello"}); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	length, err := rdb.LLen(ctx, "scout:transcript").Result()
	if err != nil {
		t.Fatalf("LLEN returned error: %v", err)
	}
	if length != 1 {
		t.Errorf("Default key holds %d elements, want 1", length)
	}
}

func TestRedisTranscriptSkipsCorruptEntries(t *testing.T) {
	rdb := newRedisClient(t)
	key := "test:transcript"
	transcript := NewRedisTranscript(rdb, key)
	ctx := context.Background()

	if err := transcript.Append(ctx, ConversationEntry{Role: RoleUser, Content: "first"}); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}
	if err := rdb.RPush(ctx, key, "{not json").Err(); err != nil {
		t.Fatalf("RPUSH returned error: %v", err)
	}
	if err := transcript.Append(ctx, ConversationEntry{Role: RoleAssistant, Content: "second"}); err != nil {
		t.Fatalf("Append returned error: %v", err)
	}

	got, err := transcript.Entries(ctx)
	if err != nil {
		t.Fatalf("Entries returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Transcript holds %d readable entries, want 2", len(got))
	}
	if got[0].Content != "first" || got[1].Content != "second" {
		t.Errorf("Readable entries out of order: %+v", got)
	}
}
