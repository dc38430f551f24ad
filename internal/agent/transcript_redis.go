// In file: internal/agent/transcript_redis.go

package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// defaultTranscriptKey is the Redis list holding the conversation log when
// no explicit key is configured.
const defaultTranscriptKey = "scout:transcript"

// RedisTranscript persists the conversation log in a Redis list, one
// JSON-encoded entry per element. RPUSH preserves arrival order, so Entries
// can read the whole log back with a single LRANGE.
type RedisTranscript struct {
	rdb *redis.Client
	key string
}

// Statically verify that RedisTranscript implements the Transcript interface.
var _ Transcript = (*RedisTranscript)(nil)

// NewRedisTranscript creates a transcript backed by the given Redis client.
// An empty key selects the default.
func NewRedisTranscript(rdb *redis.Client, key string) *RedisTranscript {
	if key == "" {
		key = defaultTranscriptKey
	}
	return &RedisTranscript{rdb: rdb, key: key}
}

// Append encodes the entry as JSON and pushes it onto the end of the list.
func (rt *RedisTranscript) Append(ctx context.Context, entry ConversationEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to encode transcript entry: %w", err)
	}
	if err := rt.rdb.RPush(ctx, rt.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to append transcript entry: %w", err)
	}
	return nil
}

// Entries reads the whole log back in order. Elements that fail to decode
// are skipped rather than aborting the read; a corrupt line should not make
// the rest of the conversation unreadable.
func (rt *RedisTranscript) Entries(ctx context.Context) ([]ConversationEntry, error) {
	raw, err := rt.rdb.LRange(ctx, rt.key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	entries := make([]ConversationEntry, 0, len(raw))
	for _, item := range raw {
		var entry ConversationEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
