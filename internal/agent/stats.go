// In file: internal/agent/stats.go

package agent

import (
	"context"
	"log"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/coriolis-labs/scout/internal/llm"
)

// statsKey is the Redis hash holding Scout's turn counters.
const statsKey = "scout:stats"

// TurnStats counts turn outcomes in a Redis hash: a total turn counter, one
// counter per decision kind ("decision:<kind>"), and one per requested tool
// ("tool:<name>"). The tool counter tracks what the reasoning service asked
// for, so an unknown tool name still shows up here.
//
// All methods are nil-safe. A nil *TurnStats (no Redis configured) records
// nothing and reports an empty snapshot, so the agent never has to care
// whether stats are enabled.
type TurnStats struct {
	rdb *redis.Client
}

// NewTurnStats creates a stats recorder backed by the given Redis client.
func NewTurnStats(rdb *redis.Client) *TurnStats {
	return &TurnStats{rdb: rdb}
}

// RecordDecision bumps the total turn counter and the counter for one
// decision kind. Failures are logged and swallowed; stats never fail a turn.
func (s *TurnStats) RecordDecision(ctx context.Context, kind llm.DecisionKind) {
	if s == nil || s.rdb == nil {
		return
	}
	if err := s.rdb.HIncrBy(ctx, statsKey, "turns", 1).Err(); err != nil {
		log.Printf("⚠️ Failed to record turn stat: %v", err)
		return
	}
	if err := s.rdb.HIncrBy(ctx, statsKey, "decision:"+string(kind), 1).Err(); err != nil {
		log.Printf("⚠️ Failed to record decision stat: %v", err)
	}
}

// RecordToolCall bumps the counter for one requested tool name.
func (s *TurnStats) RecordToolCall(ctx context.Context, tool string) {
	if s == nil || s.rdb == nil {
		return
	}
	if err := s.rdb.HIncrBy(ctx, statsKey, "tool:"+tool, 1).Err(); err != nil {
		log.Printf("⚠️ Failed to record tool stat: %v", err)
	}
}

// Snapshot returns all counters recorded so far. Without Redis it reports an
// empty map rather than an error.
func (s *TurnStats) Snapshot(ctx context.Context) (map[string]int64, error) {
	if s == nil || s.rdb == nil {
		return map[string]int64{}, nil
	}
	raw, err := s.rdb.HGetAll(ctx, statsKey).Result()
	if err != nil {
		return nil, err
	}
	counters := make(map[string]int64, len(raw))
	for field, value := range raw {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			continue
		}
		counters[field] = n
	}
	return counters, nil
}
