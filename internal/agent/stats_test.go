// In file: internal/agent/stats_test.go

package agent

import (
	"context"
	"testing"

	"github.com/coriolis-labs/scout/internal/llm"
)

func TestTurnStatsRecordsDecisionsAndTools(t *testing.T) {
	rdb := newRedisClient(t)
	stats := NewTurnStats(rdb)
	ctx := context.Background()

	stats.RecordDecision(ctx, llm.DecisionCallTool)
	stats.RecordDecision(ctx, llm.DecisionFinalResponse)
	stats.RecordDecision(ctx, llm.DecisionCallTool)
	stats.RecordToolCall(ctx, "get_current_weather")
	stats.RecordToolCall(ctx, "get_current_weather")
	stats.RecordToolCall(ctx, "get_search_results")

	snapshot, err := stats.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}

	want := map[string]int64{
		"turns":                    3,
		"decision:call_tool":       2,
		"decision:final_response":  1,
		"tool:get_current_weather": 2,
		"tool:get_search_results":  1,
	}
	for field, count := range want {
		if snapshot[field] != count {
			t.Errorf("snapshot[%q] = %d, want %d", field, snapshot[field], count)
		}
	}
}

func TestTurnStatsNilRecorderIsSafe(t *testing.T) {
	var stats *TurnStats
	ctx := context.Background()

	stats.RecordDecision(ctx, llm.DecisionFinalResponse)
	stats.RecordToolCall(ctx, "get_current_weather")

	snapshot, err := stats.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}
	if len(snapshot) != 0 {
		t.Errorf("Nil recorder reported %d counters, want 0", len(snapshot))
	}
}

func TestTurnStatsWithoutRedisIsSafe(t *testing.T) {
	stats := NewTurnStats(nil)
	ctx := context.Background()

	stats.RecordDecision(ctx, llm.DecisionCallTool)

	snapshot, err := stats.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}
	if len(snapshot) != 0 {
		t.Errorf("Recorder without Redis reported %d counters, want 0", len(snapshot))
	}
}
