// In file: cmd/server/handler.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/coriolis-labs/scout/internal/agent"
)

// TurnRunner runs one agent turn. *agent.Agent is the production
// implementation; handler tests script their own.
type TurnRunner interface {
	Run(ctx context.Context, utterance string) string
}

// ChatRequest is the JSON body for POST /api/chat. The front end sends a
// city and state; the handler turns them into a weather question for the
// agent. Both fields are required — a malformed body is rejected at the
// transport layer, before the agent is involved.
type ChatRequest struct {
	City  string `json:"city" binding:"required"`
	State string `json:"state" binding:"required"`
}

// ChatHandler exposes the agent over HTTP.
type ChatHandler struct {
	runner TurnRunner
	stats  *agent.TurnStats
}

func NewChatHandler(runner TurnRunner, stats *agent.TurnStats) *ChatHandler {
	return &ChatHandler{runner: runner, stats: stats}
}

// HandleChat runs one turn for the submitted city and state.
func (h *ChatHandler) HandleChat(c *gin.Context) {
	startTime := time.Now()

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	utterance := fmt.Sprintf("What is the current weather in %s, %s?", req.City, req.State)
	response := h.runner.Run(c.Request.Context(), utterance)

	log.Printf("--- Request served in %d ms ---", time.Since(startTime).Milliseconds())
	c.JSON(http.StatusOK, gin.H{"response": response})
}

// HandleStats reports the turn counters collected so far.
func (h *ChatHandler) HandleStats(c *gin.Context) {
	snapshot, err := h.stats.Snapshot(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": snapshot})
}

// HandleHealth is a liveness probe.
func (h *ChatHandler) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
