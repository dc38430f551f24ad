// In file: cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/coriolis-labs/scout/internal/agent"
	"github.com/coriolis-labs/scout/internal/config"
	"github.com/coriolis-labs/scout/internal/llm"
	"github.com/coriolis-labs/scout/internal/tools"
)

// main is the entry point for the web server.
// Its primary role is the "Composition Root": it loads configuration,
// initializes all services, injects dependencies, and starts the server.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	buildInfo := GetBuildInfo()
	log.Printf("🚀 Starting Scout | Version: %s | Commit: %s", buildInfo.Version, buildInfo.GitCommit)

	// 1. LOAD CONFIGURATION
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("❌ FATAL: Configuration Error: %v", err)
	}
	log.Println("✅ Configuration loaded.")

	// 2. INITIALIZE SERVICES
	// Without Redis the transcript lives in memory and stats stay disabled;
	// with REDIS_ADDR set, an unreachable Redis is a startup failure.
	var transcript agent.Transcript = agent.NewMemoryTranscript()
	var stats *agent.TurnStats
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Fatalf("❌ FATAL: Could not connect to Redis at %s: %v", cfg.RedisAddr, err)
		}
		transcript = agent.NewRedisTranscript(rdb, "")
		stats = agent.NewTurnStats(rdb)
		log.Println("✅ Redis connected; transcript and stats are persistent.")
	} else {
		log.Println("⚠️ REDIS_ADDR not set; transcript is in-memory and stats are disabled.")
	}

	manager := initializeToolManager(cfg)
	reasoner := llm.NewReasoner(cfg.Agent.Model, cfg.ReasonerAPIKey, cfg.Agent.MaxTokens)
	log.Printf("✅ Reasoner configured for model '%s'.", reasoner.Model())

	scout, err := agent.NewAgent(cfg.Agent.Name, reasoner, manager, transcript, stats)
	if err != nil {
		log.Fatalf("❌ FATAL: Could not create agent: %v", err)
	}
	log.Println("✅ All services initialized.")

	handler := NewChatHandler(scout, stats)

	// 3. SETUP AND RUN THE WEB SERVER
	gin.SetMode(os.Getenv("GIN_MODE"))
	engine := gin.Default()
	engine.StaticFile("/", "./static/index.html")
	api := engine.Group("/api")
	{
		api.POST("/chat", handler.HandleChat)
		api.GET("/stats", handler.HandleStats)
	}
	engine.GET("/health", handler.HandleHealth)

	srv := &http.Server{Addr: fmt.Sprintf(":%s", cfg.Port), Handler: engine}
	runServerWithGracefulShutdown(srv)
}

// initializeToolManager creates and registers all available tools.
// The weather tool shares the geocoding tool so both resolve coordinates
// the same way.
func initializeToolManager(cfg *config.AppConfig) *tools.ToolManager {
	manager := tools.NewToolManager()

	geocoder := tools.NewGeocodeTool(cfg.OpenCageAPIKey)
	manager.Register(geocoder)
	manager.Register(tools.NewWeatherTool(geocoder))
	manager.Register(tools.NewSearchTool(cfg.SerpAPIKey))

	log.Printf("✅ Tool Manager initialized with %d tools.", manager.ToolCount())
	return manager
}

// runServerWithGracefulShutdown handles the server lifecycle.
func runServerWithGracefulShutdown(srv *http.Server) {
	go func() {
		log.Printf("👂 Scout is listening on http://localhost%s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Listen error: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server shutdown failed:", err)
	}

	log.Println("👋 Server exited gracefully.")
}
