// In file: cmd/agent/main.go
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/coriolis-labs/scout/internal/agent"
	"github.com/coriolis-labs/scout/internal/config"
	"github.com/coriolis-labs/scout/internal/llm"
	"github.com/coriolis-labs/scout/internal/tools"
)

// main runs Scout in the terminal. Command-line arguments are joined into a
// single one-shot utterance; with no arguments it starts an interactive
// loop. The transcript lives in memory and dies with the session.
func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("❌ FATAL: Configuration Error: %v", err)
	}

	manager := tools.NewToolManager()
	geocoder := tools.NewGeocodeTool(cfg.OpenCageAPIKey)
	manager.Register(geocoder)
	manager.Register(tools.NewWeatherTool(geocoder))
	manager.Register(tools.NewSearchTool(cfg.SerpAPIKey))

	reasoner := llm.NewReasoner(cfg.Agent.Model, cfg.ReasonerAPIKey, cfg.Agent.MaxTokens)
	transcript := agent.NewMemoryTranscript()

	scout, err := agent.NewAgent(cfg.Agent.Name, reasoner, manager, transcript, nil)
	if err != nil {
		log.Fatalf("❌ FATAL: Could not create agent: %v", err)
	}

	if len(os.Args) > 1 {
		utterance := strings.Join(os.Args[1:], " ")
		fmt.Printf("%s> %s\n", scout.Name(), scout.Run(context.Background(), utterance))
		return
	}

	runInteractive(scout)
}

// runInteractive reads utterances from stdin until exit/quit or EOF.
func runInteractive(scout *agent.Agent) {
	fmt.Printf("%s is ready. Type 'exit' to quit.\n", scout.Name())
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "exit" || text == "quit" {
			break
		}
		fmt.Printf("%s> %s\n", scout.Name(), scout.Run(context.Background(), text))
	}
	if err := scanner.Err(); err != nil {
		log.Printf("input error: %v", err)
	}

	if entries, err := scout.Transcript().Entries(context.Background()); err == nil {
		fmt.Printf("👋 Goodbye! The conversation log holds %d entries.\n", len(entries))
	}
}
