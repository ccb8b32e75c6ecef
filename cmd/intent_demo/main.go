// README: One-shot intent extraction against the configured LLM provider; prints intent, slots and reply.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"wayfarer/internal/ai"
	"wayfarer/internal/config"
	"wayfarer/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Logger.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.LLM.Timeout)
	defer cancel()

	extractor, err := ai.NewExtractor(ctx, cfg.LLM)
	if err != nil {
		logger.Logger.Fatalf("Failed to initialize extractor: %v", err)
	}
	if closer, ok := extractor.(interface{ Close() }); ok {
		defer closer.Close()
	}

	userMessage := "I need a flight from New York to Los Angeles next Friday, economy, under $400"
	if len(os.Args) > 1 {
		userMessage = strings.Join(os.Args[1:], " ")
	}
	fmt.Printf("Provider: %s\n", extractor.Name())
	fmt.Printf("User: %s\n", userMessage)

	result, err := extractor.Extract(ctx, userMessage, ai.Context{SessionID: "demo", Now: time.Now()})
	if err != nil {
		logger.Logger.Fatalf("Error extracting intent: %v", err)
	}

	fmt.Printf("Intent: %s\n", result.Intent)
	slots, _ := json.MarshalIndent(result.Slots, "", "  ")
	fmt.Printf("Slots: %s\n", slots)
	if result.UserReply != nil {
		fmt.Printf("Reply: %s\n", *result.UserReply)
	}
}
