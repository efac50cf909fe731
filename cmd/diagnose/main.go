package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/adarsha-ai/backend/internal/infrastructure/config"
	"github.com/adarsha-ai/backend/internal/infrastructure/embedding"
	"github.com/adarsha-ai/backend/internal/infrastructure/llm"
	"github.com/adarsha-ai/backend/internal/infrastructure/vector"
)

// diagnose checks every external dependency of the assistant and
// prints a pass/fail report. It never mutates anything.
func main() {
	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println(" ADARSHA AI SYSTEM DIAGNOSTIC TOOL")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	if err := godotenv.Load(); err != nil {
		fmt.Println("[1/5] .env file: NOT found (environment variables only)")
	} else {
		fmt.Println("[1/5] .env file: loaded")
	}

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("      FAIL: configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n[2/5] Checking API keys...")
	keys := config.LoadKeys()
	if len(keys) == 0 {
		fmt.Println("      FAIL: no keys found. Set GROQ_API_KEY (and optional GROQ_API_KEY_BACKUP_1..19).")
	} else {
		fmt.Printf("      OK: %d key(s) in the pool\n", len(keys))
		if !strings.HasPrefix(keys[0], "gsk_") {
			fmt.Println("      WARN: primary key does not start with gsk_, it may not be a Groq key")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Println("\n[3/5] Testing generation API...")
	if len(keys) == 0 {
		fmt.Println("      SKIP: no key to test with")
	} else {
		client := llm.NewClient(cfg, keys)
		answer, err := client.Complete(ctx, llm.CompletionRequest{
			Messages:    []llm.Message{{Role: "user", Content: "Say 'Test Successful'"}},
			MaxTokens:   32,
			Temperature: 0,
		})
		if err != nil {
			fmt.Printf("      FAIL: %v\n", err)
		} else {
			fmt.Printf("      OK: %q\n", strings.TrimSpace(answer))
		}
	}

	fmt.Println("\n[4/5] Testing embedding API...")
	embedder := embedding.NewClient(cfg)
	if err := embedder.TestConnection(ctx); err != nil {
		fmt.Printf("      FAIL: %v\n", err)
	} else {
		dim, _ := embedder.GetVectorDimension(ctx)
		fmt.Printf("      OK: reachable, vector dimension %d\n", dim)
	}

	fmt.Println("\n[5/5] Testing knowledge store...")
	storeConfig := config.NewStoreConfig(cfg)
	manager := vector.NewManager(storeConfig)
	store := vector.NewStore(manager, storeConfig)
	if err := manager.Start(); err != nil {
		fmt.Printf("      FAIL: %v\n", err)
		fmt.Println("      Run cmd/indexer first, or check the qdrant configuration.")
	} else {
		defer manager.Stop()
		count, err := store.Count(ctx)
		if err != nil {
			fmt.Printf("      FAIL: collection %q: %v\n", store.Collection(), err)
		} else if count == 0 {
			fmt.Printf("      WARN: collection %q is empty, run cmd/indexer\n", store.Collection())
		} else {
			fmt.Printf("      OK: collection %q holds %d documents\n", store.Collection(), count)
		}
	}

	fmt.Println()
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println(" DIAGNOSTIC COMPLETE")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()
}
