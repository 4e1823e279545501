package main

import (
	"context"
	"log"
	"os"

	"sowin-pos/internal/config"
	terminalrepo "sowin-pos/internal/repository/terminal"
	"sowin-pos/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	store, closeStore, err := terminalrepo.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open terminal store: %v", err)
	}
	defer closeStore()

	n, err := seed.Apply(ctx, store, cfg.TerminalID)
	if err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seed applied terminal=%s written=%d", cfg.TerminalID, n)
}
