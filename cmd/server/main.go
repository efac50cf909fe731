package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/adarsha-ai/backend/internal/infrastructure/config"
	applog "github.com/adarsha-ai/backend/internal/infrastructure/log"
	"github.com/adarsha-ai/backend/internal/infrastructure/singleton"
	"github.com/adarsha-ai/backend/internal/wire"
)

func main() {
	// a missing .env is fine, keys may come from the environment
	_ = godotenv.Load()

	applog.Init(nil)

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	port := cfg.Server.HTTPPort

	listener, err := singleton.CheckAndLock(port)
	if err != nil {
		log.Fatalf("singleton check failed: %v", err)
	}
	if listener == nil {
		log.Println("another instance is already running, exiting")
		os.Exit(0)
	}
	// release the probe listener, the HTTP server takes the port
	_ = listener.Close()

	app, err := wire.InitializeApp()
	if err != nil {
		applog.GetLogger().Error("Failed to initialize application",
			"error", err,
		)
		os.Exit(1)
	}

	if err := app.Start(); err != nil {
		applog.GetLogger().Error("Failed to start application",
			"error", err,
		)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	applog.GetLogger().Info("Shutting down application...")
	if err := app.Stop(); err != nil {
		applog.GetLogger().Error("Error during application shutdown",
			"error", err,
		)
	}
	applog.GetLogger().Info("Application stopped")
}
