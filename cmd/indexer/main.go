package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/adarsha-ai/backend/internal/application/chat"
	"github.com/adarsha-ai/backend/internal/application/ingest"
	"github.com/adarsha-ai/backend/internal/infrastructure/config"
	"github.com/adarsha-ai/backend/internal/infrastructure/embedding"
	applog "github.com/adarsha-ai/backend/internal/infrastructure/log"
	"github.com/adarsha-ai/backend/internal/infrastructure/storage"
	"github.com/adarsha-ai/backend/internal/infrastructure/vector"
	"github.com/adarsha-ai/backend/internal/infrastructure/watcher"
)

func main() {
	force := flag.Bool("force", false, "reindex even when the data file is unchanged")
	watch := flag.Bool("watch", false, "keep running and reindex on data file changes")
	flag.Parse()

	_ = godotenv.Load()
	applog.Init(nil)
	logger := applog.NewModuleLogger("indexer", "main")

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}
	if cfg.Knowledge.DataFile == "" {
		log.Fatal("no data file configured, set DATA_PATH or knowledge.data_file")
	}

	db, err := storage.OpenDB(config.NewDatabaseConfig(cfg))
	if err != nil {
		log.Fatalf("failed to open metadata database: %v", err)
	}
	defer db.Close()

	storeConfig := config.NewStoreConfig(cfg)
	manager := vector.NewManager(storeConfig)
	store := vector.NewStore(manager, storeConfig)
	embedder := embedding.NewClient(cfg)
	repo := storage.NewIndexRepository(db)
	indexer := ingest.NewIndexer(embedder, store, repo, cfg)

	ctx := context.Background()

	bootstrap := chat.NewStoreBootstrap(manager, store, embedder)
	if err := bootstrap.EnsureReady(ctx); err != nil {
		log.Fatalf("failed to connect knowledge store: %v", err)
	}
	defer manager.Stop()

	runIndex := func(force bool) {
		result, err := indexer.Index(ctx, force)
		if err != nil {
			logger.Error("Indexing failed", "error", err)
			return
		}
		if result.Skipped {
			logger.Info("Data file unchanged, nothing to do")
			return
		}
		logger.Info("Indexing finished",
			"chunks", result.ChunkCount,
			"stored", result.StoredCount,
			"verified", result.Verified,
		)
	}

	runIndex(*force)

	if !*watch {
		return
	}

	fileWatcher, err := watcher.NewFileWatcher(cfg.Knowledge.DataFile, func(path string) {
		logger.Info("Data file changed, reindexing", "path", path)
		runIndex(false)
	})
	if err != nil {
		log.Fatalf("failed to create file watcher: %v", err)
	}
	if err := fileWatcher.Start(); err != nil {
		log.Fatalf("failed to start file watcher: %v", err)
	}
	defer fileWatcher.Stop()

	logger.Info("Watching data file for changes", "path", cfg.Knowledge.DataFile)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Indexer stopped")
}
