package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hibiken/asynq"

	"github.com/JeanBsh/LocaTrack/internal/config"
	"github.com/JeanBsh/LocaTrack/internal/database"
	"github.com/JeanBsh/LocaTrack/internal/export"
	"github.com/JeanBsh/LocaTrack/internal/imaging"
	"github.com/JeanBsh/LocaTrack/internal/lease"
	"github.com/JeanBsh/LocaTrack/internal/profile"
	"github.com/JeanBsh/LocaTrack/internal/property"
	"github.com/JeanBsh/LocaTrack/internal/queue"
	"github.com/JeanBsh/LocaTrack/internal/queue/workers"
	"github.com/JeanBsh/LocaTrack/internal/storage"
	"github.com/JeanBsh/LocaTrack/internal/tenant"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	db, err := database.NewPool(context.Background(), cfg.Database)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store, err := storage.NewMinioStorage(cfg.Storage)
	if err != nil {
		slog.Error("failed to connect to object storage", "error", err)
		os.Exit(1)
	}

	encoder := imaging.NewEncoder(cfg.Proxy.RelayBaseURL, time.Duration(cfg.Proxy.TimeoutSeconds)*time.Second)
	loader := export.NewLoader(tenant.NewService(db), lease.NewService(db), property.NewService(db), profile.NewService(db))
	exportWorker := workers.NewExportWorker(export.NewStore(db), loader, export.NewOrchestrator(encoder), store)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.Handle(queue.TypeBulkExport, asynq.HandlerFunc(exportWorker.ProcessTask))

	slog.Info("starting worker", "concurrency", 5)
	if err := srv.Run(mux); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}
