package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cognitive-crawler/internal/config"
	"cognitive-crawler/internal/engine"
	"cognitive-crawler/internal/infrastructure/storage"
	"cognitive-crawler/internal/server"
	"cognitive-crawler/internal/version"
	"cognitive-crawler/pkg/logger"
)

func main() {
	// 1. Конфигурация: окружение, флаги поверх
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal("Config error: ", err)
	}
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Master seed of the run")
	flag.StringVar(&cfg.SaveSlot, "slot", cfg.SaveSlot, "Save slot name")
	flag.StringVar(&cfg.Port, "port", cfg.Port, "HTTP port")
	flag.Parse()
	cfg.ResolveSeed()

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	logger.Log.Info("Starting Cognitive Crawler bridge...")
	logger.Log.Info(version.String())
	logger.Log.Infof("🎲 Master Seed: %d", cfg.Seed)

	// 2. Хранилище сохранений
	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.SaveDB)
	if err != nil {
		logger.Log.Fatal("Save store error: ", err)
	}
	defer store.Close()

	// 3. Ядро и мост
	service := engine.NewService(store, engine.Options{
		Seed:      cfg.Seed,
		MapWidth:  cfg.MapWidth,
		MapHeight: cfg.MapHeight,
		Slot:      cfg.SaveSlot,
	})
	srv := server.New(server.NewBridge(service), cfg.Port)

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error: ", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.WithError(err).Warn("Shutdown error")
	}

	logger.Log.Info("Done.")
}
