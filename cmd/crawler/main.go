package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"cognitive-crawler/internal/agent"
	"cognitive-crawler/internal/config"
	"cognitive-crawler/internal/engine"
	"cognitive-crawler/internal/infrastructure/storage"
	"cognitive-crawler/internal/tui"
	"cognitive-crawler/internal/version"
	"cognitive-crawler/pkg/logger"

	"github.com/gdamore/tcell/v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Конфигурация
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Master seed of the run")
	flag.StringVar(&cfg.SaveSlot, "slot", cfg.SaveSlot, "Save slot name")
	autoplay := flag.Int("autoplay", 0, "Play N steps with the bot without a terminal")
	flag.Parse()
	cfg.ResolveSeed()

	// 2. Логи в файл: терминал занят интерфейсом
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger.SetOutput(logFile)
	logger.Log.Info(version.String())

	// 3. Хранилище и сервис
	ctx := context.Background()
	store, err := storage.Open(ctx, cfg.SaveDB)
	if err != nil {
		return err
	}
	defer store.Close()

	service := engine.NewService(store, engine.Options{
		Seed:      cfg.Seed,
		MapWidth:  cfg.MapWidth,
		MapHeight: cfg.MapHeight,
		Slot:      cfg.SaveSlot,
	})

	if *autoplay > 0 {
		return runAutoplay(ctx, service, *autoplay)
	}

	// 4. Экран
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	app := tui.NewApp(screen, service)
	if err := app.Start(ctx); err != nil {
		return err
	}
	return app.Run(ctx)
}

// runAutoplay играет ботом новый забег и печатает итог.
func runAutoplay(ctx context.Context, service *engine.GameService, steps int) error {
	session, err := service.NewGame()
	if err != nil {
		return err
	}
	report, err := agent.NewBot().Play(ctx, service, session, steps)
	if err != nil {
		return err
	}
	fmt.Println(report)
	return nil
}
