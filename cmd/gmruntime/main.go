package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zeusync/gmruntime/internal/core/config"
	"github.com/zeusync/gmruntime/internal/core/observability/log"
	"github.com/zeusync/gmruntime/internal/injector"
)

func main() {
	configPath := flag.String("config", "", "path to a yaml, toml or json config file")
	dataDir := flag.String("data", "", "game data directory (overrides config)")
	dumpFunctions := flag.Bool("dump-functions", false, "write the functions used by the game's code")
	logLevel := flag.String("log-level", "", "debug, info, warn or error (overrides config)")
	flag.Parse()

	cfg, err := config.Resolve(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *dumpFunctions {
		cfg.DumpFunctions = true
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err = cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err = run(ctx, cfg); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger := log.Provide()
	logger.SetLevel(cfg.Level())
	defer func() { _ = logger.Sync() }()

	l, err := injector.InitializeLoader(cfg)
	if err != nil {
		logger.Error("failed to build loader", log.Err(err))
		return err
	}

	f, err := os.Open(cfg.PackPath())
	if err != nil {
		logger.Error("failed to open pack", log.String("path", cfg.PackPath()), log.Err(err))
		return err
	}
	defer f.Close()

	cat, err := l.Load(ctx, f)
	if err != nil {
		return err
	}
	defer cat.Close()

	stats := cat.Stats()
	logger.Info("catalog ready",
		log.String("game", cat.Header.DisplayName),
		log.Int("scripts", stats.Scripts),
		log.Int("code", stats.Code),
		log.Int("objects", stats.Objects),
		log.Int("rooms", stats.Rooms),
		log.Int("instances", stats.Instances),
		log.Int("sprites", stats.Sprites),
		log.Int("texture_pages", stats.TexturePages),
		log.Int("sounds", stats.Sounds),
		log.Int("paths", stats.Paths),
	)
	return nil
}
