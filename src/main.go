package main

import (
	// stdlib
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	// internal
	"github.com/Robogera/hillclimb/pkg/config"
	"github.com/Robogera/hillclimb/pkg/enums"
	"github.com/Robogera/hillclimb/pkg/rpath"

	// external
	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"
)

const (
	default_cfg_path string = "../cfg/config.default.toml"
)

var cfg_path string
var exe_dir string

func init() {
	var err error

	exe_dir, err = rpath.ExecutableDir()
	if err != nil {
		slog.Error("Can't find the executable's location", "error", err)
		return
	}

	flag.StringVar(
		&cfg_path, "config",
		default_cfg_path,
		"Path to config file")
}

func loggingLevel(level string) (slog.Level, bool) {
	member := enums.LoggingLevels.Parse(level)
	if member == nil {
		return slog.LevelError, false
	}
	switch *member {
	case enums.LoggingLevelDebug:
		return slog.LevelDebug, true
	case enums.LoggingLevelInfo:
		return slog.LevelInfo, true
	case enums.LoggingLevelWarn:
		return slog.LevelWarn, true
	}
	return slog.LevelError, true
}

func main() {

	// Configuration init

	flag.Parse()

	if cfg_path == default_cfg_path {
		cfg_path = rpath.Convert(exe_dir, cfg_path)
	}

	cfg, err := config.Unmarshal(cfg_path)
	if err != nil {
		slog.Error("Config file not loaded. Shutting down...", "provided path", cfg_path, "error", err)
		os.Exit(1)
	}

	log_level, ok := loggingLevel(cfg.Logging.Level)
	if !ok {
		slog.Warn(
			"No valid logging level provided. Defaulting to LevelError",
			"provided value", cfg.Logging.Level)
	}

	logger := slog.New(tint.NewHandler(os.Stdout, &tint.Options{
		Level:      log_level,
		TimeFormat: time.RFC3339,
		AddSource:  log_level == slog.LevelDebug,
	}))

	logger.Info("Starting...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eg, child_ctx := errgroup.WithContext(ctx)

	base_dir := filepath.Dir(cfg_path)

	eg.Go(func() error {
		defer cancel()
		return solver(child_ctx, logger, cfg, base_dir)
	})

	eg.Go(func() error {
		return control(child_ctx, logger)
	})

	if err := eg.Wait(); err != nil {
		logger.Error("Stopped with error", "error", err)
		os.Exit(1)
	}

	logger.Info("Stopped")
}

func control(ctx context.Context, logger *slog.Logger) error {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt,
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGINT)
	defer signal.Stop(interrupt)

	select {
	case <-ctx.Done():
		logger.Debug("Control stopped")
		return nil
	case <-interrupt:
		logger.Info("Cancelled by user")
		return ERR_INTERRUPTED_BY_USER
	}
}
