package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/Robogera/hillclimb/pkg/config"
	"github.com/lmittmann/tint"
)

func testLogger() *slog.Logger {
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelDebug}))
}

func TestLoggingLevel(t *testing.T) {
	tests := []struct {
		in    string
		level slog.Level
		ok    bool
	}{
		{"debug", slog.LevelDebug, true},
		{"info", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"loud", slog.LevelError, false},
	}
	for _, tt := range tests {
		level, ok := loggingLevel(tt.in)
		if level != tt.level || ok != tt.ok {
			t.Fatalf("loggingLevel(%q) = %v, %v", tt.in, level, ok)
		}
	}
}

func TestSolver(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Input.Path = "../cfg/example.txt"
	cfg.Search.CrossCheck = true
	cfg.Render.Enabled = true
	cfg.Render.Path = filepath.Join(dir, "path.png")

	if err := solver(context.Background(), testLogger(), cfg, "."); err != nil {
		t.Fatalf("Solver failed: %s", err)
	}
	if _, err := os.Stat(cfg.Render.Path); err != nil {
		t.Fatalf("Nothing rendered: %s", err)
	}
}

func TestSolverBadInput(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Path = filepath.Join(t.TempDir(), "missing.txt")
	if err := solver(context.Background(), testLogger(), cfg, "."); !errors.Is(err, ERR_BAD_INPUT) {
		t.Fatalf("Expected %v, got %v", ERR_BAD_INPUT, err)
	}
}

func TestSolverCancelled(t *testing.T) {
	cfg := config.Default()
	cfg.Input.Path = "../cfg/example.txt"
	cfg.Search.Mode = "lowest"
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := solver(ctx, testLogger(), cfg, "."); !errors.Is(err, ERR_CANCELLED_BY_CONTEXT) {
		t.Fatalf("Expected %v, got %v", ERR_CANCELLED_BY_CONTEXT, err)
	}
}
