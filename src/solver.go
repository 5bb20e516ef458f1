package main

import (
	// stdlib
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	// internal
	"github.com/Robogera/hillclimb/pkg/config"
	"github.com/Robogera/hillclimb/pkg/enums"
	"github.com/Robogera/hillclimb/pkg/hill"
	"github.com/Robogera/hillclimb/pkg/render"
	"github.com/Robogera/hillclimb/pkg/rpath"
)

// Outcome of a single run, unreachable goals are left nil
type Report struct {
	Input      string `json:"input"`
	FromStart  *int   `json:"from_start,omitempty"`
	FromLowest *int   `json:"from_lowest,omitempty"`
}

func readMap(path string) (*hill.Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ERR_BAD_INPUT, err)
	}
	defer f.Close()
	m, err := hill.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ERR_BAD_INPUT, err)
	}
	return m, nil
}

func solver(
	ctx context.Context,
	parent_logger *slog.Logger,
	cfg *config.ConfigFile,
	base_dir string,
) error {
	logger := parent_logger.With("coroutine", "solver")

	input_path := rpath.Convert(base_dir, cfg.Input.Path)
	m, err := readMap(input_path)
	if err != nil {
		logger.Error("Can't load height map", "path", input_path, "error", err)
		return err
	}
	logger.Info("Height map loaded", "path", input_path, "rows", m.Rows(), "cols", m.Cols())
	logger.Debug("Height map", "map", "\n"+m.String())

	report := Report{Input: input_path}
	mode := *enums.SearchModes.Parse(cfg.Search.Mode)
	var best hill.Result

	if mode == enums.ModeSingle || mode == enums.ModeBoth {
		result, err := m.ShortestPath(m.Start)
		switch {
		case errors.Is(err, hill.ERR_UNREACHABLE):
			logger.Warn("End is unreachable from start", "start", m.Start, "end", m.End)
		case err != nil:
			return err
		default:
			logger.Info("Fewest steps from start",
				"steps", result.Steps,
				"pops", result.Stats.Pops,
				"relaxations", result.Stats.Relaxations)
			report.FromStart = &result.Steps
			best = result
		}
	}

	if ctx.Err() != nil {
		return ERR_CANCELLED_BY_CONTEXT
	}

	if mode == enums.ModeLowest || mode == enums.ModeBoth {
		result, err := m.FewestStepsFromLowest(ctx, cfg.Search.Workers)
		switch {
		case errors.Is(err, hill.ERR_UNREACHABLE):
			logger.Warn("End is unreachable from every lowest point", "end", m.End)
		case errors.Is(err, context.Canceled):
			return ERR_CANCELLED_BY_CONTEXT
		case err != nil:
			return err
		default:
			logger.Info("Fewest steps from any lowest point",
				"steps", result.Steps,
				"from", result.Path[0],
				"searches", len(m.Lowest()),
				"pops", result.Stats.Pops,
				"relaxations", result.Stats.Relaxations)
			report.FromLowest = &result.Steps
			best = result
		}
		if cfg.Search.CrossCheck {
			if err := crossCheck(logger, m, result); err != nil {
				return err
			}
		}
	}

	if cfg.Render.Enabled {
		if err := renderPath(logger, m, best, cfg.Render, base_dir); err != nil {
			return err
		}
	}

	if cfg.Publish.Enabled {
		if err := publish(ctx, logger, cfg.Publish, report); err != nil {
			logger.Error("Can't publish report", "address", cfg.Publish.Address, "error", err)
			return err
		}
	}
	return nil
}

// Compares the parallel search with a single reverse one
func crossCheck(logger *slog.Logger, m *hill.Map, result hill.Result) error {
	reverse, err := m.FewestStepsFromLowestReverse()
	if err != nil && !errors.Is(err, hill.ERR_UNREACHABLE) {
		return err
	}
	if reverse.Steps != result.Steps {
		logger.Error("Reverse search disagrees", "parallel", result.Steps, "reverse", reverse.Steps)
		return fmt.Errorf("%d vs %d: %w", result.Steps, reverse.Steps, ERR_CROSS_CHECK)
	}
	logger.Debug("Reverse search agrees", "steps", reverse.Steps, "pops", reverse.Stats.Pops)
	return nil
}

func renderPath(
	logger *slog.Logger,
	m *hill.Map,
	result hill.Result,
	cfg config.RenderConfig,
	base_dir string,
) error {
	out_path := rpath.Convert(base_dir, cfg.Path)
	f, err := os.Create(out_path)
	if err != nil {
		return fmt.Errorf("Can't create %s: %w", out_path, err)
	}
	defer f.Close()
	err = render.PNG(f, m, result.Path, render.Options{
		Scale: cfg.Scale,
		Low:   cfg.Low,
		High:  cfg.High,
		Path:  cfg.PathColor,
	})
	if err != nil {
		return err
	}
	logger.Info("Path rendered", "path", out_path, "cells", len(result.Path))
	return nil
}
