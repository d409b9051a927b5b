// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/starford/ehwaz/internal/runner"
	"github.com/starford/ehwaz/internal/storage"
)

// Run performs one sync pass with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("script_dir", cfg.Script.Dir),
		slog.String("notebook_dir", cfg.Notebook.Dir),
		slog.String("execution_command", cfg.Execution.Command),
		slog.Duration("execution_timeout", time.Duration(cfg.Execution.Timeout)),
		slog.Int("workers", cfg.Sync.Workers),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Ensure both document directories exist.
	if err := os.MkdirAll(cfg.Script.Dir, 0o755); err != nil {
		return fmt.Errorf("create script dir: %w", err)
	}
	if err := os.MkdirAll(cfg.Notebook.Dir, 0o755); err != nil {
		return fmt.Errorf("create notebook dir: %w", err)
	}

	scripts, err := storage.NewFS(cfg.Script.Dir)
	if err != nil {
		return fmt.Errorf("init script storage: %w", err)
	}
	notebooks, err := storage.NewFS(cfg.Notebook.Dir)
	if err != nil {
		return fmt.Errorf("init notebook storage: %w", err)
	}

	exec := app.executor
	if exec == nil {
		exec = runner.NewNbconvert(cfg.Execution.Command, time.Duration(cfg.Execution.Timeout))
	}

	syncer := NewSyncer(scripts, notebooks, exec, logger, cfg.Sync)
	if err := syncer.Run(ctx); err != nil {
		logger.Error("Sync failed", slog.String("error", err.Error()))
		return err
	}

	return nil
}
