package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/skim/internal/server"
	"github.com/desertthunder/skim/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Serve runs the summarization service until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if host := cmd.String("host"); host != "" {
		cfg.Host = host
	}
	if port := int(cmd.Int("port")); port != 0 {
		cfg.Port = port
	}

	db, err := r.openDatabase()
	if err != nil {
		return err
	}
	defer db.Close()

	engine, err := r.newEngine(db)
	if err != nil {
		return fmt.Errorf("failed to configure summarizer: %w", err)
	}

	pruner, err := tasks.NewPruner(engine, r.config.Cache.PruneSchedule, r.logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, engine, pruner, r.logger)
	r.logger.Info("starting summarization service", "addr", cfg.Addr(), "database", r.config.Database.Path)

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	r.logger.Info("server stopped")
	return nil
}
