package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/skim/internal/shared"
	"github.com/urfave/cli/v3"
)

// Health checks that the configured summarization service answers on GET /.
func (r *Runner) Health(ctx context.Context, cmd *cli.Command) error {
	if r.service == nil {
		return fmt.Errorf("%w: summarization service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Debug("checking service health", "service", r.service.Name())

	message, err := r.service.Health(ctx)
	if err != nil {
		return fmt.Errorf("service %s is unhealthy: %w", r.service.Name(), err)
	}

	r.writePlain("✓ %s\n", r.service.Name())
	if message != "" {
		r.writePlain("  %s\n", message)
	}
	return nil
}
