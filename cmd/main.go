package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/skim/internal/services"
	"github.com/desertthunder/skim/internal/shared"
	"github.com/urfave/cli/v3"
)

const (
	defaultConfigPath = "config.toml"
	configPathEnv     = "SKIM_CONFIG"
)

// loadConfig reads the config file named by SKIM_CONFIG, or config.toml when unset, then overlays the environment.
// A file named explicitly through SKIM_CONFIG must exist.
func loadConfig(getenv func(string) string, envFiles ...string) (*shared.Config, string, error) {
	path, required := defaultConfigPath, false
	if p := getenv(configPathEnv); p != "" {
		path, required = p, true
	}

	config, err := shared.ResolveConfig(path, required)
	if err != nil {
		return nil, path, err
	}
	if err := shared.LoadEnv(config, envFiles...); err != nil {
		return nil, path, err
	}
	if err := config.Validate(); err != nil {
		return nil, path, err
	}
	return config, path, nil
}

func main() {
	logger := shared.NewLogger(nil)

	config, configPath, err := loadConfig(os.Getenv, shared.DefaultEnvFiles...)
	if err != nil {
		logger.Fatalf("configuration error: %v", err)
	}

	timeout := time.Duration(config.Client.TimeoutSeconds) * time.Second
	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Service:    services.NewSummaryService(config.Client.ServiceBaseURL, timeout),
		Clipboard:  shared.SystemClipboard{},
		Logger:     logger,
	})

	app := &cli.Command{
		Name:    "skim",
		Usage:   "Summarize articles from the terminal",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") {
				shared.SetLogLevel(logger, log.DebugLevel)
			}
			return ctx, nil
		},
		Action:   runner.TUI,
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}
