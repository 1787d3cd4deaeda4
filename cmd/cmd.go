// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/skim/internal/formatter"
	"github.com/urfave/cli/v3"
)

// tuiCommand returns the interactive summarizer form. It is also the default action.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive summarizer form",
		Action:  r.TUI,
	}
}

// summarizeCommand runs one submission without the TUI
func summarizeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "summarize",
		Aliases: []string{"sum", "s"},
		Usage:   "Summarize an article URL (reads the first URL on stdin when omitted)",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "copy",
				Usage: "Copy the summary to the clipboard",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output JSON (shorthand for --format json)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, markdown, or json",
				Value:   formatter.FormatText,
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "Wrap text output at this many columns (0 disables wrapping)",
				Value: formatter.DefaultWidth,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the result to a file instead of stdout",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Hide the progress spinner",
			},
		},
		Action: r.Summarize,
	}
}

// serveCommand runs the summarization service
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the summarization HTTP service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Interface to listen on (overrides server.host)",
			},
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to listen on (overrides server.port)",
			},
		},
		Action: r.Serve,
	}
}

// setupCommand handles setup operations for configuration and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "config",
				Usage: "Write a config file from the built-in template",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   r.configPath,
					},
				},
				Action: r.SetupConfig,
			},
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   r.configPath,
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Undo the most recent database migration",
				Action: r.SetupRollback,
			},
		},
	}
}

// cacheCommand inspects and maintains the service's summary cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect and maintain the summary cache",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List cached summaries, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "provider",
						Usage: "Only show summaries from this provider",
					},
					&cli.StringFlag{
						Name:  "language",
						Usage: "Only show summaries of articles in this language (ISO 639-1)",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries to show",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.CacheList,
			},
			{
				Name:   "prune",
				Usage:  "Delete expired summaries",
				Action: r.CachePrune,
			},
			{
				Name:   "clear",
				Usage:  "Delete every cached summary",
				Action: r.CacheClear,
			},
			{
				Name:      "warm",
				Usage:     "Summarize a list of URLs ahead of time",
				ArgsUsage: "[url...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "file",
						Usage: "Read URLs from a file (any text; URLs are extracted)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent workers (max 10)",
						Value: 3,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Article fetches started per second",
						Value: 2,
					},
				},
				Action: r.CacheWarm,
			},
		},
	}
}

// healthCommand checks the configured summarization service
func healthCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "health",
		Usage:  "Check that the summarization service is reachable",
		Action: r.Health,
	}
}
