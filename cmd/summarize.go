package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/desertthunder/skim/internal/formatter"
	"github.com/desertthunder/skim/internal/interaction"
	"github.com/desertthunder/skim/internal/shared"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
	"mvdan.cc/xurls/v2"
)

// Summarize runs one submission through the same controller the TUI uses and prints the finished state.
func (r *Runner) Summarize(ctx context.Context, cmd *cli.Command) error {
	if r.service == nil {
		return fmt.Errorf("%w: summarization service not initialized", shared.ErrServiceUnavailable)
	}

	url := cmd.StringArg("url")
	if url == "" {
		found, err := firstURL(r.input)
		if err != nil {
			return err
		}
		url = found
	}

	format := cmd.String("format")
	if cmd.Bool("json") {
		format = formatter.FormatJSON
	}

	ctrl := interaction.NewController(interaction.Options{
		Client:    r.service,
		Clipboard: r.clipboard,
		Notifier:  interaction.NotifierFunc(r.notify),
		Logger:    r.logger,
	})
	ctrl.SetInput(url)

	state := r.runWithProgress(ctx, ctrl, !cmd.Bool("quiet"))

	if path := cmd.String("output"); path != "" {
		if err := formatter.WriteFile(state, format, path); err != nil {
			return err
		}
		r.logger.Info("summary written", "path", path)
	} else {
		data, err := formatter.Render(state, format, int(cmd.Int("width")))
		if err != nil {
			return err
		}
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if msg := interaction.ErrorMessage(state); msg != "" {
		return fmt.Errorf("summarize %s: %s", url, msg)
	}

	if cmd.Bool("copy") {
		if err := ctrl.Copy(); err != nil {
			return err
		}
	}
	return nil
}

// runWithProgress submits the controller's input, showing a spinner on stderr while the request is out.
func (r *Runner) runWithProgress(ctx context.Context, ctrl *interaction.Controller, show bool) interaction.State {
	req := ctrl.Submit()
	if req == nil {
		return ctrl.State()
	}

	if !show {
		return ctrl.Complete(req, req.Do(ctx))
	}

	stop := NewProgress(os.Stderr, -1, "Summarizing...").Spin()
	outcome := req.Do(ctx)
	stop()

	return ctrl.Complete(req, outcome)
}

func (r *Runner) notify(n interaction.Notification) {
	if n.Status == interaction.StatusError {
		r.logger.Error(n.Title, "detail", n.Description)
		return
	}
	r.logger.Info(n.Title, "detail", n.Description)
}

var isTerminal = func(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// firstURL returns the first http(s) URL found in the text read from in.
// An interactive terminal is not read; the url argument is required instead.
func firstURL(in io.Reader) (string, error) {
	if in == nil {
		return "", fmt.Errorf("%w: url", shared.ErrMissingArgument)
	}
	if f, ok := in.(interface{ Fd() uintptr }); ok && isTerminal(f.Fd()) {
		return "", fmt.Errorf("%w: url (pass it as an argument or pipe text on stdin)", shared.ErrMissingArgument)
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}

	urls, err := extractURLs(string(data))
	if err != nil {
		return "", err
	}
	if len(urls) == 0 {
		return "", fmt.Errorf("%w: url (none found on stdin)", shared.ErrMissingArgument)
	}
	return urls[0], nil
}

// extractURLs finds every http(s) URL in text, in order, without duplicates.
func extractURLs(text string) ([]string, error) {
	re, err := xurls.StrictMatchingScheme(`https?://`)
	if err != nil {
		return nil, errors.Join(shared.ErrInvalidInput, err)
	}

	seen := make(map[string]struct{})
	var urls []string
	for _, u := range re.FindAllString(text, -1) {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}
	return urls, nil
}
