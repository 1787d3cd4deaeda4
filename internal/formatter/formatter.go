// package formatter renders a finished summarize run as plain text, Markdown or JSON
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/skim/internal/interaction"
	"github.com/desertthunder/skim/internal/shared"
)

// Supported output formats
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// DefaultWidth is the wrap width for plain text output.
const DefaultWidth = 80

// Result is the JSON document for a finished run
type Result struct {
	URL     string `json:"url,omitempty"`
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
	Status  int    `json:"status,omitempty"`
}

// ResultOf flattens a state into a [Result].
func ResultOf(s interaction.State) Result {
	switch v := s.(type) {
	case interaction.Succeeded:
		return Result{URL: v.URL, Summary: v.Summary}
	case interaction.Failed:
		return Result{URL: v.URL, Error: v.ErrorMessage, Status: v.Status}
	case interaction.Submitting:
		return Result{URL: v.URL}
	default:
		return Result{Error: interaction.ErrorMessage(s)}
	}
}

// Wrap word-wraps text at width and strips the padding lipgloss adds.
func Wrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	rendered := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(rendered, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.Join(lines, "\n")
}

// ToText renders s as plain text wrapped at width.
func ToText(s interaction.State, width int) []byte {
	var buf bytes.Buffer

	switch v := s.(type) {
	case interaction.Succeeded:
		buf.WriteString(Wrap(v.Summary, width))
		buf.WriteString("\n")
	case interaction.Failed:
		buf.WriteString(fmt.Sprintf("Error: %s\n", v.ErrorMessage))
	default:
		if msg := interaction.ErrorMessage(s); msg != "" {
			buf.WriteString(fmt.Sprintf("Error: %s\n", msg))
		}
	}

	return buf.Bytes()
}

// ToMarkdown renders s as a Markdown document with the source link.
func ToMarkdown(s interaction.State) []byte {
	var buf bytes.Buffer
	r := ResultOf(s)

	if r.Error != "" {
		buf.WriteString("# Summary failed\n\n")
		buf.WriteString(fmt.Sprintf("> %s\n", r.Error))
	} else {
		buf.WriteString("# Summary\n\n")
		buf.WriteString(strings.TrimSpace(r.Summary))
		buf.WriteString("\n")
	}

	if r.URL != "" {
		buf.WriteString(fmt.Sprintf("\n**Source**: <%s>\n", r.URL))
	}

	return buf.Bytes()
}

// ToJSON renders s as indented JSON.
func ToJSON(s interaction.State) ([]byte, error) {
	data, err := json.MarshalIndent(ResultOf(s), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return append(data, '\n'), nil
}

// Render dispatches on format. An empty format means text.
func Render(s interaction.State, format string, width int) ([]byte, error) {
	switch strings.ToLower(format) {
	case "", FormatText, "txt":
		return ToText(s, width), nil
	case FormatMarkdown, "md":
		return ToMarkdown(s), nil
	case FormatJSON:
		return ToJSON(s)
	default:
		return nil, fmt.Errorf("%w: unknown format %q (want text, markdown or json)", shared.ErrInvalidArgument, format)
	}
}

// WriteFile renders s and writes it to path.
func WriteFile(s interaction.State, format, path string) error {
	data, err := Render(s, format, DefaultWidth)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
