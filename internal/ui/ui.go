package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/skim/internal/formatter"
	"github.com/desertthunder/skim/internal/interaction"
	"github.com/desertthunder/skim/internal/shared"
)

const (
	title       = "Article Summarizer"
	subtitle    = "Paste a URL and get a short, readable summary"
	placeholder = "https://example.com/article"

	defaultWidth   = 80
	summaryHeight  = 12
	maxInputLength = 2048
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	ctrl     *interaction.Controller
	logger   *log.Logger
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model
	help     help.Model
	keys     keyMap
	toast    *interaction.Notification
	toastID  int
	open     func(string) error
	width    int
	height   int
}

// NewModel creates a new TUI model over a fresh [interaction.Controller].
//
// clip may be nil, in which case copying reports an error notification.
func NewModel(ctx context.Context, client interaction.Client, clip interaction.Clipboard, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = "› "
	input.CharLimit = maxInputLength
	input.Width = defaultWidth - 4
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.ok

	m := &Model{
		ctx:      ctx,
		logger:   logger,
		input:    input,
		spinner:  sp,
		viewport: viewport.New(defaultWidth-4, summaryHeight),
		help:     help.New(),
		keys:     newKeyMap(),
		open:     shared.OpenBrowser,
		width:    defaultWidth,
	}

	m.ctrl = interaction.NewController(interaction.Options{
		Client:    client,
		Clipboard: clip,
		Notifier:  interaction.NotifierFunc(m.notify),
		Logger:    logger,
	})
	return m
}

// Controller exposes the form state for callers that drive the model outside a program.
func (m *Model) Controller() *interaction.Controller {
	return m.ctrl
}

// Init starts the cursor blink in the URL field.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case spinner.TickMsg:
		if m.ctrl.State().Kind() != interaction.KindSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the form for the current state.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render(title) + "\n")
	b.WriteString(styles.subtitle.Render(subtitle) + "\n")
	b.WriteString(styles.label.Render("Article URL") + "\n")
	b.WriteString(m.input.View() + "\n\n")
	b.WriteString(m.renderButton() + "\n")

	state := m.ctrl.State()
	if msg := interaction.ErrorMessage(state); msg != "" {
		b.WriteString("\n" + styles.alert.Width(m.contentWidth()).Render(msg) + "\n")
	}

	if _, ok := state.(interaction.Succeeded); ok {
		header := styles.ok.Render("Summary")
		card := lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View())
		b.WriteString("\n" + styles.card.Render(card) + "\n")
	}

	if m.toast != nil {
		b.WriteString("\n" + m.renderToast() + "\n")
	}

	if m.help.ShowAll {
		b.WriteString("\n" + m.help.View(m.keys))
	} else {
		b.WriteString("\n" + m.help.ShortHelpView(m.helpKeys()))
	}
	return b.String()
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.submit):
		return m, m.submit()

	case key.Matches(msg, m.keys.copy):
		if err := m.ctrl.Copy(); err != nil {
			m.logger.Debug("copy", "error", err)
		}
		return m, m.expireToast()

	case key.Matches(msg, m.keys.open):
		return m, m.openArticle()

	case key.Matches(msg, m.keys.dismiss):
		m.dismissToast()
		return m, nil

	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.scrolls()...):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetInput(m.input.Value())
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgSummaryDone:
		done := msg.data.(summaryDone)
		if done.req != m.ctrl.Pending() {
			m.logger.Debug("dropping result of a superseded request", "url", done.req.URL)
			return m, nil
		}
		state := m.ctrl.Complete(done.req, done.outcome)
		if s, ok := state.(interaction.Succeeded); ok {
			m.viewport.SetContent(formatter.Wrap(s.Summary, m.viewport.Width))
			m.viewport.GotoTop()
		}
		return m, nil

	case MsgToastExpired:
		if id := msg.data.(int); id == m.toastID {
			m.toast = nil
		}
		return m, nil

	case MsgBrowserOpened:
		if err, _ := msg.data.(error); err != nil {
			m.logger.Warn("open article failed", "error", err)
			m.notify(interaction.Notification{
				Title:       "Could not open article",
				Description: err.Error(),
				Status:      interaction.StatusError,
				Duration:    interaction.NotificationDuration,
				Dismissible: true,
			})
			return m, m.expireToast()
		}
		return m, nil
	}

	return m, nil
}

// submit hands the typed URL to the controller and, when a request was issued, runs it off the event loop.
func (m *Model) submit() tea.Cmd {
	if !m.ctrl.CanSubmit() {
		return nil
	}

	req := m.ctrl.Submit()
	if req == nil {
		return nil
	}

	ctx := m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return summaryDoneMsg(req, req.Do(ctx))
	})
}

func (m *Model) openArticle() tea.Cmd {
	var url string
	switch s := m.ctrl.State().(type) {
	case interaction.Succeeded:
		url = s.URL
	case interaction.Failed:
		url = s.URL
	default:
		return nil
	}

	open := m.open
	return func() tea.Msg {
		return browserOpenedMsg(open(url))
	}
}

func (m *Model) notify(n interaction.Notification) {
	m.toastID++
	m.toast = &n
}

func (m *Model) dismissToast() {
	if m.toast != nil && m.toast.Dismissible {
		m.toast = nil
	}
}

func (m *Model) expireToast() tea.Cmd {
	if m.toast == nil {
		return nil
	}
	id := m.toastID
	return tea.Tick(m.toast.Duration, func(time.Time) tea.Msg {
		return toastExpiredMsg(id)
	})
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	w := m.contentWidth()
	m.input.Width = w - 2
	m.viewport.Width = w - 2
	m.help.Width = w

	if h := height - 16; h > 3 && h < summaryHeight {
		m.viewport.Height = h
	} else if h >= summaryHeight {
		m.viewport.Height = summaryHeight
	}

	if s, ok := m.ctrl.State().(interaction.Succeeded); ok {
		m.viewport.SetContent(formatter.Wrap(s.Summary, m.viewport.Width))
	}
}

func (m *Model) contentWidth() int {
	if m.width <= 0 || m.width > defaultWidth {
		return defaultWidth - 4
	}
	return m.width - 4
}

func (m *Model) renderButton() string {
	switch {
	case m.ctrl.State().Kind() == interaction.KindSubmitting:
		return m.spinner.View() + " " + styles.warn.Render("Summarizing...")
	case m.ctrl.CanSubmit():
		return styles.button.Render("Summarize")
	default:
		return styles.disabled.Render("Summarize")
	}
}

func (m *Model) renderToast() string {
	t := m.toast
	style := styles.ok
	border := styles.toast.BorderForeground(lipgloss.Color("#04B575"))
	if t.Status == interaction.StatusError {
		style = styles.err
		border = styles.toast.BorderForeground(lipgloss.Color("#FF5F87"))
	}

	body := style.Render(t.Title)
	if t.Description != "" {
		body = fmt.Sprintf("%s\n%s", body, t.Description)
	}
	if t.Dismissible {
		body += "\n" + styles.help.Render("esc to dismiss")
	}
	return border.Render(body)
}

func (m *Model) helpKeys() []key.Binding {
	keys := []key.Binding{m.keys.submit}
	switch m.ctrl.State().(type) {
	case interaction.Succeeded:
		keys = append(keys, m.keys.copy, m.keys.open, m.keys.up, m.keys.down)
	case interaction.Failed:
		keys = append(keys, m.keys.open)
	}
	if m.toast != nil {
		keys = append(keys, m.keys.dismiss)
	}
	return append(keys, m.keys.help, m.keys.quit)
}
