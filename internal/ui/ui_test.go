package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/skim/internal/interaction"
	"github.com/desertthunder/skim/internal/services"
	tu "github.com/desertthunder/skim/internal/testing"
)

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteAll(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

func typeText(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func press(m *Model, k tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: k})
	return cmd
}

// finish delivers the outcome of the outstanding request as the command would.
func finish(t *testing.T, m *Model, outcome interaction.Outcome) {
	t.Helper()
	req := m.ctrl.Pending()
	if req == nil {
		t.Fatal("no request outstanding")
	}
	m.Update(summaryDoneMsg(req, outcome))
}

func summarized(t *testing.T, clip interaction.Clipboard) *Model {
	t.Helper()
	m := NewModel(context.Background(), &tu.MockClient{Summary: "short version"}, clip, nil)
	typeText(m, "https://example.com/post")
	press(m, tea.KeyEnter)
	finish(t, m, interaction.Outcome{Summary: "short version"})
	if m.ctrl.State().Kind() != interaction.KindSucceeded {
		t.Fatalf("setup: expected success, got %#v", m.ctrl.State())
	}
	return m
}

func TestModel(t *testing.T) {
	t.Run("starts idle with an empty field", func(t *testing.T) {
		m := NewModel(context.Background(), &tu.MockClient{}, nil, nil)
		if m.ctrl.State().Kind() != interaction.KindIdle {
			t.Errorf("expected idle, got %v", m.ctrl.State().Kind())
		}
		if m.Init() == nil {
			t.Error("expected blink command from Init")
		}

		view := m.View()
		for _, want := range []string{"Article Summarizer", "Article URL", "Summarize"} {
			if !strings.Contains(view, want) {
				t.Errorf("view missing %q", want)
			}
		}
	})

	t.Run("typing updates controller input", func(t *testing.T) {
		m := NewModel(context.Background(), &tu.MockClient{}, nil, nil)
		typeText(m, "https://a.io")
		if got := m.ctrl.Input(); got != "https://a.io" {
			t.Errorf("controller input = %q", got)
		}
	})

	t.Run("enter on blank input does nothing", func(t *testing.T) {
		client := &tu.MockClient{}
		m := NewModel(context.Background(), client, nil, nil)
		if cmd := press(m, tea.KeyEnter); cmd != nil {
			t.Error("expected no command")
		}
		if m.ctrl.State().Kind() != interaction.KindIdle {
			t.Errorf("expected idle, got %v", m.ctrl.State().Kind())
		}
	})

	t.Run("invalid url shows validation message", func(t *testing.T) {
		client := &tu.MockClient{}
		m := NewModel(context.Background(), client, nil, nil)
		typeText(m, "not a url")
		if cmd := press(m, tea.KeyEnter); cmd != nil {
			t.Error("expected no request command")
		}
		if m.ctrl.State().Kind() != interaction.KindValidationFailed {
			t.Errorf("expected validation failure, got %v", m.ctrl.State().Kind())
		}
		if !strings.Contains(m.View(), interaction.MsgInvalidURL) {
			t.Error("view missing validation message")
		}
		if len(client.Calls()) != 0 {
			t.Error("client should not be called")
		}
	})

	t.Run("valid url submits and shows spinner", func(t *testing.T) {
		m := NewModel(context.Background(), &tu.MockClient{Summary: "x"}, nil, nil)
		typeText(m, "https://example.com/post")
		if cmd := press(m, tea.KeyEnter); cmd == nil {
			t.Fatal("expected request command")
		}
		if m.ctrl.State().Kind() != interaction.KindSubmitting {
			t.Fatalf("expected submitting, got %v", m.ctrl.State().Kind())
		}
		if !strings.Contains(m.View(), "Summarizing...") {
			t.Error("view missing loading text")
		}
		if cmd := press(m, tea.KeyEnter); cmd != nil {
			t.Error("second submit while in flight should be ignored")
		}
	})

	t.Run("success renders summary card", func(t *testing.T) {
		m := summarized(t, nil)
		view := m.View()
		if !strings.Contains(view, "short version") {
			t.Error("view missing summary")
		}
		if !strings.Contains(view, "Summary") {
			t.Error("view missing summary header")
		}
	})

	t.Run("service failure renders message", func(t *testing.T) {
		m := NewModel(context.Background(), &tu.MockClient{}, nil, nil)
		typeText(m, "https://example.com/post")
		press(m, tea.KeyEnter)
		finish(t, m, interaction.Outcome{Err: &services.ServiceError{Status: 400, Message: "bad input"}})

		if m.ctrl.State().Kind() != interaction.KindFailed {
			t.Fatalf("expected failed, got %v", m.ctrl.State().Kind())
		}
		if !strings.Contains(m.View(), "bad input") {
			t.Error("view missing service message")
		}
	})

	t.Run("transport failure renders generic message", func(t *testing.T) {
		m := NewModel(context.Background(), &tu.MockClient{}, nil, nil)
		typeText(m, "https://example.com/post")
		press(m, tea.KeyEnter)
		finish(t, m, interaction.Outcome{Err: errors.New("dial tcp: refused")})

		if !strings.Contains(m.View(), interaction.MsgUnexpected) {
			t.Error("view missing unexpected error message")
		}
	})

	t.Run("f1 toggles full help", func(t *testing.T) {
		m := NewModel(context.Background(), &tu.MockClient{}, nil, nil)
		if strings.Contains(m.View(), "page down") {
			t.Fatal("full help shown before toggle")
		}
		press(m, tea.KeyF1)
		if !strings.Contains(m.View(), "page down") {
			t.Error("expected full help after f1")
		}
	})

	t.Run("ctrl+c quits", func(t *testing.T) {
		m := NewModel(context.Background(), &tu.MockClient{}, nil, nil)
		cmd := press(m, tea.KeyCtrlC)
		if cmd == nil {
			t.Fatal("expected quit command")
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Error("expected tea.QuitMsg")
		}
	})
}

func TestModelToast(t *testing.T) {
	t.Run("copy shows toast and schedules expiry", func(t *testing.T) {
		clip := &fakeClipboard{}
		m := summarized(t, clip)

		if cmd := press(m, tea.KeyCtrlY); cmd == nil {
			t.Error("expected expiry command")
		}
		if clip.text != "short version" {
			t.Errorf("clipboard holds %q", clip.text)
		}
		if m.toast == nil || m.toast.Title != "Copied!" {
			t.Fatalf("unexpected toast %+v", m.toast)
		}
		if !strings.Contains(m.View(), "Summary copied to clipboard.") {
			t.Error("view missing toast description")
		}
	})

	t.Run("superseded result keeps the scroll position", func(t *testing.T) {
		long := strings.Repeat("word ", 400)
		m := NewModel(context.Background(), &tu.MockClient{Summary: long}, &fakeClipboard{}, nil)
		m.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
		typeText(m, "https://example.com/post")
		press(m, tea.KeyEnter)
		finish(t, m, interaction.Outcome{Summary: long})

		m.viewport.SetYOffset(3)
		offset := m.viewport.YOffset
		if offset == 0 {
			t.Fatal("setup: expected a scrollable summary")
		}

		old := &interaction.Request{ID: "old", URL: "https://example.com/old"}
		m.Update(summaryDoneMsg(old, interaction.Outcome{Summary: "stale"}))

		if m.viewport.YOffset != offset {
			t.Errorf("expected offset %d to survive, got %d", offset, m.viewport.YOffset)
		}
		s, ok := m.ctrl.State().(interaction.Succeeded)
		if !ok || s.Summary != long {
			t.Errorf("superseded result changed state to %#v", m.ctrl.State())
		}
	})

	t.Run("stale expiry keeps newer toast", func(t *testing.T) {
		m := summarized(t, &fakeClipboard{})
		press(m, tea.KeyCtrlY)
		first := m.toastID
		press(m, tea.KeyCtrlY)

		m.Update(toastExpiredMsg(first))
		if m.toast == nil {
			t.Fatal("stale expiry removed the current toast")
		}

		m.Update(toastExpiredMsg(m.toastID))
		if m.toast != nil {
			t.Error("expected toast to expire")
		}
	})

	t.Run("esc dismisses toast", func(t *testing.T) {
		m := summarized(t, &fakeClipboard{})
		press(m, tea.KeyCtrlY)
		press(m, tea.KeyEsc)
		if m.toast != nil {
			t.Error("expected toast dismissed")
		}
	})

	t.Run("clipboard failure shows error toast", func(t *testing.T) {
		m := summarized(t, &fakeClipboard{err: errors.New("no display")})
		press(m, tea.KeyCtrlY)
		if m.toast == nil || m.toast.Status != interaction.StatusError {
			t.Fatalf("expected error toast, got %+v", m.toast)
		}
		if m.ctrl.State().Kind() != interaction.KindSucceeded {
			t.Error("copy failure must not change state")
		}
	})

	t.Run("copy without summary does nothing", func(t *testing.T) {
		m := NewModel(context.Background(), &tu.MockClient{}, &fakeClipboard{}, nil)
		if cmd := press(m, tea.KeyCtrlY); cmd != nil {
			t.Error("expected no command")
		}
		if m.toast != nil {
			t.Error("expected no toast")
		}
	})
}

func TestModelOpenArticle(t *testing.T) {
	t.Run("opens succeeded url", func(t *testing.T) {
		m := summarized(t, nil)
		var opened string
		m.open = func(u string) error { opened = u; return nil }

		cmd := press(m, tea.KeyCtrlO)
		if cmd == nil {
			t.Fatal("expected open command")
		}
		m.Update(cmd())
		if opened != "https://example.com/post" {
			t.Errorf("opened %q", opened)
		}
		if m.toast != nil {
			t.Error("successful open should not raise a toast")
		}
	})

	t.Run("open failure raises error toast", func(t *testing.T) {
		m := summarized(t, nil)
		m.open = func(string) error { return errors.New("no browser") }

		m.Update(press(m, tea.KeyCtrlO)())
		if m.toast == nil || m.toast.Status != interaction.StatusError {
			t.Fatalf("expected error toast, got %+v", m.toast)
		}
	})

	t.Run("nothing to open while idle", func(t *testing.T) {
		m := NewModel(context.Background(), &tu.MockClient{}, nil, nil)
		if cmd := press(m, tea.KeyCtrlO); cmd != nil {
			t.Error("expected no command")
		}
	})
}

func TestModelResize(t *testing.T) {
	m := summarized(t, nil)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 20})

	if m.viewport.Width != 34 {
		t.Errorf("viewport width = %d", m.viewport.Width)
	}
	if m.viewport.Height < 1 || m.viewport.Height > summaryHeight {
		t.Errorf("viewport height = %d", m.viewport.Height)
	}
}
