package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
//
// Letters are left to the URL field, so every action sits on a control key.
type keyMap struct {
	submit  key.Binding
	copy    key.Binding
	open    key.Binding
	dismiss key.Binding
	up      key.Binding
	down    key.Binding
	pgUp    key.Binding
	pgDown  key.Binding
	help    key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "summarize")),
		copy:    key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		open:    key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "open article")),
		dismiss: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		up:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "scroll up")),
		down:    key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "scroll down")),
		pgUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		pgDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		help:    key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "more keys")),
		quit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.submit, k.help, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.submit, k.copy, k.open},
		{k.up, k.down, k.pgUp, k.pgDown},
		{k.dismiss, k.help, k.quit},
	}
}

// scrolls lists the bindings forwarded to the summary viewport.
func (k keyMap) scrolls() []key.Binding {
	return []key.Binding{k.up, k.down, k.pgUp, k.pgDown}
}
