package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/skim/internal/interaction"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSummaryDone MsgKind = iota
	MsgToastExpired
	MsgBrowserOpened
)

type summaryDone struct {
	req     *interaction.Request
	outcome interaction.Outcome
}

// summaryDoneMsg is the constructor for [MsgSummaryDone]
func summaryDoneMsg(req *interaction.Request, outcome interaction.Outcome) Msg {
	return Msg{kind: MsgSummaryDone, data: summaryDone{req, outcome}}
}

// toastExpiredMsg is the constructor for [MsgToastExpired]
func toastExpiredMsg(id int) Msg {
	return Msg{kind: MsgToastExpired, data: id}
}

// browserOpenedMsg is the constructor for [MsgBrowserOpened]
func browserOpenedMsg(err error) Msg {
	return Msg{kind: MsgBrowserOpened, data: err}
}
