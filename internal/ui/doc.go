// Package ui implements the interactive summarizer form using bubbletea's Elm architecture.
//
// A single view holds the URL field, the summarize button (a spinner while a request is out),
// an error panel, and a scrollable summary card. Form state lives in an [interaction.Controller];
// the (view) [Model] only forwards key presses to it and renders whatever state it reports.
//
// Requests run as a [tea.Cmd] and come back through the Msg union type, so Update never blocks.
// Copy notifications are shown as a toast that expires on a [tea.Tick] or is dismissed with esc.
//
// Keyboard bindings are listed with charmbracelet/bubbles/help under the form.
package ui
