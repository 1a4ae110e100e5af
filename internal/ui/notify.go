package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Severity of a toast.
type Severity int

const (
	SeveritySuccess Severity = iota
	SeverityError
	SeverityWarning
)

// ToastMsg carries one notification to the status bar.
type ToastMsg struct {
	Level Severity
	Text  string
}

// Toaster implements sync.Notifier by bridging notifications into the
// Bubble Tea runtime over a buffered channel. Sends never block: a toast
// is dropped rather than stalling a command goroutine when the channel
// is full.
type Toaster struct {
	ch chan ToastMsg
}

// NewToaster creates a toaster with a small buffer.
func NewToaster() *Toaster {
	return &Toaster{ch: make(chan ToastMsg, 16)}
}

func (t *Toaster) Success(msg string) { t.send(ToastMsg{Level: SeveritySuccess, Text: msg}) }
func (t *Toaster) Error(msg string)   { t.send(ToastMsg{Level: SeverityError, Text: msg}) }
func (t *Toaster) Warning(msg string) { t.send(ToastMsg{Level: SeverityWarning, Text: msg}) }

func (t *Toaster) send(msg ToastMsg) {
	select {
	case t.ch <- msg:
	default:
	}
}

// Wait returns a command that delivers the next toast. Call it again after
// handling a ToastMsg to keep listening.
func (t *Toaster) Wait() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-t.ch
		if !ok {
			return nil
		}
		return msg
	}
}
