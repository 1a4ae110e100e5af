package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/aharoni/caseboard/internal/theme"
)

// Layout manages the terminal frame: a one-line header, the content area,
// and a one-line status bar.
type Layout struct {
	Width  int
	Height int
}

// NewLayout creates a Layout with the given terminal dimensions.
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height}
}

// ContentHeight returns the height available for the content area.
func (l Layout) ContentHeight() int {
	return l.Height - 2
}

// renderBar renders a full-width bar in the given style with left text.
func (l Layout) renderBar(style lipgloss.Style, left, right string) string {
	leftRendered := style.Render(left)
	rightRendered := style.Align(lipgloss.Right).Render(right)

	gap := l.Width - lipgloss.Width(leftRendered) - lipgloss.Width(rightRendered)
	if gap < 0 {
		gap = 0
	}
	filler := style.Render(
		lipgloss.NewStyle().
			Width(gap).
			Background(style.GetBackground()).
			Render(""),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftRendered, filler, rightRendered)
}

// RenderHeader renders the top header bar with the title and the session
// identity.
func (l Layout) RenderHeader(title, identity string) string {
	return l.renderBar(theme.HeaderStyle, title, identity)
}

// RenderStatusBar renders the bottom bar with either a toast or key hints.
func (l Layout) RenderStatusBar(text string) string {
	return l.renderBar(theme.StatusBarStyle, text, "")
}

// RenderFrame composes the full terminal view.
func (l Layout) RenderFrame(header, content, statusBar string) string {
	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}
