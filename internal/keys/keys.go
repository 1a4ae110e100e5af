package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the board.
type KeyMap struct {
	// Navigation
	Down     key.Binding
	Up       key.Binding
	ColLeft  key.Binding
	ColRight key.Binding

	// Transitions
	MoveForward key.Binding
	MoveBack    key.Binding
	BackToTodo  key.Binding
	SetStatus   key.Binding

	// CRUD
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding

	// Filters and refresh
	FilterType key.Binding
	Refresh    key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		ColLeft: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "previous column"),
		),
		ColRight: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "next column"),
		),
		MoveForward: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "move forward"),
		),
		MoveBack: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "move backward"),
		),
		BackToTodo: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "back to todo"),
		),
		SetStatus: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "set status"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new task"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete/reject"),
		),
		FilterType: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter type"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
