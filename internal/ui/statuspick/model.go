// Package statuspick is the administrative status picker: the named
// escape hatch that can set any status directly, bypassing the
// forward-only drag rule.
package statuspick

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/aharoni/caseboard/internal/model"
	"github.com/aharoni/caseboard/internal/theme"
)

// PickedMsg is dispatched when a target status has been chosen.
type PickedMsg struct {
	TaskID string
	Target string
}

// CancelMsg is dispatched when the picker is abandoned.
type CancelMsg struct{}

// Model is the Bubble Tea model for the status picker.
type Model struct {
	form   *huh.Form
	target *string
	taskID string
	width  int
	height int
}

// New creates a status picker model.
func New(width, height int) Model {
	target := ""
	return Model{target: &target, width: width, height: height}
}

// SetSize updates the picker dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Start opens the picker for the given task.
func (m *Model) Start(task model.Task) tea.Cmd {
	*m.target = task.Status
	m.taskID = task.ID

	opts := make([]huh.Option[string], 0, len(model.StatusOrder))
	for _, s := range model.StatusOrder {
		opts = append(opts, huh.NewOption(theme.StatusLabel(s), s))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Set Status").
				Description("Administrative override; any direction is allowed").
				Options(opts...).
				Value(m.target),
		),
	).WithWidth(m.width - 8).WithHeight(m.height - 6)
	return m.form.Init()
}

// Update handles messages for the picker.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		taskID, target := m.taskID, *m.target
		return m, func() tea.Msg { return PickedMsg{TaskID: taskID, Target: target} }
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the picker.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
}
