// Package rejectdlg is the admin-only dialog for rejecting a
// registration-approval task with a reason.
package rejectdlg

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/aharoni/caseboard/internal/form"
	"github.com/aharoni/caseboard/internal/model"
	"github.com/aharoni/caseboard/internal/theme"
)

// RejectMsg is dispatched when the administrator confirms the rejection.
type RejectMsg struct {
	TaskID   string
	Option   string
	FreeText string
}

// CancelMsg is dispatched when the dialog is abandoned.
type CancelMsg struct{}

type bindings struct {
	option   string
	freeText string
}

// Model is the Bubble Tea model for the reject dialog.
type Model struct {
	form   *huh.Form
	fb     *bindings
	taskID string
	errMsg string
	width  int
	height int
}

// New creates a reject dialog model.
func New(width, height int) Model {
	return Model{
		fb:     &bindings{},
		width:  width,
		height: height,
	}
}

// SetSize updates the dialog dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Start opens the dialog for the given task.
func (m *Model) Start(taskID string) tea.Cmd {
	*m.fb = bindings{option: model.RejectReasons[0]}
	m.taskID = taskID
	m.errMsg = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the dialog.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		// The reason is validated before anything leaves the client.
		if _, err := form.ValidateRejectReason(m.fb.option, m.fb.freeText); err != nil {
			m.errMsg = err.Error()
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		taskID, option, text := m.taskID, m.fb.option, m.fb.freeText
		return m, func() tea.Msg {
			return RejectMsg{TaskID: taskID, Option: option, FreeText: text}
		}
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the dialog.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render("Reject Registration")

	content := title + "\n"
	if m.errMsg != "" {
		content += theme.ErrorStyle.Render("• "+m.errMsg) + "\n"
	}
	content += m.form.View()

	return lipgloss.NewStyle().Padding(1, 2).Render(content)
}

func (m *Model) buildForm() *huh.Form {
	opts := make([]huh.Option[string], 0, len(model.RejectReasons))
	for _, r := range model.RejectReasons {
		opts = append(opts, huh.NewOption(r, r))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Reason").
				Description("The reason is sent with the rejection and removes the pending registration").
				Options(opts...).
				Value(&m.fb.option),
			huh.NewText().
				Title("Details").
				Description("Required when selecting Other (max 200 characters)").
				Value(&m.fb.freeText),
		),
	).WithWidth(m.width - 8).WithHeight(m.height - 6)
}
