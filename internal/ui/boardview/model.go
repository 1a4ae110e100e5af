// Package boardview renders the three-column Kanban projection and turns
// key presses into action requests for the root model. It never mutates
// anything itself.
package boardview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aharoni/caseboard/internal/authz"
	"github.com/aharoni/caseboard/internal/board"
	"github.com/aharoni/caseboard/internal/form"
	"github.com/aharoni/caseboard/internal/keys"
	"github.com/aharoni/caseboard/internal/model"
	"github.com/aharoni/caseboard/internal/refcache"
	"github.com/aharoni/caseboard/internal/registry"
	"github.com/aharoni/caseboard/internal/theme"
)

// MoveRequestMsg asks for a drag of the task into the target column.
// Backward targets are emitted too; the sync engine rejects them with a
// warning and no network call.
type MoveRequestMsg struct {
	TaskID string
	Target string
}

// BackToTodoMsg asks for the single-step move-back exception.
type BackToTodoMsg struct{ TaskID string }

// SetStatusMsg asks to open the status picker for the task.
type SetStatusMsg struct{ TaskID string }

// NewTaskMsg asks to open the create form.
type NewTaskMsg struct{}

// EditTaskMsg asks to open the edit form for the task.
type EditTaskMsg struct{ TaskID string }

// DeleteTaskMsg asks to delete (or, for registration approvals, reject)
// the task.
type DeleteTaskMsg struct{ TaskID string }

// RefreshMsg asks for a forced refetch of tasks and reference data.
type RefreshMsg struct{}

// Model is the Bubble Tea model for the Kanban board.
type Model struct {
	store *board.Store
	reg   *registry.Registry
	auth  *authz.Authorizer
	keys  *keys.KeyMap

	refs refcache.RefData

	// typeFilter is an index into filterable types; -1 means all.
	typeFilter int
	types      []model.TaskType

	cursorCol int
	cursorRow int

	width  int
	height int
}

// New creates a board view.
func New(store *board.Store, reg *registry.Registry, auth *authz.Authorizer, km *keys.KeyMap, width, height int) Model {
	return Model{
		store:      store,
		reg:        reg,
		auth:       auth,
		keys:       km,
		typeFilter: -1,
		types:      reg.All(),
		width:      width,
		height:     height,
	}
}

// SetRefData supplies the option lists used to resolve ids to names.
func (m *Model) SetRefData(refs refcache.RefData) {
	m.refs = refs
}

// SetSize updates the board dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// filter returns the active projection filter.
func (m Model) filter() board.Filter {
	if m.typeFilter < 0 || m.typeFilter >= len(m.types) {
		return board.Filter{}
	}
	id := m.types[m.typeFilter].ID
	return board.Filter{TypeID: &id}
}

// columns returns the current projection.
func (m Model) columns() []board.Column {
	return m.store.Projection(m.filter())
}

// SelectedTask returns the task under the cursor.
func (m Model) SelectedTask() (model.Task, bool) {
	cols := m.columns()
	if m.cursorCol >= len(cols) {
		return model.Task{}, false
	}
	col := cols[m.cursorCol]
	if m.cursorRow >= len(col.Tasks) {
		return model.Task{}, false
	}
	return col.Tasks[m.cursorRow], true
}

// Update handles key presses for the board.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		m.cursorRow++
		m.clampCursor()
	case key.Matches(keyMsg, m.keys.Up):
		m.cursorRow--
		m.clampCursor()
	case key.Matches(keyMsg, m.keys.ColLeft):
		m.cursorCol--
		m.clampCursor()
	case key.Matches(keyMsg, m.keys.ColRight):
		m.cursorCol++
		m.clampCursor()

	case key.Matches(keyMsg, m.keys.MoveForward):
		if task, ok := m.SelectedTask(); ok {
			if target, ok := neighborStatus(task.Status, 1); ok {
				return m, request(MoveRequestMsg{TaskID: task.ID, Target: target})
			}
		}
	case key.Matches(keyMsg, m.keys.MoveBack):
		if task, ok := m.SelectedTask(); ok {
			if target, ok := neighborStatus(task.Status, -1); ok {
				return m, request(MoveRequestMsg{TaskID: task.ID, Target: target})
			}
		}
	case key.Matches(keyMsg, m.keys.BackToTodo):
		if task, ok := m.SelectedTask(); ok {
			return m, request(BackToTodoMsg{TaskID: task.ID})
		}
	case key.Matches(keyMsg, m.keys.SetStatus):
		if task, ok := m.SelectedTask(); ok {
			return m, request(SetStatusMsg{TaskID: task.ID})
		}

	case key.Matches(keyMsg, m.keys.New):
		return m, request(NewTaskMsg{})
	case key.Matches(keyMsg, m.keys.Edit):
		if task, ok := m.SelectedTask(); ok {
			return m, request(EditTaskMsg{TaskID: task.ID})
		}
	case key.Matches(keyMsg, m.keys.Delete):
		if task, ok := m.SelectedTask(); ok {
			return m, request(DeleteTaskMsg{TaskID: task.ID})
		}

	case key.Matches(keyMsg, m.keys.FilterType):
		m.typeFilter++
		if m.typeFilter >= len(m.types) {
			m.typeFilter = -1
		}
		m.clampCursor()
	case key.Matches(keyMsg, m.keys.Refresh):
		return m, request(RefreshMsg{})
	}

	return m, nil
}

func request(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// neighborStatus returns the status one column away in the given
// direction within the lifecycle ordering.
func neighborStatus(status string, delta int) (string, bool) {
	idx := model.StatusIndex(status)
	if idx < 0 {
		return "", false
	}
	next := idx + delta
	if next < 0 || next >= len(model.StatusOrder) {
		return "", false
	}
	return model.StatusOrder[next], true
}

func (m *Model) clampCursor() {
	cols := m.columns()
	if len(cols) == 0 {
		m.cursorCol, m.cursorRow = 0, 0
		return
	}
	if m.cursorCol < 0 {
		m.cursorCol = 0
	}
	if m.cursorCol >= len(cols) {
		m.cursorCol = len(cols) - 1
	}
	rows := len(cols[m.cursorCol].Tasks)
	if rows == 0 {
		m.cursorRow = 0
		return
	}
	if m.cursorRow < 0 {
		m.cursorRow = 0
	}
	if m.cursorRow >= rows {
		m.cursorRow = rows - 1
	}
}

// FilterSummary describes the active filter for the status bar.
func (m Model) FilterSummary() string {
	if m.typeFilter < 0 || m.typeFilter >= len(m.types) {
		return ""
	}
	return "type: " + m.types[m.typeFilter].Name
}

// View renders the three columns side by side.
func (m Model) View() string {
	cols := m.columns()
	colWidth := m.width/len(model.StatusOrder) - 4
	if colWidth < 20 {
		colWidth = 20
	}

	rendered := make([]string, 0, len(cols))
	for i, col := range cols {
		rendered = append(rendered, m.renderColumn(col, i, colWidth))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderColumn(col board.Column, idx, width int) string {
	heading := theme.StatusStyle(col.Status).Render(
		fmt.Sprintf("%s (%d)", theme.StatusLabel(col.Status), len(col.Tasks)),
	)

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")

	if len(col.Tasks) == 0 {
		b.WriteString(theme.ReadOnlyStyle.Render("  no tasks"))
	}
	for row, task := range col.Tasks {
		selected := idx == m.cursorCol && row == m.cursorRow
		b.WriteString(m.renderCard(task, selected, width))
		b.WriteString("\n")
	}

	style := theme.ColumnStyle
	if idx == m.cursorCol {
		style = theme.FocusedColumnStyle
	}
	return style.Width(width).Height(m.height - 2).Render(b.String())
}

func (m Model) renderCard(task model.Task, selected bool, width int) string {
	var lines []string

	lines = append(lines, truncate(m.describe(task), width-2))

	t, _ := m.reg.ByID(task.TypeID)
	meta := fmt.Sprintf("%s · %s · due %s",
		t.Name,
		model.LabelFor(m.refs.Staff, task.AssigneeID),
		task.DueDate.Format("02/01/2006"),
	)
	lines = append(lines, truncate(meta, width-2))

	if m.store.InFlight(task.ID) {
		lines = append(lines, theme.WarningStyle.Render("syncing…"))
	}
	if d := m.auth.CanEdit(task); !d.Allowed {
		// Read-only tasks show the reason in place of action controls.
		lines = append(lines, theme.ReadOnlyStyle.Render(truncate(d.Reason, width-2)))
	}

	card := strings.Join(lines, "\n")
	if selected {
		return theme.SelectedCardStyle.Render(card)
	}
	return theme.CardStyle.Render(card)
}

// describe returns the card's first line: generated descriptions are split
// into entity name and reformatted date; the stored value is untouched.
func (m Model) describe(task model.Task) string {
	if name, date, ok := form.SplitGeneratedDescription(task.Description); ok {
		return fmt.Sprintf("%s (%s)", name, date)
	}
	return task.Description
}

func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 1 || len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
