// Package taskform is the create/edit form for tasks. The field set is
// derived from the selected type's behavioral tag; submissions are
// validated as a whole so every violation surfaces together.
package taskform

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/aharoni/caseboard/internal/form"
	"github.com/aharoni/caseboard/internal/model"
	"github.com/aharoni/caseboard/internal/refcache"
	"github.com/aharoni/caseboard/internal/registry"
	"github.com/aharoni/caseboard/internal/theme"
)

// SubmitMsg is dispatched when a valid submission is ready. EditID is
// empty for a create.
type SubmitMsg struct {
	Input  form.Input
	EditID string
}

// CancelMsg is dispatched when the user abandons the form.
type CancelMsg struct{}

// phase of the two-step form: the type choice decides the field set.
const (
	phaseType = iota
	phaseFields
)

// formBindings holds field values on the heap so huh's Value() pointers
// remain valid across Bubble Tea model copies.
type formBindings struct {
	typeID         string
	description    string
	dueDate        string
	assigneeID     string
	childID        string
	tutorID        string
	pendingTutorID string
}

// Model is the Bubble Tea model for the task form.
type Model struct {
	form  *huh.Form
	fb    *formBindings
	phase int

	editMode bool
	editID   string

	reg     *registry.Registry
	session *model.Session
	refs    refcache.RefData

	// snapshot lines rendered read-only above the form for types that
	// carry one.
	snapshot []string

	errs []string
	now  func() time.Time

	width  int
	height int
}

// New creates a task form model.
func New(reg *registry.Registry, session *model.Session, width, height int) Model {
	return Model{
		fb:      &formBindings{},
		reg:     reg,
		session: session,
		now:     time.Now,
		width:   width,
		height:  height,
	}
}

// SetRefData supplies the selection option lists.
func (m *Model) SetRefData(refs refcache.RefData) {
	m.refs = refs
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// StartCreate initializes the form for a new task, beginning with the
// type choice limited to the types the session may use.
func (m *Model) StartCreate() tea.Cmd {
	*m.fb = formBindings{}
	m.editMode = false
	m.editID = ""
	m.snapshot = nil
	m.errs = nil
	m.phase = phaseType
	m.form = m.buildTypeForm()
	return m.form.Init()
}

// StartEdit initializes the form for an existing task. The type is fixed:
// current flows do not change a task's type after creation.
func (m *Model) StartEdit(task model.Task) tea.Cmd {
	m.editMode = true
	m.editID = task.ID
	m.errs = nil
	m.fb.typeID = task.TypeID
	m.fb.description = task.Description
	m.fb.dueDate = task.DueDate.Format(form.DateLayout)
	m.fb.assigneeID = task.AssigneeID
	m.fb.childID = deref(task.ChildID)
	m.fb.tutorID = deref(task.TutorID)
	m.fb.pendingTutorID = deref(task.PendingTutorID)
	m.snapshot = snapshotLines(task, m.reg.BehaviorOf(task.TypeID))
	m.phase = phaseFields
	m.form = m.buildFieldsForm()
	return m.form.Init()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		if m.phase == phaseType {
			m.phase = phaseFields
			m.form = m.buildFieldsForm()
			return m, m.form.Init()
		}
		return m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// handleSubmit validates the whole submission. On violations the form is
// rebuilt with the entered values kept and every violation listed above
// it; nothing is emitted until the submission is clean.
func (m Model) handleSubmit() (Model, tea.Cmd) {
	tag := m.reg.BehaviorOf(m.fb.typeID)
	in := form.Normalize(m.input(), tag)

	if err := form.Validate(in, tag, m.now()); err != nil {
		if verrs, ok := err.(form.ValidationErrors); ok {
			m.errs = verrs
		} else {
			m.errs = []string{err.Error()}
		}
		m.form = m.buildFieldsForm()
		return m, m.form.Init()
	}

	m.errs = nil
	editID := m.editID
	return m, func() tea.Msg { return SubmitMsg{Input: in, EditID: editID} }
}

func (m Model) input() form.Input {
	return form.Input{
		TypeID:         m.fb.typeID,
		Description:    m.fb.description,
		DueDate:        strings.TrimSpace(m.fb.dueDate),
		AssigneeID:     m.fb.assigneeID,
		ChildID:        m.fb.childID,
		TutorID:        m.fb.tutorID,
		PendingTutorID: m.fb.pendingTutorID,
	}
}

// View renders the form with any pending violations above it.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.editMode {
		titleText = "Edit Task"
	}
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	var sections []string
	sections = append(sections, titleStyle.Render(titleText))

	if len(m.snapshot) > 0 {
		sections = append(sections, theme.ReadOnlyStyle.Render(strings.Join(m.snapshot, "\n")))
	}
	for _, e := range m.errs {
		sections = append(sections, theme.ErrorStyle.Render("• "+e))
	}
	sections = append(sections, m.form.View())

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(strings.Join(sections, "\n"))
}

func (m *Model) buildTypeForm() *huh.Form {
	visible := m.reg.Visible(m.session)
	opts := make([]huh.Option[string], 0, len(visible))
	for _, t := range visible {
		opts = append(opts, huh.NewOption(t.Name, t.ID))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Task Type").
				Options(opts...).
				Value(&m.fb.typeID),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m *Model) buildFieldsForm() *huh.Form {
	tag := m.reg.BehaviorOf(m.fb.typeID)
	shape := form.FieldsFor(tag)

	fields := []huh.Field{
		huh.NewText().
			Title("Description").
			Value(&m.fb.description),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD").
			Value(&m.fb.dueDate),
		huh.NewSelect[string]().
			Title("Assignee").
			Options(optionList(form.AssigneeCandidates(tag, m.refs.Staff))...).
			Value(&m.fb.assigneeID),
	}

	if shape.ShowChildTutor {
		fields = append(fields,
			huh.NewSelect[string]().
				Title("Child").
				Options(optionalList(m.refs.Children)...).
				Value(&m.fb.childID),
			huh.NewSelect[string]().
				Title("Tutor").
				Options(optionalList(m.refs.Tutors)...).
				Value(&m.fb.tutorID),
		)
	}
	if shape.ShowPendingTutor {
		fields = append(fields,
			huh.NewSelect[string]().
				Title("Pending Tutor").
				Options(optionList(m.refs.PendingTutors)...).
				Value(&m.fb.pendingTutorID),
		)
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

// optionList converts options to huh selections.
func optionList(opts []model.Option) []huh.Option[string] {
	out := make([]huh.Option[string], 0, len(opts))
	for _, o := range opts {
		out = append(out, huh.NewOption(o.Label, o.ID))
	}
	return out
}

// optionalList prepends a "none" choice for optional references.
func optionalList(opts []model.Option) []huh.Option[string] {
	out := []huh.Option[string]{huh.NewOption("None", "")}
	return append(out, optionList(opts)...)
}

// snapshotLines builds the read-only block for a task per its tag.
func snapshotLines(task model.Task, tag model.Behavior) []string {
	switch tag {
	case model.BehaviorFamilyAddition:
		return []string{
			"Names: " + task.Names,
			"Phones: " + task.Phones,
			"Other: " + task.OtherInformation,
		}
	case model.BehaviorTuteeMatch:
		if task.TuteeMatchInfo == nil {
			return nil
		}
		eligible := "not eligible"
		if task.TuteeMatchInfo.Eligible {
			eligible = "eligible"
		}
		return []string{
			"Tutor: " + task.TuteeMatchInfo.TutorName,
			"Tutee: " + task.TuteeMatchInfo.TuteeName,
			"Phone: " + task.TuteeMatchInfo.Phone,
			"Eligibility: " + eligible,
		}
	case model.BehaviorRegistrationApproval:
		lines := make([]string, 0, len(task.UserInfo))
		for k, v := range task.UserInfo {
			lines = append(lines, fmt.Sprintf("%s: %s", k, v))
		}
		sort.Strings(lines)
		return lines
	default:
		return nil
	}
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}
