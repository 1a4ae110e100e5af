// Package ui hosts the Tasks screen: the Kanban board, the task form,
// the reject dialog, and the status picker, composed under one root
// Bubble Tea model.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aharoni/caseboard/internal/authz"
	"github.com/aharoni/caseboard/internal/board"
	"github.com/aharoni/caseboard/internal/keys"
	"github.com/aharoni/caseboard/internal/model"
	"github.com/aharoni/caseboard/internal/registry"
	appsync "github.com/aharoni/caseboard/internal/sync"
	"github.com/aharoni/caseboard/internal/theme"
	"github.com/aharoni/caseboard/internal/ui/boardview"
	"github.com/aharoni/caseboard/internal/ui/rejectdlg"
	"github.com/aharoni/caseboard/internal/ui/statuspick"
	"github.com/aharoni/caseboard/internal/ui/taskform"
)

// ViewState represents the current active view.
type ViewState int

const (
	ViewBoard ViewState = iota
	ViewForm
	ViewReject
	ViewPicker
)

// Model is the root Bubble Tea model.
type Model struct {
	currentView ViewState
	layout      Layout
	keys        *keys.KeyMap

	engine  *appsync.Engine
	store   *board.Store
	reg     *registry.Registry
	auth    *authz.Authorizer
	session *model.Session
	toaster *Toaster
	poller  *appsync.Poller

	boardView  boardview.Model
	formView   taskform.Model
	rejectView rejectdlg.Model
	pickerView statuspick.Model

	toast *ToastMsg
	ready bool

	// pendingDelete holds the task id armed for the second confirmation
	// press of the irreversible generic delete.
	pendingDelete string
}

// New creates the root model.
func New(
	engine *appsync.Engine,
	store *board.Store,
	reg *registry.Registry,
	auth *authz.Authorizer,
	session *model.Session,
	toaster *Toaster,
	poller *appsync.Poller,
) Model {
	km := keys.DefaultKeyMap()
	return Model{
		currentView: ViewBoard,
		keys:        km,
		engine:      engine,
		store:       store,
		reg:         reg,
		auth:        auth,
		session:     session,
		toaster:     toaster,
		poller:      poller,
		boardView:   boardview.New(store, reg, auth, km, 80, 24),
		formView:    taskform.New(reg, session, 80, 24),
		rejectView:  rejectdlg.New(80, 24),
		pickerView:  statuspick.New(80, 24),
	}
}

// Init loads tasks and reference data and subscribes to notifications.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.engine.Reload(),
		m.engine.LoadReferences(false),
		m.toaster.Wait(),
		m.poller.Start(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = NewLayout(msg.Width, msg.Height)
		m.ready = true
		w, h := msg.Width, m.layout.ContentHeight()
		m.boardView.SetSize(w, h)
		m.formView.SetSize(w, h)
		m.rejectView.SetSize(w, h)
		m.pickerView.SetSize(w, h)
		return m.updateActiveView(msg)

	case ToastMsg:
		m.toast = &msg
		return m, m.toaster.Wait()

	case appsync.TasksReloadedMsg:
		// The store already mirrors the server; the board reads it live.
		return m, nil

	case appsync.PollTickMsg:
		// Defer the background refetch while a transition is still being
		// reconciled so it cannot clobber the optimistic move.
		if m.store.AnyInFlight() {
			return m, m.poller.WaitForNext()
		}
		return m, tea.Batch(m.engine.Reload(), m.poller.WaitForNext())

	case appsync.RefDataLoadedMsg:
		m.boardView.SetRefData(msg.Data)
		m.formView.SetRefData(msg.Data)
		return m, nil

	case appsync.StatusSyncedMsg:
		return m, m.engine.HandleStatusSynced(msg)

	case appsync.MutationDoneMsg:
		return m, m.engine.HandleMutationDone(msg)

	case boardview.MoveRequestMsg:
		return m, m.engine.DragTask(msg.TaskID, msg.Target)

	case boardview.BackToTodoMsg:
		return m, m.engine.MoveBackToTodo(msg.TaskID)

	case boardview.SetStatusMsg:
		if d := m.auth.CanOverrideStatus(); !d.Allowed {
			m.toaster.Warning(d.Reason)
			return m, nil
		}
		task, ok := m.store.Get(msg.TaskID)
		if !ok {
			return m, nil
		}
		m.currentView = ViewPicker
		return m, m.pickerView.Start(task)

	case boardview.NewTaskMsg:
		if d := m.auth.CanCreate(); !d.Allowed {
			m.toaster.Warning(d.Reason)
			return m, nil
		}
		m.currentView = ViewForm
		return m, tea.Batch(
			m.formView.StartCreate(),
			m.engine.LoadReferences(false),
		)

	case boardview.EditTaskMsg:
		task, ok := m.store.Get(msg.TaskID)
		if !ok {
			return m, nil
		}
		if d := m.auth.CanEdit(task); !d.Allowed {
			m.toaster.Warning(d.Reason)
			return m, nil
		}
		m.currentView = ViewForm
		return m, tea.Batch(
			m.formView.StartEdit(task),
			m.engine.LoadReferences(false),
		)

	case boardview.DeleteTaskMsg:
		return m.handleDelete(msg.TaskID)

	case boardview.RefreshMsg:
		return m, tea.Batch(
			m.engine.Reload(),
			m.engine.LoadReferences(true),
		)

	case taskform.SubmitMsg:
		m.currentView = ViewBoard
		if msg.EditID == "" {
			return m, m.engine.CreateTask(msg.Input)
		}
		return m, m.engine.UpdateTask(msg.EditID, msg.Input)

	case taskform.CancelMsg, rejectdlg.CancelMsg, statuspick.CancelMsg:
		m.currentView = ViewBoard
		return m, nil

	case rejectdlg.RejectMsg:
		m.currentView = ViewBoard
		return m, m.engine.RejectRegistration(msg.TaskID, msg.Option, msg.FreeText)

	case statuspick.PickedMsg:
		m.currentView = ViewBoard
		return m, m.engine.OverrideStatus(msg.TaskID, msg.Target)

	case tea.KeyMsg:
		if m.currentView == ViewBoard {
			switch msg.String() {
			case "q", "ctrl+c":
				m.poller.Stop()
				return m, tea.Quit
			}
		}
	}

	return m.updateActiveView(msg)
}

// handleDelete routes a delete request: registration approvals go through
// the admin reject flow; everything else is a generic delete armed by a
// second confirmation press.
func (m Model) handleDelete(taskID string) (tea.Model, tea.Cmd) {
	task, ok := m.store.Get(taskID)
	if !ok {
		return m, nil
	}

	if m.reg.BehaviorOf(task.TypeID) == model.BehaviorRegistrationApproval {
		if d := m.auth.CanReject(task); !d.Allowed {
			m.toaster.Warning(d.Reason)
			return m, nil
		}
		m.currentView = ViewReject
		return m, m.rejectView.Start(taskID)
	}

	if d := m.auth.CanDelete(task); !d.Allowed {
		m.toaster.Warning(d.Reason)
		return m, nil
	}

	if m.pendingDelete == taskID {
		m.pendingDelete = ""
		return m, m.engine.DeleteTask(taskID)
	}
	m.pendingDelete = taskID
	m.toaster.Warning("Deleting is irreversible; press d again to confirm")
	return m, nil
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewBoard:
		m.boardView, cmd = m.boardView.Update(msg)
	case ViewForm:
		m.formView, cmd = m.formView.Update(msg)
	case ViewReject:
		m.rejectView, cmd = m.rejectView.Update(msg)
	case ViewPicker:
		m.pickerView, cmd = m.pickerView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	identity := m.session.Username
	if m.session.Admin {
		identity += " (admin)"
	} else if m.session.Guest {
		identity += " (guest)"
	}

	header := m.layout.RenderHeader("Caseboard / Tasks", identity)
	statusBar := m.layout.RenderStatusBar(m.statusText())

	var content string
	switch m.currentView {
	case ViewBoard:
		content = m.boardView.View()
	case ViewForm:
		content = m.formView.View()
	case ViewReject:
		content = m.rejectView.View()
	case ViewPicker:
		content = m.pickerView.View()
	}

	return m.layout.RenderFrame(header, content, statusBar)
}

// statusText returns the toast when one is pending, otherwise key hints.
func (m Model) statusText() string {
	if m.toast != nil {
		switch m.toast.Level {
		case SeveritySuccess:
			return theme.SuccessStyle.Render(m.toast.Text)
		case SeverityError:
			return theme.ErrorStyle.Render(m.toast.Text)
		default:
			return theme.WarningStyle.Render(m.toast.Text)
		}
	}

	switch m.currentView {
	case ViewForm, ViewReject, ViewPicker:
		return "enter submit | esc cancel"
	default:
		hints := "q quit | ]/[ move | t back to todo | n new | e edit | d delete | f filter | r refresh"
		if summary := m.boardView.FilterSummary(); summary != "" {
			return summary + " | " + hints
		}
		return hints
	}
}
