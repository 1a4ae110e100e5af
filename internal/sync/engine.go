// Package sync implements the committing path between the local task
// mirror and the server. Every committing action validates first, applies
// an optimistic local mutation for status transitions only, issues the
// remote command, and reconciles by full refetch whatever the outcome.
package sync

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/aharoni/caseboard/internal/api"
	"github.com/aharoni/caseboard/internal/authz"
	"github.com/aharoni/caseboard/internal/board"
	"github.com/aharoni/caseboard/internal/form"
	"github.com/aharoni/caseboard/internal/model"
	"github.com/aharoni/caseboard/internal/refcache"
	"github.com/aharoni/caseboard/internal/registry"
)

// commandTimeout is the maximum time allowed for a single remote command.
const commandTimeout = 30 * time.Second

// TaskAPI is the slice of the API client the engine drives.
type TaskAPI interface {
	ListTasks(ctx context.Context) ([]model.Task, error)
	CreateTask(ctx context.Context, req api.TaskRequest) error
	UpdateTask(ctx context.Context, id string, req api.TaskRequest) error
	UpdateTaskStatus(ctx context.Context, id, status string) error
	DeleteTask(ctx context.Context, id, reason string) error
}

// TasksReloadedMsg is sent when a full refetch of tasks completes. The
// store already holds the server's view by the time it is delivered.
type TasksReloadedMsg struct {
	Err error
}

// RefDataLoadedMsg is sent when the reference-data load completes.
type RefDataLoadedMsg struct {
	Data     refcache.RefData
	Failures []refcache.SourceError
}

// StatusSyncedMsg is sent when a remote status update returns.
type StatusSyncedMsg struct {
	TaskID string
	Target string
	Err    error
}

// MutationDoneMsg is sent when a non-optimistic remote command returns.
type MutationDoneMsg struct {
	Op     string // "create", "update", "delete", "reject"
	TaskID string
	Err    error
}

// Engine orchestrates validated mutations and reconciliation.
type Engine struct {
	api     TaskAPI
	store   *board.Store
	refs    *refcache.Loader
	reg     *registry.Registry
	auth    *authz.Authorizer
	session *model.Session
	notify  Notifier
	log     zerolog.Logger
	now     func() time.Time
}

// New creates a sync engine. The notifier receives every user-visible
// outcome; no failure path is ever silent.
func New(
	taskAPI TaskAPI,
	store *board.Store,
	refs *refcache.Loader,
	reg *registry.Registry,
	auth *authz.Authorizer,
	session *model.Session,
	notify Notifier,
	log zerolog.Logger,
) *Engine {
	return &Engine{
		api:     taskAPI,
		store:   store,
		refs:    refs,
		reg:     reg,
		auth:    auth,
		session: session,
		notify:  notify,
		log:     log.With().Str("component", "sync").Logger(),
		now:     time.Now,
	}
}

// Reload refetches the full task list and replaces the store with the
// server's view. This is the reconciliation step every committing action
// ends in.
func (e *Engine) Reload() tea.Cmd {
	return e.reloadAndClear("")
}

// reloadAndClear refetches tasks and, when taskID is non-empty, clears its
// in-flight marker once the refetch has settled. Reconciliation of a
// transition completes exactly here, so the fence lifts only after the
// store reflects server truth again.
func (e *Engine) reloadAndClear(taskID string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		tasks, err := e.api.ListTasks(ctx)
		if err == nil {
			e.store.Replace(tasks)
		} else {
			e.log.Error().Err(err).Msg("task refetch failed")
			e.notify.Error(remoteMessage("Could not refresh tasks", err))
		}
		if taskID != "" {
			e.store.ClearInFlight(taskID)
		}
		return TasksReloadedMsg{Err: err}
	}
}

// LoadReferences loads the reference option lists, forcing a refetch when
// force is true. Every per-source failure is surfaced individually; the
// failed source degrades to an empty list.
func (e *Engine) LoadReferences(force bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		data, failures := e.refs.LoadAll(ctx, force)
		for _, f := range failures {
			e.notify.Error("Could not load " + f.Source + "; the list will be empty")
		}
		return RefDataLoadedMsg{Data: data, Failures: failures}
	}
}

// DragTask handles a drag of the task into the target status column.
// Rejections are pure client-side decisions: they surface as warnings and
// never reach the network. An accepted move is applied optimistically so
// the board reflects it with zero perceived latency, then committed.
func (e *Engine) DragTask(taskID, target string) tea.Cmd {
	task, ok := e.store.Get(taskID)
	if !ok {
		return nil
	}

	if d := e.auth.CanDrag(task); !d.Allowed {
		e.notify.Warning(d.Reason)
		return nil
	}

	changed, err := board.ValidateDrag(task, target)
	if err != nil {
		e.notify.Warning(rejectionReason(err))
		return nil
	}
	if !changed {
		// Same-column reorder: a no-op for state purposes.
		return nil
	}

	return e.commitStatus(task, target)
}

// MoveBackToTodo handles the single-step exception returning an
// in-progress task to the todo column.
func (e *Engine) MoveBackToTodo(taskID string) tea.Cmd {
	task, ok := e.store.Get(taskID)
	if !ok {
		return nil
	}

	if d := e.auth.CanMoveBack(task); !d.Allowed {
		e.notify.Warning(d.Reason)
		return nil
	}
	if err := board.ValidateMoveBack(task); err != nil {
		e.notify.Warning(rejectionReason(err))
		return nil
	}

	return e.commitStatus(task, model.StatusNotStarted)
}

// OverrideStatus handles the status-picker path: a named administrative
// escape hatch that bypasses forward-only ordering.
func (e *Engine) OverrideStatus(taskID, target string) tea.Cmd {
	task, ok := e.store.Get(taskID)
	if !ok {
		return nil
	}

	if d := e.auth.CanOverrideStatus(); !d.Allowed {
		e.notify.Warning(d.Reason)
		return nil
	}
	if err := board.ValidateOverride(target); err != nil {
		e.notify.Warning(rejectionReason(err))
		return nil
	}
	if task.Status == target {
		return nil
	}

	return e.commitStatus(task, target)
}

// commitStatus applies the optimistic move and issues the remote status
// command. The per-task in-flight fence suppresses a second transition
// until the first one's reconciliation completes.
func (e *Engine) commitStatus(task model.Task, target string) tea.Cmd {
	if !e.store.MarkInFlight(task.ID) {
		e.notify.Warning("This task is still syncing; try again in a moment")
		return nil
	}

	e.store.SetStatus(task.ID, target)
	e.log.Info().
		Str("task", task.ID).
		Str("from", task.Status).
		Str("to", target).
		Msg("optimistic status move")

	taskID := task.ID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		err := e.api.UpdateTaskStatus(ctx, taskID, target)
		return StatusSyncedMsg{TaskID: taskID, Target: target, Err: err}
	}
}

// HandleStatusSynced reacts to the remote outcome of a status transition
// and always returns the reconciliation refetch. On failure the refetch
// discards the optimistic move and resynchronizes to server truth; there
// is no selective rollback.
func (e *Engine) HandleStatusSynced(msg StatusSyncedMsg) tea.Cmd {
	if msg.Err != nil {
		e.notify.Error(remoteMessage("Could not update the task status", msg.Err))
	} else {
		e.notify.Success("Task status updated")
	}
	return e.reloadAndClear(msg.TaskID)
}

// CreateTask validates and submits a new task. Creation is not optimistic:
// the store is only touched by the post-confirmation refetch.
func (e *Engine) CreateTask(in form.Input) tea.Cmd {
	if d := e.auth.CanCreate(); !d.Allowed {
		e.notify.Warning(d.Reason)
		return nil
	}

	tag := e.reg.BehaviorOf(in.TypeID)
	in = form.Normalize(in, tag)
	if err := form.Validate(in, tag, e.now()); err != nil {
		e.notify.Error(err.Error())
		return nil
	}

	req := buildRequest(in)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		err := e.api.CreateTask(ctx, req)
		return MutationDoneMsg{Op: "create", Err: err}
	}
}

// UpdateTask validates and submits edits to an existing task.
func (e *Engine) UpdateTask(taskID string, in form.Input) tea.Cmd {
	task, ok := e.store.Get(taskID)
	if !ok {
		return nil
	}

	if d := e.auth.CanEdit(task); !d.Allowed {
		e.notify.Warning(d.Reason)
		return nil
	}

	tag := e.reg.BehaviorOf(in.TypeID)
	in = form.Normalize(in, tag)
	if err := form.Validate(in, tag, e.now()); err != nil {
		e.notify.Error(err.Error())
		return nil
	}

	req := buildRequest(in)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		err := e.api.UpdateTask(ctx, taskID, req)
		return MutationDoneMsg{Op: "update", TaskID: taskID, Err: err}
	}
}

// DeleteTask submits the generic, irreversible delete.
func (e *Engine) DeleteTask(taskID string) tea.Cmd {
	task, ok := e.store.Get(taskID)
	if !ok {
		return nil
	}

	if d := e.auth.CanDelete(task); !d.Allowed {
		e.notify.Warning(d.Reason)
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		err := e.api.DeleteTask(ctx, taskID, "")
		return MutationDoneMsg{Op: "delete", TaskID: taskID, Err: err}
	}
}

// RejectRegistration submits the admin-only reject flow: a delete carrying
// a reason the server uses to cascade the removal of the pending user
// record.
func (e *Engine) RejectRegistration(taskID, reasonOption, freeText string) tea.Cmd {
	task, ok := e.store.Get(taskID)
	if !ok {
		return nil
	}

	if d := e.auth.CanReject(task); !d.Allowed {
		e.notify.Warning(d.Reason)
		return nil
	}

	reason, err := form.ValidateRejectReason(reasonOption, freeText)
	if err != nil {
		e.notify.Error(err.Error())
		return nil
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		err := e.api.DeleteTask(ctx, taskID, reason)
		return MutationDoneMsg{Op: "reject", TaskID: taskID, Err: err}
	}
}

// HandleMutationDone reacts to the remote outcome of a non-optimistic
// command and returns the reconciliation refetch. Rejections cascade to
// the pending user record server-side, so they also force the reference
// lists to reload.
func (e *Engine) HandleMutationDone(msg MutationDoneMsg) tea.Cmd {
	success := map[string]string{
		"create": "Task created",
		"update": "Task updated",
		"delete": "Task deleted",
		"reject": "Registration rejected",
	}
	failure := map[string]string{
		"create": "Could not create the task",
		"update": "Could not update the task",
		"delete": "Could not delete the task",
		"reject": "Could not reject the registration",
	}

	if msg.Err != nil {
		e.notify.Error(remoteMessage(failure[msg.Op], msg.Err))
	} else {
		e.notify.Success(success[msg.Op])
	}

	if msg.Op == "reject" {
		return tea.Batch(e.Reload(), e.LoadReferences(true))
	}
	return e.Reload()
}

// buildRequest converts a normalized, validated submission to the wire
// payload. Empty optional references are omitted entirely.
func buildRequest(in form.Input) api.TaskRequest {
	req := api.TaskRequest{
		Description: in.Description,
		DueDate:     in.DueDate,
		TypeID:      in.TypeID,
		AssigneeID:  in.AssigneeID,
	}
	if in.ChildID != "" {
		req.ChildID = &in.ChildID
	}
	if in.TutorID != "" {
		req.TutorID = &in.TutorID
	}
	if in.PendingTutorID != "" {
		req.PendingTutorID = &in.PendingTutorID
	}
	return req
}

// rejectionReason extracts the user-facing reason from a transition
// rejection.
func rejectionReason(err error) string {
	var rej *board.Rejection
	if errors.As(err, &rej) {
		return rej.Reason
	}
	return err.Error()
}

// remoteMessage builds the contextual failure message, preferring the
// server-provided message when the response carried one.
func remoteMessage(prefix string, err error) string {
	if msg := api.ServerMessage(err); msg != "" {
		return prefix + ": " + msg
	}
	return prefix
}
