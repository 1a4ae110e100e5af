package board

import (
	"fmt"

	"github.com/aharoni/caseboard/internal/model"
)

// Rejection is a refused transition. It is a pure client-side decision:
// a rejected transition never reaches the network and surfaces as a
// non-blocking warning.
type Rejection struct {
	Reason string
}

func (r *Rejection) Error() string { return r.Reason }

// ValidateDrag decides whether a drag from the task's current column to
// the target status column may proceed. The lifecycle is forward-only
// under drag: any move to an earlier column is rejected. Same-column
// drops are accepted but are a no-op for state purposes, which the
// changed return value reports.
func ValidateDrag(task model.Task, target string) (changed bool, err error) {
	from := model.StatusIndex(task.Status)
	to := model.StatusIndex(target)
	if from < 0 {
		return false, &Rejection{Reason: fmt.Sprintf("task has unknown status %q", task.Status)}
	}
	if to < 0 {
		return false, &Rejection{Reason: fmt.Sprintf("unknown target status %q", target)}
	}

	if to == from {
		return false, nil
	}
	if to < from {
		return false, &Rejection{Reason: "Tasks cannot be moved back to an earlier column"}
	}
	return true, nil
}

// ValidateMoveBack decides the single-step exception that returns an
// in-progress task to the todo column. Any other starting status is
// rejected.
func ValidateMoveBack(task model.Task) error {
	if task.Status != model.StatusInProgress {
		return &Rejection{Reason: "Only tasks that are in progress can be moved back to todo"}
	}
	return nil
}

// ValidateOverride is the named escape hatch behind the status picker: an
// administrative path that may set any target status in either direction.
// It still refuses statuses outside the lifecycle.
func ValidateOverride(target string) error {
	if model.StatusIndex(target) < 0 {
		return &Rejection{Reason: fmt.Sprintf("unknown status %q", target)}
	}
	return nil
}
