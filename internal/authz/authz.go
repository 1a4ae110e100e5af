// Package authz gates privileged task actions by role and task state.
// It is pure decision logic: no side effects, consulted before any
// mutation is dispatched.
package authz

import (
	"github.com/aharoni/caseboard/internal/model"
	"github.com/aharoni/caseboard/internal/registry"
)

// Reasons surfaced in place of action controls when an action is denied.
const (
	ReasonAdminOnly = "Only a system administrator can act on registration approvals"
	ReasonCompleted = "Completed tasks can no longer be edited"
	ReasonGuest     = "Your session does not allow changes"
)

// Decision is the result of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision        { return Decision{Allowed: true} }
func deny(r string) Decision { return Decision{Reason: r} }

// Authorizer evaluates action permissions for one session.
type Authorizer struct {
	session *model.Session
	reg     *registry.Registry
}

// New creates an authorizer bound to a session and the type registry.
func New(session *model.Session, reg *registry.Registry) *Authorizer {
	return &Authorizer{session: session, reg: reg}
}

// registrationApproval reports whether the task belongs to the
// registration-approval type.
func (a *Authorizer) registrationApproval(task model.Task) bool {
	return a.reg.BehaviorOf(task.TypeID) == model.BehaviorRegistrationApproval
}

// CanCreate reports whether the session may create tasks at all.
func (a *Authorizer) CanCreate() Decision {
	if a.session.Guest {
		return deny(ReasonGuest)
	}
	return allow()
}

// CanEdit reports whether the session may edit the task. Rules are
// evaluated in order: registration approvals are admin-only, completed
// tasks are frozen for everyone, guests may not mutate anything.
func (a *Authorizer) CanEdit(task model.Task) Decision {
	if a.registrationApproval(task) && !a.session.Admin {
		return deny(ReasonAdminOnly)
	}
	if task.Status == model.StatusCompleted {
		return deny(ReasonCompleted)
	}
	if a.session.Guest {
		return deny(ReasonGuest)
	}
	return allow()
}

// CanDrag reports whether the session may move the task between columns.
// Ordering of the move itself is the transition validator's concern.
func (a *Authorizer) CanDrag(task model.Task) Decision {
	if a.registrationApproval(task) && !a.session.Admin {
		return deny(ReasonAdminOnly)
	}
	if a.session.Guest {
		return deny(ReasonGuest)
	}
	return allow()
}

// CanDelete reports whether the session may delete the task through the
// generic delete flow. Registration approvals are never deleted generically
// by non-admins; for admins they go through the reject flow instead.
func (a *Authorizer) CanDelete(task model.Task) Decision {
	if a.registrationApproval(task) && !a.session.Admin {
		return deny(ReasonAdminOnly)
	}
	if a.session.Guest {
		return deny(ReasonGuest)
	}
	return allow()
}

// CanReject reports whether the session may run the reject-registration
// flow on the task. Only administrators may, and only on registration
// approvals.
func (a *Authorizer) CanReject(task model.Task) Decision {
	if !a.registrationApproval(task) {
		return deny("Only registration approvals can be rejected")
	}
	if !a.session.Admin {
		return deny(ReasonAdminOnly)
	}
	return allow()
}

// CanMoveBack reports whether the session may use the single-step
// move-back-to-todo exception. Any non-guest session may; the current
// status requirement is the transition validator's concern.
func (a *Authorizer) CanMoveBack(task model.Task) Decision {
	if a.registrationApproval(task) && !a.session.Admin {
		return deny(ReasonAdminOnly)
	}
	if a.session.Guest {
		return deny(ReasonGuest)
	}
	return allow()
}

// CanOverrideStatus reports whether the session may use the status-picker
// path that bypasses forward-only ordering.
func (a *Authorizer) CanOverrideStatus() Decision {
	if !a.session.Admin {
		return deny("Only a system administrator can set a status directly")
	}
	return allow()
}
