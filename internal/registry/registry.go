// Package registry holds the static catalog of task types. Behavioral tags
// are assigned exactly once when the catalog loads; call sites dispatch on
// the tag, never on the display name.
package registry

import (
	"strings"

	"github.com/aharoni/caseboard/internal/model"
)

// Well-known type names, matched case-insensitively at load time.
var wellKnownNames = map[string]model.Behavior{
	"interview":             model.BehaviorInterview,
	"add family":            model.BehaviorFamilyAddition,
	"tutee match":           model.BehaviorTuteeMatch,
	"registration approval": model.BehaviorRegistrationApproval,
}

// Registry is the loaded task type catalog. It is immutable after New.
type Registry struct {
	types []model.TaskType
	byID  map[string]model.TaskType
}

// New builds a registry from the server's type list, assigning each type
// its behavioral tag.
func New(types []model.TaskType) *Registry {
	r := &Registry{
		types: make([]model.TaskType, 0, len(types)),
		byID:  make(map[string]model.TaskType, len(types)),
	}
	for _, t := range types {
		t.Behavior = behaviorFor(t.Name)
		r.types = append(r.types, t)
		r.byID[t.ID] = t
	}
	return r
}

// behaviorFor maps a display name to its behavioral tag. Unknown names
// are generic.
func behaviorFor(name string) model.Behavior {
	if b, ok := wellKnownNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return b
	}
	return model.BehaviorGeneric
}

// All returns every type in the catalog.
func (r *Registry) All() []model.TaskType {
	out := make([]model.TaskType, len(r.types))
	copy(out, r.types)
	return out
}

// ByID looks up a type by id.
func (r *Registry) ByID(id string) (model.TaskType, bool) {
	t, ok := r.byID[id]
	return t, ok
}

// BehaviorOf returns the behavioral tag of the type with the given id.
// Unknown ids are treated as generic so rendering never fails on a task
// whose type was removed server-side.
func (r *Registry) BehaviorOf(typeID string) model.Behavior {
	if t, ok := r.byID[typeID]; ok {
		return t.Behavior
	}
	return model.BehaviorGeneric
}

// IsVisible reports whether the session holds the type's permission pair.
func IsVisible(t model.TaskType, session *model.Session) bool {
	return session.Has(t.Resource, t.Action)
}

// Visible returns the types the session may use in create/edit menus.
func (r *Registry) Visible(session *model.Session) []model.TaskType {
	var out []model.TaskType
	for _, t := range r.types {
		if IsVisible(t, session) {
			out = append(out, t)
		}
	}
	return out
}
