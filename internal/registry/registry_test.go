package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aharoni/caseboard/internal/model"
)

func TestNew_AssignsBehaviors(t *testing.T) {
	r := New([]model.TaskType{
		{ID: "t1", Name: "Interview"},
		{ID: "t2", Name: "Add Family"},
		{ID: "t3", Name: "Tutee Match"},
		{ID: "t4", Name: "Registration Approval"},
		{ID: "t5", Name: "Phone call"},
	})

	assert.Equal(t, model.BehaviorInterview, r.BehaviorOf("t1"))
	assert.Equal(t, model.BehaviorFamilyAddition, r.BehaviorOf("t2"))
	assert.Equal(t, model.BehaviorTuteeMatch, r.BehaviorOf("t3"))
	assert.Equal(t, model.BehaviorRegistrationApproval, r.BehaviorOf("t4"))
	assert.Equal(t, model.BehaviorGeneric, r.BehaviorOf("t5"))
}

func TestNew_NameMatchingIsCaseInsensitive(t *testing.T) {
	r := New([]model.TaskType{
		{ID: "t1", Name: "INTERVIEW"},
		{ID: "t2", Name: "  registration approval  "},
	})

	assert.Equal(t, model.BehaviorInterview, r.BehaviorOf("t1"))
	assert.Equal(t, model.BehaviorRegistrationApproval, r.BehaviorOf("t2"))
}

func TestBehaviorOf_UnknownTypeIsGeneric(t *testing.T) {
	r := New(nil)

	assert.Equal(t, model.BehaviorGeneric, r.BehaviorOf("missing"))
}

func TestByID(t *testing.T) {
	r := New([]model.TaskType{{ID: "t1", Name: "Interview"}})

	got, ok := r.ByID("t1")
	assert.True(t, ok)
	assert.Equal(t, "Interview", got.Name)
	assert.Equal(t, model.BehaviorInterview, got.Behavior)

	_, ok = r.ByID("t2")
	assert.False(t, ok)
}

func TestVisible_FiltersByPermissionPair(t *testing.T) {
	r := New([]model.TaskType{
		{ID: "t1", Name: "Interview", Resource: "interviews", Action: "manage"},
		{ID: "t2", Name: "Phone call", Resource: "tasks", Action: "manage"},
	})

	session := &model.Session{
		Permissions: []model.Permission{{Resource: "tasks", Action: "manage"}},
	}

	visible := r.Visible(session)
	assert.Len(t, visible, 1)
	assert.Equal(t, "t2", visible[0].ID)
}

func TestVisible_WrongActionDoesNotMatch(t *testing.T) {
	r := New([]model.TaskType{
		{ID: "t1", Name: "Phone call", Resource: "tasks", Action: "manage"},
	})

	session := &model.Session{
		Permissions: []model.Permission{{Resource: "tasks", Action: "read"}},
	}

	assert.Empty(t, r.Visible(session))
}
