package model

// Behavior classifies a TaskType and drives form shape and authorization.
// It is assigned exactly once when the registry loads and never re-derived
// from display text at call sites.
type Behavior string

const (
	BehaviorGeneric              Behavior = "generic"
	BehaviorInterview            Behavior = "interview"
	BehaviorFamilyAddition       Behavior = "family_addition"
	BehaviorTuteeMatch           Behavior = "tutee_match"
	BehaviorRegistrationApproval Behavior = "registration_approval"
)

// TaskType is a category of task carrying a permission binding and a
// behavioral tag. Types are loaded once per session and never mutated
// by the client.
type TaskType struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Resource and Action form the permission pair the session must hold
	// for tasks of this type to be visible in create/edit menus.
	Resource string `json:"resource"`
	Action   string `json:"action"`

	// Behavior is assigned by the registry at load time.
	Behavior Behavior `json:"-"`
}
