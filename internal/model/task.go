package model

import "time"

// Task status constants, in lifecycle order.
const (
	StatusNotStarted = "NOT_STARTED"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// StatusOrder lists the statuses in the order the board displays them.
// Drag moves are validated against this ordering.
var StatusOrder = []string{StatusNotStarted, StatusInProgress, StatusCompleted}

// StatusIndex returns the column index of a status in StatusOrder,
// or -1 if the status is unknown.
func StatusIndex(status string) int {
	for i, s := range StatusOrder {
		if s == status {
			return i
		}
	}
	return -1
}

// TuteeMatchInfo is the read-only snapshot attached to tutee-match tasks
// when the server creates them.
type TuteeMatchInfo struct {
	TutorName string `json:"tutor_name"`
	TuteeName string `json:"tutee_name"`
	Phone     string `json:"phone"`
	Eligible  bool   `json:"eligible"`
}

// Task is a unit of work moving through the fixed lifecycle.
// The server is the source of truth; every local mutation is provisional
// until confirmed or rolled back by a refetch.
type Task struct {
	// ID is the opaque server-assigned identifier. Immutable.
	ID string `json:"id"`

	// Description is free text. For some generic tasks the server generates
	// it from a template; see form.SplitGeneratedDescription.
	Description string `json:"description"`

	// DueDate is the calendar date the task is due. Mutable until the task
	// is completed.
	DueDate time.Time `json:"due_date"`

	// Status is one of the Status* constants.
	Status string `json:"status"`

	// TypeID references the owning TaskType in the registry.
	TypeID string `json:"type_id"`

	// AssigneeID references a staff member. Always set.
	AssigneeID string `json:"assignee_id"`

	// ChildID and TutorID are optional references whose presence is governed
	// by the type's behavioral tag.
	ChildID *string `json:"child_id,omitempty"`
	TutorID *string `json:"tutor_id,omitempty"`

	// PendingTutorID references a not-yet-approved tutor candidate.
	// Set only for interview tasks.
	PendingTutorID *string `json:"pending_tutor_id,omitempty"`

	// UserInfo is the read-only registration snapshot (name, email, age,
	// city, ...) attached at creation time for registration-approval tasks.
	UserInfo map[string]string `json:"user_info,omitempty"`

	// TuteeMatchInfo is the read-only snapshot for tutee-match tasks.
	TuteeMatchInfo *TuteeMatchInfo `json:"tutee_match_info,omitempty"`

	// Names, Phones and OtherInformation are the read-only snapshot fields
	// for family-addition tasks.
	Names            string `json:"names,omitempty"`
	Phones           string `json:"phones,omitempty"`
	OtherInformation string `json:"other_information,omitempty"`

	// Created and Updated are server-assigned timestamps.
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}
