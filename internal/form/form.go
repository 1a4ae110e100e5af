// Package form derives the shape of the task create/edit form from the
// selected type's behavioral tag and validates submissions before any
// network call is attempted.
package form

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/aharoni/caseboard/internal/model"
)

// DateLayout is the format the due-date field is entered and submitted in.
const DateLayout = "2006-01-02"

// maxDueDays is how far out a due date may be set.
const maxDueDays = 30

var validate = validator.New(validator.WithRequiredStructEnabled())

// Snapshot identifies which read-only block the form shows for a type.
type Snapshot string

const (
	SnapshotNone       Snapshot = ""
	SnapshotFamily     Snapshot = "family"
	SnapshotTuteeMatch Snapshot = "tutee_match"
	SnapshotUserInfo   Snapshot = "user_info"
)

// Fields is the active field set for a behavioral tag.
type Fields struct {
	// ShowChildTutor controls the optional child and tutor selectors.
	ShowChildTutor bool

	// ShowPendingTutor controls the pending-tutor selector. When shown it
	// is also required.
	ShowPendingTutor bool

	// Snapshot names the read-only block rendered for the task, if any.
	Snapshot Snapshot
}

// FieldsFor computes the active field set for a behavioral tag.
func FieldsFor(tag model.Behavior) Fields {
	switch tag {
	case model.BehaviorInterview:
		return Fields{ShowPendingTutor: true}
	case model.BehaviorFamilyAddition:
		return Fields{Snapshot: SnapshotFamily}
	case model.BehaviorTuteeMatch:
		return Fields{Snapshot: SnapshotTuteeMatch}
	case model.BehaviorRegistrationApproval:
		return Fields{Snapshot: SnapshotUserInfo}
	default:
		return Fields{ShowChildTutor: true}
	}
}

// Input is a create/edit submission before validation. Reference fields
// hold raw ids from the selectors; empty means unset.
type Input struct {
	TypeID         string `validate:"required"`
	Description    string
	DueDate        string `validate:"required"`
	AssigneeID     string `validate:"required"`
	ChildID        string
	TutorID        string
	PendingTutorID string
}

// ValidationErrors collects every violation of one submission so they can
// be surfaced together.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, "; ")
}

// requiredMessages maps Input field names to user-facing messages for the
// required rule.
var requiredMessages = map[string]string{
	"TypeID":     "Task type is required",
	"DueDate":    "Due date is required",
	"AssigneeID": "Assignee is required",
}

// Validate checks a submission against the rules for the given behavioral
// tag. All violations are collected and returned together; a nil return
// means the submission may proceed to the network. now anchors the
// due-date window so callers and tests share one clock.
func Validate(in Input, tag model.Behavior, now time.Time) error {
	var errs ValidationErrors

	if err := validate.Struct(in); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				if msg, known := requiredMessages[fe.Field()]; known {
					errs = append(errs, msg)
				} else {
					errs = append(errs, fmt.Sprintf("%s is invalid", fe.Field()))
				}
			}
		} else {
			errs = append(errs, err.Error())
		}
	}

	if in.DueDate != "" {
		if msg := validateDueDate(in.DueDate, now); msg != "" {
			errs = append(errs, msg)
		}
	}

	if tag == model.BehaviorInterview && strings.TrimSpace(in.PendingTutorID) == "" {
		errs = append(errs, "An interview task requires a pending tutor")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// validateDueDate enforces that the due date parses, is not in the past,
// and is at most 30 days out. The window violations share one combined
// message.
func validateDueDate(value string, now time.Time) string {
	due, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return "Due date must be a valid date (YYYY-MM-DD)"
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	latest := today.AddDate(0, 0, maxDueDays)
	if due.Before(today) || due.After(latest) {
		return fmt.Sprintf("Due date must be today or later and within %d days", maxDueDays)
	}
	return ""
}

// Normalize clears the fields the behavioral tag hides so a submission
// never carries references the type must not have (e.g. a family-addition
// task never submits child or tutor).
func Normalize(in Input, tag model.Behavior) Input {
	f := FieldsFor(tag)
	if !f.ShowChildTutor {
		in.ChildID = ""
		in.TutorID = ""
	}
	if !f.ShowPendingTutor {
		in.PendingTutorID = ""
	}
	return in
}

// AssigneeCandidates filters the staff list to those eligible as assignee
// for the given tag. For interviews, staff whose only roles are Tutor or
// General Volunteer are excluded: an interviewer must not be the subject's
// peer category.
func AssigneeCandidates(tag model.Behavior, staff []model.Option) []model.Option {
	if tag != model.BehaviorInterview {
		return staff
	}

	var out []model.Option
	for _, s := range staff {
		if len(s.Roles) > 0 && onlyPeerRoles(s.Roles) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func onlyPeerRoles(roles []string) bool {
	for _, r := range roles {
		if r != model.RoleTutor && r != model.RoleGeneralVolunteer {
			return false
		}
	}
	return true
}
