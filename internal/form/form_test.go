package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aharoni/caseboard/internal/model"
)

var testNow = time.Date(2026, 8, 20, 15, 30, 0, 0, time.UTC)

func validInput() Input {
	return Input{
		TypeID:      "type-1",
		Description: "Call the family",
		DueDate:     "2026-08-25",
		AssigneeID:  "staff-1",
	}
}

func TestFieldsFor(t *testing.T) {
	generic := FieldsFor(model.BehaviorGeneric)
	assert.True(t, generic.ShowChildTutor)
	assert.False(t, generic.ShowPendingTutor)
	assert.Equal(t, SnapshotNone, generic.Snapshot)

	interview := FieldsFor(model.BehaviorInterview)
	assert.False(t, interview.ShowChildTutor)
	assert.True(t, interview.ShowPendingTutor)

	family := FieldsFor(model.BehaviorFamilyAddition)
	assert.False(t, family.ShowChildTutor)
	assert.Equal(t, SnapshotFamily, family.Snapshot)

	match := FieldsFor(model.BehaviorTuteeMatch)
	assert.Equal(t, SnapshotTuteeMatch, match.Snapshot)

	approval := FieldsFor(model.BehaviorRegistrationApproval)
	assert.Equal(t, SnapshotUserInfo, approval.Snapshot)
}

func TestValidate_ValidSubmission(t *testing.T) {
	assert.NoError(t, Validate(validInput(), model.BehaviorGeneric, testNow))
}

// Violations are collected, never reported one at a time.
func TestValidate_CollectsAllViolations(t *testing.T) {
	in := Input{Description: "x"}

	err := Validate(in, model.BehaviorInterview, testNow)
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "Task type is required")
	assert.Contains(t, errs, "Due date is required")
	assert.Contains(t, errs, "Assignee is required")
	assert.Contains(t, errs, "An interview task requires a pending tutor")
	assert.Len(t, errs, 4)
}

func TestValidate_DueDateMustParse(t *testing.T) {
	in := validInput()
	in.DueDate = "25/08/2026"

	err := Validate(in, model.BehaviorGeneric, testNow)
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "Due date must be a valid date (YYYY-MM-DD)")
}

// Past and too-far-out dates share one combined window message.
func TestValidate_DueDateWindow(t *testing.T) {
	window := "Due date must be today or later and within 30 days"

	in := validInput()
	in.DueDate = "2026-08-19" // yesterday
	var errs ValidationErrors
	require.ErrorAs(t, Validate(in, model.BehaviorGeneric, testNow), &errs)
	assert.Equal(t, ValidationErrors{window}, errs)

	in.DueDate = "2026-10-04" // 45 days out
	errs = nil
	require.ErrorAs(t, Validate(in, model.BehaviorGeneric, testNow), &errs)
	assert.Equal(t, ValidationErrors{window}, errs)
}

func TestValidate_DueDateWindowBoundaries(t *testing.T) {
	in := validInput()

	in.DueDate = "2026-08-20" // today
	assert.NoError(t, Validate(in, model.BehaviorGeneric, testNow))

	in.DueDate = "2026-09-19" // exactly 30 days out
	assert.NoError(t, Validate(in, model.BehaviorGeneric, testNow))

	in.DueDate = "2026-09-20" // 31 days out
	assert.Error(t, Validate(in, model.BehaviorGeneric, testNow))
}

func TestValidate_InterviewRequiresPendingTutor(t *testing.T) {
	in := validInput()
	err := Validate(in, model.BehaviorInterview, testNow)
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, ValidationErrors{"An interview task requires a pending tutor"}, errs)

	in.PendingTutorID = "pt-1"
	assert.NoError(t, Validate(in, model.BehaviorInterview, testNow))
}

func TestNormalize_ClearsHiddenFields(t *testing.T) {
	in := validInput()
	in.ChildID = "child-1"
	in.TutorID = "tutor-1"
	in.PendingTutorID = "pt-1"

	// A family-addition submission never carries child or tutor references.
	out := Normalize(in, model.BehaviorFamilyAddition)
	assert.Empty(t, out.ChildID)
	assert.Empty(t, out.TutorID)
	assert.Empty(t, out.PendingTutorID)

	// Generic keeps child and tutor but never a pending tutor.
	out = Normalize(in, model.BehaviorGeneric)
	assert.Equal(t, "child-1", out.ChildID)
	assert.Equal(t, "tutor-1", out.TutorID)
	assert.Empty(t, out.PendingTutorID)

	// Interview keeps only the pending tutor.
	out = Normalize(in, model.BehaviorInterview)
	assert.Empty(t, out.ChildID)
	assert.Empty(t, out.TutorID)
	assert.Equal(t, "pt-1", out.PendingTutorID)
}

func TestAssigneeCandidates_InterviewExcludesPeerOnlyStaff(t *testing.T) {
	staff := []model.Option{
		{ID: "s1", Label: "Coordinator", Roles: []string{model.RoleSystemAdministrator}},
		{ID: "s2", Label: "Tutor only", Roles: []string{model.RoleTutor}},
		{ID: "s3", Label: "Volunteer only", Roles: []string{model.RoleGeneralVolunteer}},
		{ID: "s4", Label: "Tutor and coordinator", Roles: []string{model.RoleTutor, "Coordinator"}},
		{ID: "s5", Label: "No roles listed"},
	}

	got := AssigneeCandidates(model.BehaviorInterview, staff)
	ids := make([]string, 0, len(got))
	for _, o := range got {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"s1", "s4", "s5"}, ids)

	// Every other behavior keeps the full list.
	assert.Len(t, AssigneeCandidates(model.BehaviorGeneric, staff), 5)
}

func TestSplitGeneratedDescription(t *testing.T) {
	name, date, ok := SplitGeneratedDescription("Cohen family - 2026-03-09")
	require.True(t, ok)
	assert.Equal(t, "Cohen family", name)
	assert.Equal(t, "09/03/2026", date)

	// A name containing the separator keeps everything before the date.
	name, _, ok = SplitGeneratedDescription("Levi - Mizrahi - 2026-03-09")
	require.True(t, ok)
	assert.Equal(t, "Levi - Mizrahi", name)

	_, _, ok = SplitGeneratedDescription("Call the family tomorrow")
	assert.False(t, ok)

	_, _, ok = SplitGeneratedDescription("Cohen family - 2026-13-45")
	assert.False(t, ok)
}
