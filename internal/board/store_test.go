package board

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aharoni/caseboard/internal/model"
)

func day(offset int) time.Time {
	return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset)
}

func TestReplace_DiscardsUnconfirmedState(t *testing.T) {
	s := NewStore()
	s.Replace([]model.Task{{ID: "a", Status: model.StatusNotStarted}})

	// An optimistic move the server never confirmed.
	require.True(t, s.SetStatus("a", model.StatusInProgress))

	s.Replace([]model.Task{{ID: "a", Status: model.StatusNotStarted}})

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, model.StatusNotStarted, got.Status)
}

func TestAll_OrderedByDueDateThenCreated(t *testing.T) {
	s := NewStore()
	s.Replace([]model.Task{
		{ID: "late", DueDate: day(5), Created: day(0)},
		{ID: "early", DueDate: day(1), Created: day(0)},
		{ID: "tie-new", DueDate: day(1), Created: day(2)},
	})

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, "early", all[0].ID)
	assert.Equal(t, "tie-new", all[1].ID)
	assert.Equal(t, "late", all[2].ID)
}

func TestSetStatus_UnknownTask(t *testing.T) {
	s := NewStore()
	assert.False(t, s.SetStatus("missing", model.StatusCompleted))
}

func TestInFlightFence(t *testing.T) {
	s := NewStore()

	require.True(t, s.MarkInFlight("a"))
	assert.True(t, s.InFlight("a"))

	// A second transition for the same task is suppressed.
	assert.False(t, s.MarkInFlight("a"))

	// Other tasks are unaffected.
	assert.True(t, s.MarkInFlight("b"))

	s.ClearInFlight("a")
	assert.False(t, s.InFlight("a"))
	assert.True(t, s.MarkInFlight("a"))
}

func TestProjection_GroupsByStatusInLifecycleOrder(t *testing.T) {
	s := NewStore()
	s.Replace([]model.Task{
		{ID: "a", Status: model.StatusNotStarted, DueDate: day(1)},
		{ID: "b", Status: model.StatusInProgress, DueDate: day(1)},
		{ID: "c", Status: model.StatusCompleted, DueDate: day(1)},
		{ID: "d", Status: model.StatusNotStarted, DueDate: day(2)},
	})

	cols := s.Projection(Filter{})
	require.Len(t, cols, 3)

	assert.Equal(t, model.StatusNotStarted, cols[0].Status)
	assert.Equal(t, model.StatusInProgress, cols[1].Status)
	assert.Equal(t, model.StatusCompleted, cols[2].Status)

	require.Len(t, cols[0].Tasks, 2)
	assert.Equal(t, "a", cols[0].Tasks[0].ID)
	assert.Equal(t, "d", cols[0].Tasks[1].ID)
	assert.Len(t, cols[1].Tasks, 1)
	assert.Len(t, cols[2].Tasks, 1)
}

func TestProjection_DropsUnknownStatus(t *testing.T) {
	s := NewStore()
	s.Replace([]model.Task{
		{ID: "a", Status: model.StatusNotStarted},
		{ID: "weird", Status: "ARCHIVED"},
	})

	cols := s.Projection(Filter{})
	total := 0
	for _, c := range cols {
		total += len(c.Tasks)
	}
	assert.Equal(t, 1, total)
}

func TestProjection_FilterByType(t *testing.T) {
	typeID := "type-1"
	s := NewStore()
	s.Replace([]model.Task{
		{ID: "a", Status: model.StatusNotStarted, TypeID: "type-1"},
		{ID: "b", Status: model.StatusNotStarted, TypeID: "type-2"},
	})

	cols := s.Projection(Filter{TypeID: &typeID})
	require.Len(t, cols[0].Tasks, 1)
	assert.Equal(t, "a", cols[0].Tasks[0].ID)
}

func TestProjection_FilterByChild(t *testing.T) {
	child := "child-1"
	other := "child-2"
	s := NewStore()
	s.Replace([]model.Task{
		{ID: "a", Status: model.StatusNotStarted, ChildID: &child},
		{ID: "b", Status: model.StatusNotStarted, ChildID: &other},
		{ID: "c", Status: model.StatusNotStarted},
	})

	cols := s.Projection(Filter{ChildID: &child})
	require.Len(t, cols[0].Tasks, 1)
	assert.Equal(t, "a", cols[0].Tasks[0].ID)
}
