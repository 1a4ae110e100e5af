package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aharoni/caseboard/internal/model"
)

func TestValidateDrag_AllPairs(t *testing.T) {
	for from, fromStatus := range model.StatusOrder {
		for to, toStatus := range model.StatusOrder {
			task := model.Task{ID: "t", Status: fromStatus}
			changed, err := ValidateDrag(task, toStatus)

			switch {
			case to == from:
				assert.NoError(t, err, "%s -> %s", fromStatus, toStatus)
				assert.False(t, changed, "%s -> %s", fromStatus, toStatus)
			case to > from:
				assert.NoError(t, err, "%s -> %s", fromStatus, toStatus)
				assert.True(t, changed, "%s -> %s", fromStatus, toStatus)
			default:
				assert.Error(t, err, "%s -> %s", fromStatus, toStatus)
				assert.False(t, changed, "%s -> %s", fromStatus, toStatus)
			}
		}
	}
}

func TestValidateDrag_BackwardIsRejection(t *testing.T) {
	task := model.Task{ID: "t", Status: model.StatusCompleted}

	_, err := ValidateDrag(task, model.StatusInProgress)
	require.Error(t, err)

	var rej *Rejection
	require.ErrorAs(t, err, &rej)
	assert.Equal(t, "Tasks cannot be moved back to an earlier column", rej.Reason)
}

func TestValidateDrag_SkippingAheadIsAllowed(t *testing.T) {
	task := model.Task{ID: "t", Status: model.StatusNotStarted}

	changed, err := ValidateDrag(task, model.StatusCompleted)
	assert.NoError(t, err)
	assert.True(t, changed)
}

func TestValidateDrag_UnknownStatuses(t *testing.T) {
	_, err := ValidateDrag(model.Task{Status: "ARCHIVED"}, model.StatusCompleted)
	assert.Error(t, err)

	_, err = ValidateDrag(model.Task{Status: model.StatusNotStarted}, "ARCHIVED")
	assert.Error(t, err)
}

func TestValidateMoveBack(t *testing.T) {
	assert.NoError(t, ValidateMoveBack(model.Task{Status: model.StatusInProgress}))

	err := ValidateMoveBack(model.Task{Status: model.StatusNotStarted})
	require.Error(t, err)
	var rej *Rejection
	require.ErrorAs(t, err, &rej)

	assert.Error(t, ValidateMoveBack(model.Task{Status: model.StatusCompleted}))
}

func TestValidateOverride(t *testing.T) {
	for _, status := range model.StatusOrder {
		assert.NoError(t, ValidateOverride(status))
	}
	assert.Error(t, ValidateOverride("ARCHIVED"))
	assert.Error(t, ValidateOverride(""))
}
