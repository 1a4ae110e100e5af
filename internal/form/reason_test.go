package form

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aharoni/caseboard/internal/model"
)

func TestValidateRejectReason_CannedOptionIsVerbatim(t *testing.T) {
	reason, err := ValidateRejectReason("Incomplete application", "ignored free text")
	require.NoError(t, err)
	assert.Equal(t, "Incomplete application", reason)
}

func TestValidateRejectReason_UnknownOption(t *testing.T) {
	_, err := ValidateRejectReason("Because", "")
	assert.Error(t, err)
}

func TestValidateRejectReason_OtherRequiresText(t *testing.T) {
	_, err := ValidateRejectReason(model.RejectReasonOther, "")
	assert.Error(t, err)

	_, err = ValidateRejectReason(model.RejectReasonOther, "   ")
	assert.Error(t, err)

	reason, err := ValidateRejectReason(model.RejectReasonOther, "  Moved out of the district  ")
	require.NoError(t, err)
	assert.Equal(t, "Moved out of the district", reason)
}

func TestValidateRejectReason_OtherLengthLimit(t *testing.T) {
	atLimit := strings.Repeat("א", model.MaxRejectReasonLen)
	reason, err := ValidateRejectReason(model.RejectReasonOther, atLimit)
	require.NoError(t, err)
	assert.Equal(t, atLimit, reason)

	_, err = ValidateRejectReason(model.RejectReasonOther, atLimit+"א")
	assert.Error(t, err)
}
