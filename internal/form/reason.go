package form

import (
	"fmt"
	"strings"

	"github.com/aharoni/caseboard/internal/model"
)

// ValidateRejectReason checks the reason chosen in the reject-registration
// dialog and returns the final reason string to send with the delete
// command. A canned option is sent verbatim; choosing "Other" requires a
// free-text reason of 1 to 200 characters.
func ValidateRejectReason(option, freeText string) (string, error) {
	canned := false
	for _, r := range model.RejectReasons {
		if option == r {
			canned = true
			break
		}
	}
	if !canned {
		return "", fmt.Errorf("unknown rejection reason %q", option)
	}

	if option != model.RejectReasonOther {
		return option, nil
	}

	text := strings.TrimSpace(freeText)
	if text == "" {
		return "", fmt.Errorf("a reason is required when selecting %q", model.RejectReasonOther)
	}
	if len([]rune(text)) > model.MaxRejectReasonLen {
		return "", fmt.Errorf("reason must be at most %d characters", model.MaxRejectReasonLen)
	}
	return text, nil
}
