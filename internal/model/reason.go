package model

// RejectReasonOther is the canned option that requires a free-text reason.
const RejectReasonOther = "Other"

// MaxRejectReasonLen caps the free-text reason length.
const MaxRejectReasonLen = 200

// RejectReasons is the fixed set of canned reasons offered when an
// administrator rejects a registration-approval task. The chosen reason is
// sent with the delete command so the server can cascade the removal of the
// associated pending user record.
var RejectReasons = []string{
	"Incomplete application",
	"Does not meet the age requirement",
	"Duplicate registration",
	"No longer relevant",
	RejectReasonOther,
}
