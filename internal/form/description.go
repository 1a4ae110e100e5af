package form

import (
	"regexp"
	"time"
)

// Some generic tasks carry a server-generated description of the form
// "<entity name> - <YYYY-MM-DD>". The display layer splits it and reformats
// the date; the stored value is never rewritten client-side.

var generatedDescRe = regexp.MustCompile(`^(.+) - (\d{4}-\d{2}-\d{2})$`)

// displayDateLayout is how extracted dates are shown.
const displayDateLayout = "02/01/2006"

// SplitGeneratedDescription recognizes a generated description and returns
// the entity name and the reformatted date. ok is false when the
// description does not match the template, in which case the raw value
// should be shown as-is.
func SplitGeneratedDescription(desc string) (name, date string, ok bool) {
	m := generatedDescRe.FindStringSubmatch(desc)
	if m == nil {
		return "", "", false
	}
	t, err := time.Parse(DateLayout, m[2])
	if err != nil {
		return "", "", false
	}
	return m[1], t.Format(displayDateLayout), true
}
