package model

// Option is an id + display-label pair returned by the reference-data
// provider, used to resolve ids to names and to populate selection fields.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`

	// Roles is populated for staff options only.
	Roles []string `json:"roles,omitempty"`
}

// LabelFor resolves an id to its display label within a list of options.
// Returns the id itself when no option matches, so rendering never blanks.
func LabelFor(opts []Option, id string) string {
	for _, o := range opts {
		if o.ID == id {
			return o.Label
		}
	}
	return id
}
