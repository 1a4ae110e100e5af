package model

// Role names as the identity provider reports them.
const (
	RoleSystemAdministrator = "System Administrator"
	RoleTutor               = "Tutor"
	RoleGeneralVolunteer    = "General Volunteer"
)

// Permission is a single {resource, action} grant held by a session.
type Permission struct {
	Resource string `json:"resource"`
	Action   string `json:"action"`
}

// Session holds the identity and grants of the current user. It is built
// once at startup from the permission and identity providers and threaded
// explicitly into every component that needs it.
type Session struct {
	Username string

	// Admin is true when the user holds the System Administrator role.
	Admin bool

	// Guest marks a degraded session that may view but not mutate.
	Guest bool

	Permissions []Permission
}

// Has reports whether the session holds the given permission pair.
func (s *Session) Has(resource, action string) bool {
	for _, p := range s.Permissions {
		if p.Resource == resource && p.Action == action {
			return true
		}
	}
	return false
}
