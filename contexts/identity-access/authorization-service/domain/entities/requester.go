package entities

// Requester is the resolved identity attempting an action.
// The zero value is an anonymous requester.
type Requester struct {
	AccountID     string
	Username      string
	Role          Role
	Superuser     bool
	Authenticated bool
}

// IsAdmin folds the superuser flag into the admin role so a misconfigured
// role field can never strip a superuser of admin capability.
func (r Requester) IsAdmin() bool {
	return r.Authenticated && (r.Role == RoleAdmin || r.Superuser)
}

func (r Requester) IsModerator() bool {
	return r.Authenticated && r.Role == RoleModerator
}
