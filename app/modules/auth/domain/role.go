package authdomain

// Role represents a caller's role for authorization purposes.
type Role string

const (
	// RoleViewer may read courses and rounds and watch live updates.
	RoleViewer Role = "viewer"
	// RoleScorer may also start rounds and enter scores.
	RoleScorer Role = "scorer"
	// RoleAdmin may do everything a scorer can.
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleViewer, RoleScorer, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanWrite reports whether the role may change rounds.
func (r Role) CanWrite() bool {
	return r == RoleScorer || r == RoleAdmin
}

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}
