package registry

import "time"

// Role selects which pages a session may use.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleVisitor Role = "visitor"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleVisitor
}

// Session is the per-browser authentication state. It is created on login and
// removed on sign-out; there is no expiry.
type Session struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// IsAdmin reports whether the session may upload documents and manage categories.
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
