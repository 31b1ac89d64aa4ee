package model

// Role is a user's authorization level as reported by the API.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Session is the client's record of the current authentication state.
// A zero Session means "not logged in".
type Session struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}

// LoggedIn reports whether the session carries a token.
func (s Session) LoggedIn() bool {
	return s.Token != ""
}

// IsAdmin reports whether the session belongs to an admin.
func (s Session) IsAdmin() bool {
	return s.LoggedIn() && s.Role == RoleAdmin
}
