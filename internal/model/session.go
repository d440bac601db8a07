package model

// Session tells which user, if any, is signed in on a device.
// The zero value is the anonymous session.
type Session struct {
	User *User `json:"user,omitempty"`
}

// Authenticated reports whether a user is signed in.
func (s Session) Authenticated() bool {
	return s.User != nil
}

// UserID returns the signed-in user's id or an empty string.
func (s Session) UserID() string {
	if s.User == nil {
		return ""
	}
	return s.User.ID
}
