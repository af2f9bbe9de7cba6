package session

import "github.com/dmitrijs2005/quotedesk/internal/client/models"

// Session is a snapshot of the authentication state.
type Session struct {
	Authenticated bool
	User          *models.User
}

// Email returns the signed-in address, or "" when unauthenticated.
func (s Session) Email() string {
	if !s.Authenticated || s.User == nil {
		return ""
	}
	return s.User.Email
}
