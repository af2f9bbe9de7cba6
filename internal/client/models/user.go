// Package models defines client-side data models used by the QuoteDesk CLI.
package models

import "time"

// User is the identity handle returned by the API after sign-in.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Credential is what the client keeps between runs to restore a session.
// ExpiresAt is zero when the access token carries no expiry.
type Credential struct {
	AccessToken  string
	RefreshToken string
	User         User
	ExpiresAt    time.Time
	SavedAt      time.Time
}

// Expired reports whether the credential is past its expiry at now.
func (c *Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}
