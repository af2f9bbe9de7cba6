package models

// TokenValidation is the answer of the reset-token validation endpoint.
type TokenValidation struct {
	Valid bool   `json:"valid"`
	Email string `json:"email,omitempty"`
	Error string `json:"error,omitempty"`
}
