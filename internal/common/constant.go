// Package common contains shared constants and helpers used across
// QuoteDesk client components.
package common

const (
	// AuthorizationHeaderName carries the bearer access token on API requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName carries a per-request uuid so client and server logs
	// can be correlated.
	RequestIDHeaderName = "X-Request-ID"

	// UserAgent identifies the client on outbound requests.
	UserAgent = "quotedesk-cli/1.0"
)
