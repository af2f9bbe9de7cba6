package recovery

import (
	"fmt"
	"net/url"
	"strings"
)

// TokenParam is the query parameter carrying the reset token.
const TokenParam = "token"

// TokenFromQuery returns the reset token from parsed query values, or ""
// when absent or blank.
func TokenFromQuery(q url.Values) string {
	return strings.TrimSpace(q.Get(TokenParam))
}

// TokenFromURL extracts the reset token from a full link or a path with a
// query, such as "/reset-password?token=abc".
func TokenFromURL(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("parse reset link: %w", err)
	}
	return TokenFromQuery(u.Query()), nil
}
