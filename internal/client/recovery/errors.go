package recovery

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/quotedesk/internal/client/policy"
)

const (
	MsgTokenMissing  = "Invalid or missing reset token"
	MsgTokenInvalid  = "Invalid or expired reset link"
	MsgMismatch      = "Passwords do not match"
	MsgResetFailed   = "Failed to reset password. Please try again."
	MsgResetComplete = "Password reset successfully. Redirecting to sign in..."
)

var (
	ErrTokenMissing     = errors.New("reset token missing")
	ErrTokenInvalid     = errors.New("reset token invalid or expired")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrNetwork          = errors.New("reset request failed")
	// ErrBusy is returned while a validation or submission is in flight,
	// or when Start runs twice.
	ErrBusy = errors.New("request already in progress")
	// ErrNotReady is returned by Submit outside the Valid state.
	ErrNotReady = errors.New("reset form not available")
)

// PolicyViolationError is a submit rejected locally by a password rule.
type PolicyViolationError struct {
	Rule policy.Rule
}

func (e *PolicyViolationError) Error() string {
	return fmt.Sprintf("password policy violation: %s", e.Rule)
}

// ServerRejectedError is a reset the API answered with an error.
type ServerRejectedError struct {
	Message string
	Err     error
}

func (e *ServerRejectedError) Error() string {
	if e.Message == "" {
		return "reset rejected by server"
	}
	return "reset rejected by server: " + e.Message
}

func (e *ServerRejectedError) Unwrap() error {
	return e.Err
}
