package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/quotedesk/internal/client/client"
	"github.com/dmitrijs2005/quotedesk/internal/client/models"
	"github.com/dmitrijs2005/quotedesk/internal/logging"
	"github.com/go-playground/validator/v10"
)

// ErrInvalidEmail is returned by RequestLink for an empty or malformed address.
var ErrInvalidEmail = errors.New("invalid email address")

// RecoveryService wraps the password-reset endpoints.
//
// Contract:
//   - Validate: ask the server whether a reset token is usable.
//   - Reset: set a new password for the account behind the token.
//   - RequestLink: ask the server to mail a fresh reset link.
type RecoveryService interface {
	Validate(ctx context.Context, token string) (*models.TokenValidation, error)
	Reset(ctx context.Context, token string, newPassword string) error
	RequestLink(ctx context.Context, email string) error
}

type linkRequest struct {
	Email string `validate:"required,email"`
}

type recoveryService struct {
	client   client.Client
	validate *validator.Validate
	logger   logging.Logger
}

// NewRecoveryService constructs a RecoveryService bound to the given API client.
func NewRecoveryService(c client.Client, logger logging.Logger) RecoveryService {
	return &recoveryService{client: c, validate: validator.New(), logger: logger}
}

func (r *recoveryService) Validate(ctx context.Context, token string) (*models.TokenValidation, error) {
	v, err := r.client.ValidateResetToken(ctx, token)
	if err != nil {
		r.logger.Warn(ctx, "reset token validation failed", "error", err)
		return nil, fmt.Errorf("validate reset token: %w", err)
	}
	if v == nil {
		return nil, fmt.Errorf("validate reset token: %w", client.ErrInvalidAnswer)
	}
	return v, nil
}

func (r *recoveryService) Reset(ctx context.Context, token string, newPassword string) error {
	if err := r.client.ResetPassword(ctx, token, newPassword); err != nil {
		r.logger.Warn(ctx, "password reset rejected", "error", err)
		return fmt.Errorf("reset password: %w", err)
	}
	r.logger.Info(ctx, "password reset")
	return nil
}

func (r *recoveryService) RequestLink(ctx context.Context, email string) error {
	req := linkRequest{Email: strings.TrimSpace(email)}
	if err := r.validate.Struct(req); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, req.Email)
	}
	if err := r.client.RequestPasswordReset(ctx, req.Email); err != nil {
		return fmt.Errorf("request reset link: %w", err)
	}
	return nil
}
