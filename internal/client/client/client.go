package client

import (
	"context"

	"github.com/dmitrijs2005/quotedesk/internal/client/models"
)

// Client is the transport-agnostic contract of the QuoteDesk API as used by
// the client. Authenticated calls use the credential installed by Login or
// UseCredential.
type Client interface {
	Close() error
	Login(ctx context.Context, email string, password string) (*models.Credential, error)
	Logout(ctx context.Context) error
	UseCredential(cred *models.Credential)
	Me(ctx context.Context) (*models.User, error)
	Ping(ctx context.Context) error
	ValidateResetToken(ctx context.Context, token string) (*models.TokenValidation, error)
	ResetPassword(ctx context.Context, token string, newPassword string) error
	RequestPasswordReset(ctx context.Context, email string) error
}
