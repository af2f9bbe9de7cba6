// Package services contains application services for the QuoteDesk client.
// This file defines the authentication service: sign-in against the API,
// local persistence of the session credential, restore on start, sign-out
// and session/liveness probes.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/quotedesk/internal/client/client"
	"github.com/dmitrijs2005/quotedesk/internal/client/models"
	"github.com/dmitrijs2005/quotedesk/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/quotedesk/internal/dbx"
	"github.com/dmitrijs2005/quotedesk/internal/logging"
	"github.com/golang-jwt/jwt/v5"
)

// ErrSessionLost is returned by CheckSession when the server no longer
// accepts the stored credential.
var ErrSessionLost = errors.New("session lost")

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Restore: load the persisted credential; (nil, nil) when there is none
//     or it has expired (an expired one is removed).
//   - Login: authenticate against the server; the credential is not stored.
//   - Save: persist a credential so that Restore finds it on the next start.
//   - Clear: drop the local credential and stop sending it.
//   - Logout: tell the server to end the session.
//   - CheckSession: ask the server whether the credential is still good.
//   - Ping: check server liveness.
//   - Close: release underlying client resources.
//
// AuthService satisfies both halves the session gate needs: the
// authenticator (Login, Logout) and the store (Restore, Save, Clear).
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Restore(ctx context.Context) (*models.Credential, error)
	Login(ctx context.Context, email string, password string) (*models.Credential, error)
	Save(ctx context.Context, cred *models.Credential) error
	Clear(ctx context.Context) error
	Logout(ctx context.Context) error
	CheckSession(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// authService is the concrete AuthService backed by a remote Client and the
// local SQL database.
type authService struct {
	client client.Client
	db     *sql.DB
	logger logging.Logger
	now    func() time.Time
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(c client.Client, db *sql.DB, logger logging.Logger) AuthService {
	return &authService{client: c, db: db, logger: logger, now: time.Now}
}

func (a *authService) repo() credentials.Repository {
	return credentials.NewSQLiteRepository(a.db)
}

func (a *authService) Restore(ctx context.Context) (*models.Credential, error) {
	cred, err := a.repo().Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("restore session: %w", err)
	}
	if cred == nil {
		return nil, nil
	}

	if cred.Expired(a.now()) {
		a.logger.Info(ctx, "stored session expired", "user_id", cred.User.ID, "expired_at", cred.ExpiresAt)
		if err := a.repo().Clear(ctx); err != nil {
			return nil, fmt.Errorf("clear expired session: %w", err)
		}
		return nil, nil
	}

	a.client.UseCredential(cred)
	return cred, nil
}

func (a *authService) Login(ctx context.Context, email string, password string) (*models.Credential, error) {
	cred, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	cred.ExpiresAt = credentialExpiry(cred.AccessToken)
	a.logger.Info(ctx, "signed in", "user_id", cred.User.ID)
	return cred, nil
}

// Save replaces the stored session in a single transaction.
func (a *authService) Save(ctx context.Context, cred *models.Credential) error {
	if cred.SavedAt.IsZero() {
		cred.SavedAt = a.now().UTC()
	}
	err := dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := credentials.NewSQLiteRepository(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		return repo.Insert(ctx, cred)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (a *authService) Clear(ctx context.Context) error {
	a.client.UseCredential(nil)
	if err := a.repo().Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	if err := a.client.Logout(ctx); err != nil {
		return fmt.Errorf("logout error: %w", err)
	}
	return nil
}

func (a *authService) CheckSession(ctx context.Context) error {
	_, err := a.client.Me(ctx)
	if err == nil {
		return nil
	}
	if errors.Is(err, client.ErrUnauthorized) || errors.Is(err, client.ErrNoCredential) {
		return fmt.Errorf("%w: %v", ErrSessionLost, err)
	}
	return err
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}

// credentialExpiry reads the exp claim of a JWT access token. The signature
// is not checked: the client has no key, and the value only decides when to
// stop offering a stored session. Opaque tokens yield the zero time.
func credentialExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.UTC()
}
