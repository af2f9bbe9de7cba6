package cli

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/quotedesk/internal/client/models"
	"github.com/dmitrijs2005/quotedesk/internal/client/recovery"
	"github.com/dmitrijs2005/quotedesk/internal/client/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecovery() *fakeRecoveryService {
	return &fakeRecoveryService{ValidateRet: &models.TokenValidation{Valid: true, Email: "a@b.com"}}
}

func TestReset_NoScreen(t *testing.T) {
	captureOutput(t)
	a := newTestApp(t, &fakeAuthService{}, &fakeRecoveryService{}, &fakeClock{})

	require.ErrorIs(t, a.Reset(context.Background()), ErrNoResetScreen)
}

func TestOpenReset_MissingToken(t *testing.T) {
	out := captureOutput(t)
	rs := validRecovery()
	a := newTestApp(t, &fakeAuthService{}, rs, &fakeClock{})

	require.NoError(t, a.Open(context.Background(), "/reset-password"))
	assert.Equal(t, recovery.Invalid, a.currentFlow().State())
	assert.Contains(t, out.String(), recovery.MsgTokenMissing)
	assert.Contains(t, out.String(), "open /forgot-password")
	assert.Zero(t, rs.ValidateCalls)
}

func TestReset_Success_RedirectsToLoginAfterDelay(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, "", "Abcdef12", "Abcdef12")
	rs := validRecovery()
	clock := &fakeClock{}
	a := newTestApp(t, &fakeAuthService{}, rs, clock)

	require.NoError(t, a.Open(context.Background(), "/reset-password?token=t-1"))
	assert.Contains(t, out.String(), "Resetting password for a@b.com")

	require.NoError(t, a.Reset(context.Background()))
	assert.Equal(t, "Abcdef12", rs.LastResetPassword)
	assert.Contains(t, out.String(), "[x] At least 8 characters")
	assert.Contains(t, out.String(), recovery.MsgResetComplete)
	assert.Equal(t, router.ResetPassword, a.router.Current().Route.Name)

	clock.Advance(recovery.RedirectDelay - time.Millisecond)
	assert.Equal(t, router.ResetPassword, a.router.Current().Route.Name)

	clock.Advance(time.Millisecond)
	assert.Equal(t, router.Login, a.router.Current().Route.Name)
	assert.Nil(t, a.currentFlow())
}

func TestReset_LeavingScreenCancelsRedirect(t *testing.T) {
	captureOutput(t)
	stubInputs(t, "", "Abcdef12", "Abcdef12")
	clock := &fakeClock{}
	a := newTestApp(t, &fakeAuthService{}, validRecovery(), clock)

	require.NoError(t, a.Open(context.Background(), "/reset-password?token=t-1"))
	require.NoError(t, a.Reset(context.Background()))

	require.NoError(t, a.Open(context.Background(), "/forgot-password"))
	clock.Advance(recovery.RedirectDelay)
	assert.Equal(t, router.ForgotPassword, a.router.Current().Route.Name)
}

func TestReset_Mismatch_NoServerCall(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, "", "Abcdef12", "Abcdef13")
	rs := validRecovery()
	a := newTestApp(t, &fakeAuthService{}, rs, &fakeClock{})

	require.NoError(t, a.Open(context.Background(), "/reset-password?token=t-1"))
	require.ErrorIs(t, a.Reset(context.Background()), recovery.ErrPasswordMismatch)
	assert.Zero(t, rs.ResetCalls)
	assert.Contains(t, out.String(), recovery.MsgMismatch)
	assert.Equal(t, recovery.Valid, a.currentFlow().State())
}

func TestReset_WeakPassword_ShowsEveryRule(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, "", "Ab1", "Ab1")
	rs := validRecovery()
	a := newTestApp(t, &fakeAuthService{}, rs, &fakeClock{})

	require.NoError(t, a.Open(context.Background(), "/reset-password?token=t-1"))
	var pv *recovery.PolicyViolationError
	require.ErrorAs(t, a.Reset(context.Background()), &pv)

	s := out.String()
	assert.Contains(t, s, "[ ] At least 8 characters")
	assert.Contains(t, s, "[x] One uppercase letter")
	assert.Contains(t, s, "[x] One lowercase letter")
	assert.Contains(t, s, "[x] One number")
	assert.Zero(t, rs.ResetCalls)
}

func TestReset_InvalidLink_DoesNotPrompt(t *testing.T) {
	captureOutput(t)
	stubInputs(t, "")
	rs := &fakeRecoveryService{ValidateRet: &models.TokenValidation{Valid: false}}
	a := newTestApp(t, &fakeAuthService{}, rs, &fakeClock{})

	require.NoError(t, a.Open(context.Background(), "/reset-password?token=t-1"))
	require.NoError(t, a.Reset(context.Background()))
	assert.Zero(t, rs.ResetCalls)
}
