package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/quotedesk/internal/client/client"
	"github.com/dmitrijs2005/quotedesk/internal/client/router"
	"github.com/dmitrijs2005/quotedesk/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForgot_NeutralConfirmation(t *testing.T) {
	for _, reqErr := range []error{nil, &client.APIError{Status: 404, Detail: "No such user"}} {
		out := captureOutput(t)
		stubInputs(t, "a@b.com")
		rs := &fakeRecoveryService{RequestErr: reqErr}
		a := newTestApp(t, &fakeAuthService{}, rs, &fakeClock{})

		require.NoError(t, a.Forgot(context.Background()))
		assert.Equal(t, "a@b.com", rs.LastRequestEmail)
		assert.Contains(t, out.String(), linkSentMessage)
		assert.NotContains(t, out.String(), "No such user")
		assert.Equal(t, router.ForgotPassword, a.router.Current().Route.Name)
	}
}

func TestForgot_InvalidEmail(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, "nope")
	rs := &fakeRecoveryService{RequestErr: services.ErrInvalidEmail}
	a := newTestApp(t, &fakeAuthService{}, rs, &fakeClock{})

	require.ErrorIs(t, a.Forgot(context.Background()), services.ErrInvalidEmail)
	assert.Contains(t, out.String(), "valid email address")
	assert.NotContains(t, out.String(), linkSentMessage)
}

func TestForgot_Unavailable(t *testing.T) {
	out := captureOutput(t)
	stubInputs(t, "a@b.com")
	rs := &fakeRecoveryService{RequestErr: errors.Join(errors.New("request reset link"), client.ErrUnavailable)}
	a := newTestApp(t, &fakeAuthService{}, rs, &fakeClock{})

	require.ErrorIs(t, a.Forgot(context.Background()), client.ErrUnavailable)
	assert.Contains(t, out.String(), "unavailable")
}
