package recovery

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/quotedesk/internal/client/client"
	"github.com/dmitrijs2005/quotedesk/internal/client/models"
	"github.com/dmitrijs2005/quotedesk/internal/client/policy"
	"github.com/dmitrijs2005/quotedesk/internal/logging"
)

const (
	// RedirectDelay is how long the success screen stays before sign-in.
	RedirectDelay = 3 * time.Second

	LoginPath          = "/login"
	ForgotPasswordPath = "/forgot-password"
)

// API is the part of the remote API the flow calls.
type API interface {
	Validate(ctx context.Context, token string) (*models.TokenValidation, error)
	Reset(ctx context.Context, token string, newPassword string) error
}

// Navigator moves the application to another screen.
type Navigator interface {
	Navigate(path string)
}

// View is a snapshot of the flow for rendering.
type View struct {
	State State
	// Email is set once the token is accepted. It is only displayed.
	Email   string
	Message string
	// Rules holds the indicators for the last password passed to Evaluate.
	Rules     []policy.Result
	CanSubmit bool
}

// Option configures a Flow.
type Option func(*Flow)

// WithClock replaces the clock used for the post-reset redirect.
func WithClock(c Clock) Option {
	return func(f *Flow) { f.clock = c }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l logging.Logger) Option {
	return func(f *Flow) { f.logger = l }
}

// Flow is one reset-password screen instance.
type Flow struct {
	token  string
	api    API
	nav    Navigator
	clock  Clock
	logger logging.Logger

	mu       sync.Mutex
	state    State
	email    string
	message  string
	rules    []policy.Result
	started  bool
	inFlight bool
	closed   bool
	redirect Task
}

// New creates a flow in the Validating state for token.
func New(token string, api API, nav Navigator, opts ...Option) *Flow {
	f := &Flow{
		token:  token,
		api:    api,
		nav:    nav,
		clock:  SystemClock,
		logger: logging.Discard(),
		state:  Validating,
		rules:  policy.Evaluate(""),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Start validates the token. It runs at most once per flow.
func (f *Flow) Start(ctx context.Context) error {
	f.mu.Lock()
	if f.started {
		f.mu.Unlock()
		return ErrBusy
	}
	f.started = true

	if f.token == "" {
		f.advance(EvTokenMissing)
		f.message = MsgTokenMissing
		f.mu.Unlock()
		return ErrTokenMissing
	}
	f.inFlight = true
	f.mu.Unlock()

	res, err := f.api.Validate(ctx, f.token)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false

	switch {
	case err != nil:
		f.logger.Warn(ctx, "reset token check failed", "error", err)
		f.advance(EvTokenRejected)
		f.message = MsgTokenInvalid
		return fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	case res == nil || !res.Valid:
		f.advance(EvTokenRejected)
		f.message = MsgTokenInvalid
		if res != nil && res.Error != "" {
			f.message = res.Error
		}
		return ErrTokenInvalid
	}

	f.advance(EvTokenAccepted)
	f.email = res.Email
	f.message = ""
	return nil
}

// Evaluate checks password against every rule and keeps the result for View.
func (f *Flow) Evaluate(password string) []policy.Result {
	res := policy.Evaluate(password)
	f.mu.Lock()
	f.rules = res
	f.mu.Unlock()
	return res
}

// Submit sends the new password. Rule and confirmation failures are decided
// locally and never reach the API.
func (f *Flow) Submit(ctx context.Context, password string, confirm string) error {
	f.mu.Lock()
	if f.state == Submitting || f.inFlight {
		f.mu.Unlock()
		return ErrBusy
	}
	if f.state != Valid {
		f.mu.Unlock()
		return ErrNotReady
	}

	f.rules = policy.Evaluate(password)
	if rule, bad := policy.FirstViolation(password); bad {
		f.message = rule.Message()
		f.mu.Unlock()
		return &PolicyViolationError{Rule: rule}
	}
	if !(policy.Candidate{Password: password, Confirm: confirm}).Matches() {
		f.message = MsgMismatch
		f.mu.Unlock()
		return ErrPasswordMismatch
	}

	f.advance(EvSubmit)
	f.message = ""
	f.inFlight = true
	f.mu.Unlock()

	err := f.api.Reset(ctx, f.token, password)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.inFlight = false

	if err != nil {
		f.advance(EvResetFailed)
		return f.rejected(err)
	}

	f.advance(EvResetSucceeded)
	f.message = MsgResetComplete
	if !f.closed {
		f.redirect = f.clock.AfterFunc(RedirectDelay, f.redirectToLogin)
	}
	return nil
}

func (f *Flow) rejected(err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && !errors.Is(err, client.ErrUnavailable) {
		f.message = apiErr.Detail
		if f.message == "" {
			f.message = MsgResetFailed
		}
		return &ServerRejectedError{Message: apiErr.Detail, Err: err}
	}
	f.message = MsgResetFailed
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}

func (f *Flow) redirectToLogin() {
	f.mu.Lock()
	if f.closed || f.redirect == nil {
		f.mu.Unlock()
		return
	}
	f.redirect = nil
	f.mu.Unlock()

	f.nav.Navigate(LoginPath)
}

// RequestNewLink leaves the screen for the request-a-new-link screen.
func (f *Flow) RequestNewLink() {
	f.Close()
	f.nav.Navigate(ForgotPasswordPath)
}

// Close tears the flow down and cancels a pending redirect.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	if f.redirect != nil {
		f.redirect.Stop()
		f.redirect = nil
	}
}

// View returns a snapshot for rendering.
func (f *Flow) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	rules := make([]policy.Result, len(f.rules))
	copy(rules, f.rules)
	return View{
		State:     f.state,
		Email:     f.email,
		Message:   f.message,
		Rules:     rules,
		CanSubmit: f.state == Valid && !f.inFlight,
	}
}

// State returns the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// advance applies ev. Callers hold f.mu.
func (f *Flow) advance(ev Event) {
	tr, ok := TransitionFor(f.state, ev)
	if !ok {
		panic(fmt.Sprintf("recovery: no transition from %s on %s", f.state, ev))
	}
	f.state = tr.To
}
