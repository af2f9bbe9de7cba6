package cli

import (
	"fmt"

	"github.com/dmitrijs2005/quotedesk/internal/client/policy"
	"github.com/dmitrijs2005/quotedesk/internal/client/recovery"
	"github.com/dmitrijs2005/quotedesk/internal/client/router"
	"github.com/dmitrijs2005/quotedesk/internal/client/session"
)

// show renders loc after the gate allowed it. It runs on every navigation,
// including the delayed one after a password reset.
func (a *App) show(loc router.Location) {
	if a.redirect(loc) {
		return
	}

	if loc.Route.Name != router.ResetPassword {
		a.closeFlow()
	}

	switch loc.Route.Name {
	case router.Home:
		a.router.Navigate("/dashboard")
	case router.Login:
		printlnFn("Sign in to QuoteDesk: type 'login'. Forgot your password? 'open /forgot-password'.")
	case router.Dashboard:
		printlnFn(fmt.Sprintf("Signed in as %s. Type 'logout' to sign out.", displayName(a.gate.Current())))
	case router.ResetPassword:
		a.openReset(loc)
	case router.ForgotPassword:
		printlnFn("Forgot your password? Type 'forgot' to receive a new reset link.")
	}
}

// recheck re-runs the gate for the current screen after a session change.
func (a *App) recheck() {
	a.redirect(a.router.Current())
}

// redirect navigates away from loc when the gate does not allow it and
// reports whether it did.
func (a *App) redirect(loc router.Location) bool {
	switch a.gate.Guard(loc.Route.Kind) {
	case session.RedirectToLogin:
		printlnFn("Please sign in to continue.")
		a.router.Navigate("/login")
		return true
	case session.RedirectToDashboard:
		a.router.Navigate("/dashboard")
		return true
	}
	return false
}

// openReset starts a new flow for the token in loc, replacing any previous one.
func (a *App) openReset(loc router.Location) {
	flow := recovery.New(recovery.TokenFromQuery(loc.Query), a.recoveryService, a.router,
		recovery.WithClock(a.clock), recovery.WithLogger(a.logger))

	a.mu.Lock()
	old := a.flow
	a.flow = flow
	a.mu.Unlock()
	if old != nil {
		old.Close()
	}

	printlnFn("Reset password")
	renderRecovery(flow.View())
	if err := flow.Start(a.baseCtx); err != nil {
		a.logger.Debug(a.baseCtx, "reset link not usable", "error", err)
	}
	renderRecovery(flow.View())
}

func (a *App) currentFlow() *recovery.Flow {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.flow
}

func (a *App) closeFlow() {
	a.mu.Lock()
	flow := a.flow
	a.flow = nil
	a.mu.Unlock()
	if flow != nil {
		flow.Close()
	}
}

func displayName(s session.Session) string {
	if s.User == nil {
		return "unknown user"
	}
	if s.User.Name != "" {
		return fmt.Sprintf("%s <%s>", s.User.Name, s.User.Email)
	}
	return s.User.Email
}

// renderRecovery prints the reset screen for v. Every state has its own
// renderer.
func renderRecovery(v recovery.View) {
	switch v.State {
	case recovery.Validating:
		renderValidating(v)
	case recovery.Invalid:
		renderInvalid(v)
	case recovery.Valid:
		renderValid(v)
	case recovery.Submitting:
		renderSubmitting(v)
	case recovery.Success:
		renderSuccess(v)
	default:
		panic(fmt.Sprintf("no renderer for reset state %s", v.State))
	}
}

func renderValidating(recovery.View) {
	printlnFn("Checking your reset link...")
}

func renderInvalid(v recovery.View) {
	printlnFn(v.Message)
	printlnFn("Type 'open /forgot-password' to request a new link.")
}

func renderValid(v recovery.View) {
	if v.Email != "" {
		printlnFn("Resetting password for", v.Email)
	}
	if v.Message != "" {
		printlnFn(v.Message)
	}
	printlnFn("Type 'reset' to choose a new password.")
}

func renderSubmitting(recovery.View) {
	printlnFn("Resetting password...")
}

func renderSuccess(v recovery.View) {
	printlnFn(v.Message)
}

// renderRules prints one indicator per password rule.
func renderRules(results []policy.Result) {
	for _, r := range results {
		mark := "[ ]"
		if r.Passed {
			mark = "[x]"
		}
		printlnFn(mark, r.Rule.Label())
	}
}
