package session

// RouteKind classifies a route for the redirect policy.
type RouteKind int

const (
	// Public routes are reachable in any state (reset and forgot password).
	Public RouteKind = iota
	// SignIn routes make no sense once signed in (the login screen).
	SignIn
	// Protected routes require a session.
	Protected
)

func (k RouteKind) String() string {
	switch k {
	case Public:
		return "public"
	case SignIn:
		return "sign-in"
	case Protected:
		return "protected"
	}
	return "unknown"
}

// Decision is the outcome of a guard check.
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	RedirectToDashboard
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect to login"
	case RedirectToDashboard:
		return "redirect to dashboard"
	}
	return "unknown"
}

// Decide maps the authentication state and route kind to a decision.
func Decide(authenticated bool, kind RouteKind) Decision {
	switch {
	case kind == Protected && !authenticated:
		return RedirectToLogin
	case kind == SignIn && authenticated:
		return RedirectToDashboard
	default:
		return Allow
	}
}
