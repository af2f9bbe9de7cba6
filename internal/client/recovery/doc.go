// Package recovery implements the reset-password screen as a state machine.
//
// A Flow is created per screen instance with the token taken from the link.
// Start validates the token once; Submit checks the password rules and the
// confirmation locally before a single reset call; after a successful reset
// the flow navigates to the sign-in screen once RedirectDelay has passed,
// unless Close ran first.
package recovery
