// Package session holds the client's authentication state and the redirect
// policy derived from it.
//
// A Gate is created once at start-up. Init restores a stored credential,
// Login and Logout move between the two states, and Expire handles a
// credential the server stopped accepting. Screens call Guard on every
// render and subscribe with Watch so that a change of state re-runs the
// check while the screen stays open.
package session
