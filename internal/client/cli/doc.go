// Package cli provides the interactive QuoteDesk command-line client.
//
// It wires configuration, the local session store, API services, the
// session gate and the screen router into a REPL. Screens are opened by
// path (for example "open /reset-password?token=..."); every time a screen
// is shown, and every time the session changes, the gate decides whether
// the screen may stay or the user is redirected.
//
// Key features:
//   - Login / Logout with a session restored on the next start
//   - Password reset from an emailed link, with live rule indicators
//   - Request of a new reset link
//   - Online/offline status from a background liveness watcher
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
