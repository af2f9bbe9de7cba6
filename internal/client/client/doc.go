// Package client contains the client-side building blocks that talk to the
// QuoteDesk backend.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface): Login,
//     Logout, Me, Ping and the password-reset endpoints
//     (ValidateResetToken, ResetPassword, RequestPasswordReset).
//  2. A concrete REST/JSON implementation (see HTTPClient) that stamps every
//     request with a request id, injects the bearer token for authenticated
//     calls and maps failures to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) wiring an
//     SQLite database and applying embedded goose migrations.
//
// # Error Handling
//
// Transport failures map to ErrUnavailable. Non-2xx answers are returned as
// *APIError carrying the server "detail" text; 401/403 match ErrUnauthorized
// and 502/503/504 match ErrUnavailable through errors.Is. Use Detail(err) to
// get the message meant for the user.
//
// Concurrency & Contexts
//
// HTTPClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package client
