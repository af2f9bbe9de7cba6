// Package credentials persists the signed-in session credential of the CLI
// in the local SQLite database so a later run can restore the session.
//
// The table holds at most one row. Load returns (nil, nil) when nothing is
// stored.
package credentials
