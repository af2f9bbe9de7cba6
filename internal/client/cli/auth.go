package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/dmitrijs2005/quotedesk/internal/client/session"
	"github.com/dmitrijs2005/quotedesk/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

var ErrAlreadySignedIn = errors.New("already signed in")

// Login prompts for email and password and signs in through the gate.
//
// The failure message shown is the server's own, or a generic
// "Invalid email or password". On success the gate notifies the current
// screen, which moves to the dashboard when it was the sign-in screen.
// The password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		printlnFn("Already signed in as", a.gate.Current().Email())
		return ErrAlreadySignedIn
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.gate.Login(ctx, email, string(password)); err != nil {
		var authErr *session.AuthError
		if errors.As(err, &authErr) {
			printlnFn(authErr.Message)
		}
		log.Printf("Login unsuccessful: %s", err.Error())
		return err
	}

	log.Printf("Login successful")
	return nil
}

// Logout ends the session. Local state is always dropped, even when the
// server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not signed in.")
		return nil
	}
	a.gate.Logout(ctx)
	printlnFn("Signed out.")
	return nil
}

// WhoAmI prints the signed-in user after confirming the session with the API.
func (a *App) WhoAmI(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not signed in.")
		return nil
	}
	if !a.verifySession(ctx) {
		return nil
	}
	printlnFn(fmt.Sprintf("Signed in as %s", displayName(a.gate.Current())))
	return nil
}

// Open navigates to a screen path or a full link.
func (a *App) Open(ctx context.Context, path string) error {
	if _, err := a.router.Resolve(path); err != nil {
		printlnFn("Unknown screen:", path)
		return err
	}
	a.router.Navigate(path)
	return nil
}
