package cli

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/dmitrijs2005/quotedesk/internal/client/client"
	"github.com/dmitrijs2005/quotedesk/internal/client/router"
	"github.com/dmitrijs2005/quotedesk/internal/client/services"
)

const linkSentMessage = "If an account exists for that address, a reset link is on its way."

// Forgot requests a new reset link. The confirmation does not reveal
// whether the address belongs to an account.
func (a *App) Forgot(ctx context.Context) error {
	if a.router.Current().Route.Name != router.ForgotPassword {
		a.router.Navigate("/forgot-password")
	}

	email, err := getSimpleText(a.reader, "Enter your account email", os.Stdout)
	if err != nil {
		return err
	}

	err = a.recoveryService.RequestLink(ctx, email)
	switch {
	case errors.Is(err, services.ErrInvalidEmail):
		printlnFn("Please enter a valid email address.")
		return err
	case errors.Is(err, client.ErrUnavailable):
		printlnFn("The server is unavailable. Please try again later.")
		return err
	case err != nil:
		log.Printf("reset link request failed: %v", err)
	}

	printlnFn(linkSentMessage)
	return nil
}
