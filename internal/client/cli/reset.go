package cli

import (
	"context"
	"errors"
	"os"

	"github.com/dmitrijs2005/quotedesk/internal/common"
)

var ErrNoResetScreen = errors.New("reset screen not open")

// Reset asks for the new password twice and submits it through the open
// reset screen. Rule indicators are printed after the first entry; rule
// and confirmation failures never reach the server.
func (a *App) Reset(ctx context.Context) error {
	flow := a.currentFlow()
	if flow == nil {
		printlnFn("Open your reset link first: open /reset-password?token=...")
		return ErrNoResetScreen
	}

	if v := flow.View(); !v.CanSubmit {
		renderRecovery(v)
		return nil
	}

	password, err := getPassword(os.Stdout, "New password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	renderRules(flow.Evaluate(string(password)))

	confirm, err := getPassword(os.Stdout, "Confirm password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	err = flow.Submit(ctx, string(password), string(confirm))
	renderRecovery(flow.View())
	return err
}
