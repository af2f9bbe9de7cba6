package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	arg   string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Open(ctx context.Context, path string) error {
	f.calls = append(f.calls, "open")
	f.arg = path
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Reset(ctx context.Context) error  { f.calls = append(f.calls, "reset"); return nil }
func (f *fakeExec) Forgot(ctx context.Context) error { f.calls = append(f.calls, "forgot"); return nil }
func (f *fakeExec) WhoAmI(ctx context.Context) error { f.calls = append(f.calls, "whoami"); return nil }

func reader(lines ...string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := captureOutput(t)

	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "" }, reader(
		"help",
		"",
		"login",
		"help",
		"whoami",
		"open /reset-password?token=abc",
		"reset",
		"forgot",
		"logout",
		"bogus",
		"exit",
		"login",
	))

	require.Equal(t, []string{"login", "whoami", "open", "reset", "forgot", "logout"}, f.calls)
	assert.Equal(t, "/reset-password?token=abc", f.arg)
	s := out.String()
	assert.Contains(t, s, "Available commands: login")
	assert.Contains(t, s, "Available commands: whoami")
	assert.Contains(t, s, "Unknown command: bogus")
	assert.Contains(t, s, "Bye!")
}

func TestRunREPL_OpenWithoutPath(t *testing.T) {
	out := captureOutput(t)

	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "" }, reader("open", "go /login"))

	assert.Contains(t, out.String(), "Usage: open <path>")
	assert.Equal(t, []string{"open"}, f.calls)
	assert.Equal(t, "/login", f.arg)
}

func TestRunREPL_LastLineWithoutNewline(t *testing.T) {
	captureOutput(t)

	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "" }, reader("forgot"))
	assert.Equal(t, []string{"forgot"}, f.calls)
}

func TestRunREPL_StopsWhenContextDone(t *testing.T) {
	captureOutput(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := &fakeExec{}
	runREPL(ctx, f, func() string { return "" }, reader("login"))
	assert.Empty(t, f.calls)
}

func TestRunREPL_PromptShowsStatus(t *testing.T) {
	out := captureOutput(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "(a@b.com online) /dashboard" }, reader("exit"))
	assert.Contains(t, out.String(), "qd (a@b.com online) /dashboard> ")
}
