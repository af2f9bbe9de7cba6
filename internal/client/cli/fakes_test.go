package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/quotedesk/internal/client/config"
	"github.com/dmitrijs2005/quotedesk/internal/client/models"
	"github.com/dmitrijs2005/quotedesk/internal/client/recovery"
	"github.com/dmitrijs2005/quotedesk/internal/logging"
	"github.com/stretchr/testify/require"
)

// ---- output capture ----

type outBuf struct {
	mu    sync.Mutex
	lines []string
}

func (o *outBuf) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return strings.Join(o.lines, "")
}

func captureOutput(t *testing.T) *outBuf {
	t.Helper()
	out := &outBuf{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out.mu.Lock()
		defer out.mu.Unlock()
		s := fmt.Sprintln(a...)
		out.lines = append(out.lines, s)
		return len(s), nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return out
}

// ---- input stubs ----

func stubInputs(t *testing.T, text string, passwords ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	i := 0
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return text, nil }
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		if i >= len(passwords) {
			return nil, io.EOF
		}
		p := passwords[i]
		i++
		return []byte(p), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

// ---- fake services ----

type fakeAuthService struct {
	RestoreRet  *models.Credential
	LoginRet    *models.Credential
	LoginErr    error
	LogoutErr   error
	CheckErr    error
	PingErr     error
	CloseErr    error
	SaveErr     error
	ClearErr    error
	CheckCalls  int
	LogoutCalls int
	ClearCalls  int
	Saved       *models.Credential
	LastEmail   string
}

func (f *fakeAuthService) Restore(ctx context.Context) (*models.Credential, error) {
	return f.RestoreRet, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email string, password string) (*models.Credential, error) {
	f.LastEmail = email
	return f.LoginRet, f.LoginErr
}

func (f *fakeAuthService) Save(ctx context.Context, cred *models.Credential) error {
	f.Saved = cred
	return f.SaveErr
}

func (f *fakeAuthService) Clear(ctx context.Context) error {
	f.ClearCalls++
	return f.ClearErr
}

func (f *fakeAuthService) Logout(ctx context.Context) error {
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeAuthService) CheckSession(ctx context.Context) error {
	f.CheckCalls++
	return f.CheckErr
}

func (f *fakeAuthService) Ping(ctx context.Context) error  { return f.PingErr }
func (f *fakeAuthService) Close(ctx context.Context) error { return f.CloseErr }

type fakeRecoveryService struct {
	ValidateRet *models.TokenValidation
	ValidateErr error
	ResetErr    error
	RequestErr  error

	ValidateCalls     int
	ResetCalls        int
	LastResetPassword string
	LastRequestEmail  string
}

func (f *fakeRecoveryService) Validate(ctx context.Context, token string) (*models.TokenValidation, error) {
	f.ValidateCalls++
	return f.ValidateRet, f.ValidateErr
}

func (f *fakeRecoveryService) Reset(ctx context.Context, token string, newPassword string) error {
	f.ResetCalls++
	f.LastResetPassword = newPassword
	return f.ResetErr
}

func (f *fakeRecoveryService) RequestLink(ctx context.Context, email string) error {
	f.LastRequestEmail = email
	return f.RequestErr
}

// ---- fake clock ----

type fakeClock struct {
	now   time.Duration
	tasks []*fakeTask
}

type fakeTask struct {
	at   time.Duration
	fn   func()
	done bool
}

func (t *fakeTask) Stop() bool {
	if t.done {
		return false
	}
	t.done = true
	return true
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) recovery.Task {
	t := &fakeTask{at: c.now + d, fn: fn}
	c.tasks = append(c.tasks, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now += d
	for _, t := range c.tasks {
		if !t.done && t.at <= c.now {
			t.done = true
			t.fn()
		}
	}
}

// ---- app ----

func testCredential() *models.Credential {
	return &models.Credential{AccessToken: "tok", User: models.User{ID: "u-1", Email: "a@b.com"}}
}

func newTestApp(t *testing.T, as *fakeAuthService, rs *fakeRecoveryService, clock *fakeClock) *App {
	t.Helper()
	cfg := &config.Config{}
	cfg.LoadDefaults()
	a, err := newApp(cfg, logging.Discard(), as, rs, clock, bufio.NewReader(strings.NewReader("")))
	require.NoError(t, err)
	return a
}
