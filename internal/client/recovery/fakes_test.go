package recovery

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/quotedesk/internal/client/models"
)

type fakeAPI struct {
	ValidateRet *models.TokenValidation
	ValidateErr error
	ResetErr    error

	// ResetHook runs inside Reset before it returns.
	ResetHook func()

	ValidateCalls     int
	ResetCalls        int
	LastValidateToken string
	LastResetToken    string
	LastResetPassword string
}

func (f *fakeAPI) Validate(ctx context.Context, token string) (*models.TokenValidation, error) {
	f.ValidateCalls++
	f.LastValidateToken = token
	return f.ValidateRet, f.ValidateErr
}

func (f *fakeAPI) Reset(ctx context.Context, token string, newPassword string) error {
	f.ResetCalls++
	f.LastResetToken, f.LastResetPassword = token, newPassword
	if f.ResetHook != nil {
		f.ResetHook()
	}
	return f.ResetErr
}

type fakeNav struct {
	mu    sync.Mutex
	paths []string
}

func (n *fakeNav) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *fakeNav) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

// fakeClock runs scheduled tasks when Advance moves simulated time past
// their deadline.
type fakeClock struct {
	now   time.Duration
	tasks []*fakeTask
}

type fakeTask struct {
	at      time.Duration
	fn      func()
	fired   bool
	stopped bool
}

func (t *fakeTask) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (c *fakeClock) AfterFunc(d time.Duration, fn func()) Task {
	t := &fakeTask{at: c.now + d, fn: fn}
	c.tasks = append(c.tasks, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now += d
	for _, t := range c.tasks {
		if !t.fired && !t.stopped && t.at <= c.now {
			t.fired = true
			t.fn()
		}
	}
}

func (c *fakeClock) Pending() int {
	n := 0
	for _, t := range c.tasks {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}
