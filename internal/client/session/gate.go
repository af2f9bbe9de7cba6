package session

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/quotedesk/internal/client/client"
	"github.com/dmitrijs2005/quotedesk/internal/client/models"
	"github.com/dmitrijs2005/quotedesk/internal/logging"
	"github.com/go-playground/validator/v10"
)

// Authenticator signs in and out against the API.
type Authenticator interface {
	Login(ctx context.Context, email string, password string) (*models.Credential, error)
	Logout(ctx context.Context) error
}

// Store keeps the credential between runs.
type Store interface {
	Restore(ctx context.Context) (*models.Credential, error)
	Save(ctx context.Context, cred *models.Credential) error
	Clear(ctx context.Context) error
}

type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// Gate owns the current Session. It is safe for concurrent use; watchers
// are called without the lock held.
type Gate struct {
	auth     Authenticator
	store    Store
	logger   logging.Logger
	validate *validator.Validate

	mu       sync.Mutex
	session  Session
	watchers map[int]func(Session)
	nextID   int
}

// NewGate returns an unauthenticated gate.
func NewGate(auth Authenticator, store Store, logger logging.Logger) *Gate {
	return &Gate{
		auth:     auth,
		store:    store,
		logger:   logger,
		validate: validator.New(),
		watchers: make(map[int]func(Session)),
	}
}

// Init restores a stored session. A restore failure leaves the gate
// unauthenticated and is returned for logging.
func (g *Gate) Init(ctx context.Context) error {
	cred, err := g.store.Restore(ctx)
	if err != nil {
		g.logger.Warn(ctx, "session restore failed", "error", err)
		return err
	}
	if cred == nil {
		return nil
	}

	user := cred.User
	g.set(Session{Authenticated: true, User: &user})
	g.logger.Info(ctx, "session restored", "user_id", user.ID)
	return nil
}

// Login signs in and stores the credential. Any failure is an *AuthError.
func (g *Gate) Login(ctx context.Context, email string, password string) (Session, error) {
	in := loginInput{Email: strings.TrimSpace(email), Password: password}
	if err := g.validate.Struct(in); err != nil {
		return g.Current(), &AuthError{Message: inputMessage(err), Err: err}
	}

	cred, err := g.auth.Login(ctx, in.Email, in.Password)
	if err != nil {
		msg := client.Detail(err)
		if msg == "" {
			msg = DefaultAuthMessage
		}
		g.logger.Info(ctx, "sign-in rejected", "error", err)
		return g.Current(), &AuthError{Message: msg, Err: err}
	}

	if err := g.store.Save(ctx, cred); err != nil {
		g.logger.Warn(ctx, "session not persisted", "error", err)
	}

	user := cred.User
	s := Session{Authenticated: true, User: &user}
	g.set(s)
	return s, nil
}

// Logout ends the session. It always succeeds locally: the server call and
// the store cleanup are best effort.
func (g *Gate) Logout(ctx context.Context) {
	if err := g.auth.Logout(ctx); err != nil {
		g.logger.Warn(ctx, "server sign-out failed", "error", err)
	}
	g.drop(ctx)
}

// Expire ends the session after the server stopped accepting the
// credential. No server call is made.
func (g *Gate) Expire(ctx context.Context, reason string) {
	g.logger.Info(ctx, "session expired", "reason", reason)
	g.drop(ctx)
}

func (g *Gate) drop(ctx context.Context) {
	if err := g.store.Clear(ctx); err != nil {
		g.logger.Error(ctx, "session store not cleared", "error", err)
	}
	g.set(Session{})
}

// Guard decides whether a route of the given kind may render now.
func (g *Gate) Guard(kind RouteKind) Decision {
	return Decide(g.Current().Authenticated, kind)
}

// Current returns the current session.
func (g *Gate) Current() Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session
}

// Watch registers fn to be called after every session change and returns
// a function that removes it.
func (g *Gate) Watch(fn func(Session)) (unwatch func()) {
	g.mu.Lock()
	id := g.nextID
	g.nextID++
	g.watchers[id] = fn
	g.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.watchers, id)
			g.mu.Unlock()
		})
	}
}

func (g *Gate) set(s Session) {
	g.mu.Lock()
	g.session = s
	fns := make([]func(Session), 0, len(g.watchers))
	for _, fn := range g.watchers {
		fns = append(fns, fn)
	}
	g.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

func inputMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return DefaultAuthMessage
	}
	fe := verrs[0]
	switch {
	case fe.Tag() == "required" && fe.Field() == "Email":
		return "Email is required"
	case fe.Tag() == "required":
		return "Password is required"
	case fe.Tag() == "email":
		return "Enter a valid email address"
	}
	return DefaultAuthMessage
}
