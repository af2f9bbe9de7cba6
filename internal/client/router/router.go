// Package router maps screen paths to routes and tracks the current
// location of the CLI.
package router

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/dmitrijs2005/quotedesk/internal/client/session"
	"github.com/gorilla/mux"
)

// Route names.
const (
	Home           = "home"
	Login          = "login"
	Dashboard      = "dashboard"
	ResetPassword  = "reset-password"
	ForgotPassword = "forgot-password"
)

var ErrUnknownRoute = errors.New("unknown route")

// Route is a screen reachable by path.
type Route struct {
	Name string
	Path string
	Kind session.RouteKind
}

// DefaultRoutes are the screens of the client.
func DefaultRoutes() []Route {
	return []Route{
		{Name: Home, Path: "/", Kind: session.Protected},
		{Name: Login, Path: "/login", Kind: session.SignIn},
		{Name: Dashboard, Path: "/dashboard", Kind: session.Protected},
		{Name: ResetPassword, Path: "/reset-password", Kind: session.Public},
		{Name: ForgotPassword, Path: "/forgot-password", Kind: session.Public},
	}
}

// Location is a resolved path.
type Location struct {
	Route Route
	Path  string
	Query url.Values
	Vars  map[string]string
}

// String returns the path with its query.
func (l Location) String() string {
	if len(l.Query) == 0 {
		return l.Path
	}
	return l.Path + "?" + l.Query.Encode()
}

// Router resolves paths and keeps the current location. Navigate may be
// called from any goroutine.
type Router struct {
	mux      *mux.Router
	routes   map[string]Route
	fallback string

	mu        sync.Mutex
	current   Location
	listeners map[int]func(Location)
	nextID    int
}

// New builds a router. Navigating to an unknown path goes to fallback,
// which must be one of the routes.
func New(fallback string, routes ...Route) (*Router, error) {
	r := &Router{
		mux:       mux.NewRouter(),
		routes:    make(map[string]Route, len(routes)),
		fallback:  fallback,
		listeners: make(map[int]func(Location)),
	}
	for _, rt := range routes {
		if _, dup := r.routes[rt.Name]; dup {
			return nil, fmt.Errorf("duplicate route %q", rt.Name)
		}
		r.mux.NewRoute().Path(rt.Path).Name(rt.Name)
		r.routes[rt.Name] = rt
	}
	if _, err := r.Resolve(fallback); err != nil {
		return nil, fmt.Errorf("fallback %q: %w", fallback, err)
	}
	return r, nil
}

// Resolve matches raw, a path with an optional query, against the routes.
func (r *Router) Resolve(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("parse path: %w", err)
	}
	if u.Path == "" {
		u.Path = "/"
	}

	var match mux.RouteMatch
	req := &http.Request{Method: http.MethodGet, URL: u}
	if !r.mux.Match(req, &match) || match.Route == nil {
		return Location{}, fmt.Errorf("%w: %s", ErrUnknownRoute, u.Path)
	}

	return Location{
		Route: r.routes[match.Route.GetName()],
		Path:  u.Path,
		Query: u.Query(),
		Vars:  match.Vars,
	}, nil
}

// Navigate moves to path and notifies listeners. Unknown paths go to the
// fallback route.
func (r *Router) Navigate(path string) {
	loc, err := r.Resolve(path)
	if err != nil {
		loc, _ = r.Resolve(r.fallback)
	}

	r.mu.Lock()
	r.current = loc
	fns := make([]func(Location), 0, len(r.listeners))
	for _, fn := range r.listeners {
		fns = append(fns, fn)
	}
	r.mu.Unlock()

	for _, fn := range fns {
		fn(loc)
	}
}

// Current returns the location of the last navigation.
func (r *Router) Current() Location {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// OnChange registers fn for every navigation and returns a function that
// removes it.
func (r *Router) OnChange(fn func(Location)) (remove func()) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++
	r.listeners[id] = fn
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		delete(r.listeners, id)
		r.mu.Unlock()
	}
}

// PathFor returns the path of the named route.
func (r *Router) PathFor(name string) (string, bool) {
	rt, ok := r.routes[name]
	return rt.Path, ok
}
