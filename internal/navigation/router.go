package navigation

import (
	"sync"

	"github.com/Zulu-012/luct-reporting-system/internal/models"
)

// Router keeps one user's current view selection. Select accepts any key
// unconditionally; validation happens at resolve time, so a selection that
// the user's role cannot render silently falls back to the role default
// instead of failing the navigation.
type Router struct {
	mu       sync.Mutex
	user     models.User
	selected View
}

// NewRouter starts at the role's default view.
func NewRouter(user models.User) *Router {
	return &Router{user: user, selected: DefaultView(user.Role)}
}

// Select records the requested view without checking it against the
// user's menu.
func (r *Router) Select(view View) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.selected = view
}

// Current returns the raw selection as recorded by Select.
func (r *Router) Current() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.selected
}

// Resolve maps the recorded selection to the view that actually renders
// for the owner's role. A selection outside the role's menu resolves to
// the role default; an unrecognised role resolves to the fallback view.
func (r *Router) Resolve() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.user.Role.Valid() {
		return ViewUnrecognizedRole
	}
	if InMenu(r.user.Role, r.selected) {
		return r.selected
	}
	return DefaultView(r.user.Role)
}

// Reset rebinds the router to a new identity and returns the selection to
// that identity's default view. Stale selections must never leak across a
// login change.
func (r *Router) Reset(user models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.user = user
	r.selected = DefaultView(user.Role)
}

// Owner returns the identity the router currently serves.
func (r *Router) Owner() models.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.user
}

// Registry hands out one router per user and resets a user's router when
// the identity behind the ID changes.
type Registry struct {
	mu      sync.Mutex
	routers map[int]*Router
}

func NewRegistry() *Registry {
	return &Registry{routers: make(map[int]*Router)}
}

// For returns the user's router, creating or resetting it as needed.
func (g *Registry) For(user models.User) *Router {
	g.mu.Lock()
	defer g.mu.Unlock()
	r, ok := g.routers[user.ID]
	if !ok {
		r = NewRouter(user)
		g.routers[user.ID] = r
		return r
	}
	if r.Owner().Role != user.Role {
		r.Reset(user)
	}
	return r
}

// Drop discards a user's router on logout.
func (g *Registry) Drop(userID int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.routers, userID)
}
