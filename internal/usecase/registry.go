package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/okunev/fishlog/internal/core/port"
)

// Registry hands out one AppState per authenticated user for the HTTP
// surface. Each state is bound to a session scope that replays the user's
// identity as its session stream; credential operations stay on the shared
// gateway.
type Registry struct {
	gateway port.AuthGateway
	repos   Repositories
	events  port.EventPublisher
	log     *zap.Logger

	mu     sync.Mutex
	states map[string]*AppState
}

// NewRegistry constructs a Registry over the shared gateway and repositories.
func NewRegistry(gateway port.AuthGateway, repos Repositories, events port.EventPublisher, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		gateway: gateway,
		repos:   repos,
		events:  events,
		log:     log,
		states:  make(map[string]*AppState),
	}
}

// StateFor returns the state container for the given user, creating and
// loading it on first use.
func (r *Registry) StateFor(user *port.AuthUser) *AppState {
	r.mu.Lock()
	if state, ok := r.states[user.ID]; ok {
		r.mu.Unlock()
		return state
	}
	r.mu.Unlock()

	scope := &sessionScope{parent: r.gateway, user: user}
	state := NewAppState(scope, r.repos, r.events, r.log.With(zap.String("user_id", user.ID)))

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.states[user.ID]; ok {
		state.Close()
		return existing
	}
	r.states[user.ID] = state
	return state
}

// Release tears down the state container for a user after logout.
func (r *Registry) Release(userID string) {
	r.mu.Lock()
	state, ok := r.states[userID]
	delete(r.states, userID)
	r.mu.Unlock()

	if ok {
		state.signOut()
		state.Close()
	}
}

// sessionScope adapts the shared gateway to the per-container session
// contract: the subscription fires with the scoped user, and sign-out is
// delivered to this scope's subscribers only.
type sessionScope struct {
	parent port.AuthGateway
	user   *port.AuthUser

	mu          sync.Mutex
	subscribers map[int]port.SessionCallback
	nextSubID   int
	signedOut   bool
}

func (s *sessionScope) Register(ctx context.Context, email, password, displayName string) (*port.AuthUser, error) {
	return s.parent.Register(ctx, email, password, displayName)
}

func (s *sessionScope) Login(ctx context.Context, email, password string) (*port.AuthUser, error) {
	return s.parent.Login(ctx, email, password)
}

func (s *sessionScope) Logout(_ context.Context) error {
	s.notify(nil)
	return nil
}

func (s *sessionScope) OnSessionChange(cb port.SessionCallback) port.Unsubscribe {
	s.mu.Lock()
	if s.subscribers == nil {
		s.subscribers = make(map[int]port.SessionCallback)
	}
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = cb
	current := s.user
	if s.signedOut {
		current = nil
	}
	s.mu.Unlock()

	cb(current)

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

func (s *sessionScope) notify(user *port.AuthUser) {
	s.mu.Lock()
	if user == nil {
		s.signedOut = true
	}
	callbacks := make([]port.SessionCallback, 0, len(s.subscribers))
	for _, cb := range s.subscribers {
		callbacks = append(callbacks, cb)
	}
	s.mu.Unlock()

	for _, cb := range callbacks {
		cb(user)
	}
}

// signOut delivers a nil session event through the container's own gateway.
func (s *AppState) signOut() {
	if scope, ok := s.gateway.(*sessionScope); ok {
		scope.notify(nil)
	}
}
