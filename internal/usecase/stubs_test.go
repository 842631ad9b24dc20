package usecase

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap/zaptest"

	"github.com/okunev/fishlog/internal/core/domain"
	"github.com/okunev/fishlog/internal/core/port"
	"github.com/okunev/fishlog/internal/repository"
)

type fakeGateway struct {
	mu          sync.Mutex
	current     *port.AuthUser
	subscribers []port.SessionCallback

	registerErr error
	loginErr    error
}

func (g *fakeGateway) Register(_ context.Context, email, _, displayName string) (*port.AuthUser, error) {
	if g.registerErr != nil {
		return nil, g.registerErr
	}
	user := &port.AuthUser{ID: "user-new", Email: email, DisplayName: displayName}
	g.signIn(user)
	return user, nil
}

func (g *fakeGateway) Login(_ context.Context, email, _ string) (*port.AuthUser, error) {
	if g.loginErr != nil {
		return nil, g.loginErr
	}
	user := &port.AuthUser{ID: "user-1", Email: email}
	g.signIn(user)
	return user, nil
}

func (g *fakeGateway) Logout(_ context.Context) error {
	g.signIn(nil)
	return nil
}

func (g *fakeGateway) OnSessionChange(cb port.SessionCallback) port.Unsubscribe {
	g.mu.Lock()
	g.subscribers = append(g.subscribers, cb)
	current := g.current
	g.mu.Unlock()

	cb(current)
	return func() {}
}

func (g *fakeGateway) signIn(user *port.AuthUser) {
	g.mu.Lock()
	g.current = user
	callbacks := append([]port.SessionCallback(nil), g.subscribers...)
	g.mu.Unlock()

	for _, cb := range callbacks {
		cb(user)
	}
}

type stubCatchRepo struct {
	mu      sync.Mutex
	catches []domain.Catch

	createErr    error
	updateErr    error
	deleteErrFor map[string]error

	createCalls int
	updateCalls int
	deleteCalls int
}

func (r *stubCatchRepo) Create(_ context.Context, c domain.Catch) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.createErr != nil {
		return "", r.createErr
	}
	r.catches = append(r.catches, c)
	return c.ID, nil
}

func (r *stubCatchRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Catch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Catch
	for _, c := range r.catches {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r *stubCatchRepo) Update(_ context.Context, ownerID, id string, patch domain.CatchPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	if r.updateErr != nil {
		return r.updateErr
	}
	for i := range r.catches {
		if r.catches[i].ID == id && r.catches[i].OwnerID == ownerID {
			patch.Apply(&r.catches[i])
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *stubCatchRepo) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteCalls++
	if err, ok := r.deleteErrFor[id]; ok {
		return err
	}
	for i := range r.catches {
		if r.catches[i].ID == id && r.catches[i].OwnerID == ownerID {
			r.catches = append(r.catches[:i], r.catches[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type stubSpotRepo struct {
	mu    sync.Mutex
	spots []domain.FishingSpot

	createErr    error
	updateErrFor map[string]error

	createCalls int
	updateCalls int
}

func (r *stubSpotRepo) Create(_ context.Context, s domain.FishingSpot) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	if r.createErr != nil {
		return "", r.createErr
	}
	r.spots = append(r.spots, s)
	return s.ID, nil
}

func (r *stubSpotRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.FishingSpot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.FishingSpot
	for _, s := range r.spots {
		if s.OwnerID == ownerID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *stubSpotRepo) Update(_ context.Context, ownerID, id string, patch domain.SpotPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	if err, ok := r.updateErrFor[id]; ok {
		return err
	}
	for i := range r.spots {
		if r.spots[i].ID == id && r.spots[i].OwnerID == ownerID {
			patch.Apply(&r.spots[i])
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *stubSpotRepo) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.spots {
		if r.spots[i].ID == id && r.spots[i].OwnerID == ownerID {
			r.spots = append(r.spots[:i], r.spots[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *stubSpotRepo) byID(id string) (domain.FishingSpot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.spots {
		if s.ID == id {
			return s, true
		}
	}
	return domain.FishingSpot{}, false
}

type stubSettingsRepo struct {
	mu        sync.Mutex
	docs      map[string]domain.Settings
	upsertErr error

	upsertCalls int
}

func (r *stubSettingsRepo) Get(_ context.Context, ownerID string) (*domain.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[ownerID]
	if !ok {
		return nil, nil
	}
	copied := doc
	return &copied, nil
}

func (r *stubSettingsRepo) Upsert(_ context.Context, ownerID string, update domain.SettingsUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upsertCalls++
	if r.upsertErr != nil {
		return r.upsertErr
	}
	if r.docs == nil {
		r.docs = make(map[string]domain.Settings)
	}
	doc, ok := r.docs[ownerID]
	if !ok {
		doc = domain.DefaultSettings()
	}
	update.Apply(&doc)
	r.docs[ownerID] = doc
	return nil
}

type stubProfileRepo struct {
	mu        sync.Mutex
	docs      map[string]domain.Profile
	upsertErr error

	upsertCalls int
}

func (r *stubProfileRepo) Get(_ context.Context, ownerID string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[ownerID]
	if !ok {
		return nil, nil
	}
	copied := doc
	return &copied, nil
}

func (r *stubProfileRepo) Upsert(_ context.Context, ownerID string, update domain.ProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upsertCalls++
	if r.upsertErr != nil {
		return r.upsertErr
	}
	if r.docs == nil {
		r.docs = make(map[string]domain.Profile)
	}
	doc := r.docs[ownerID]
	if update.Name != nil {
		doc.Name = *update.Name
	}
	if update.Email != nil {
		doc.Email = *update.Email
	}
	if update.Avatar != nil {
		doc.Avatar = *update.Avatar
	}
	r.docs[ownerID] = doc
	return nil
}

type recordingPublisher struct {
	mu         sync.Mutex
	registered []domain.UserRegisteredEvent
	logged     []domain.CatchLoggedEvent
	activated  []domain.SpotActivatedEvent
}

func (p *recordingPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.registered = append(p.registered, event)
	return nil
}

func (p *recordingPublisher) PublishCatchLogged(_ context.Context, event domain.CatchLoggedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logged = append(p.logged, event)
	return nil
}

func (p *recordingPublisher) PublishSpotActivated(_ context.Context, event domain.SpotActivatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.activated = append(p.activated, event)
	return nil
}

type testFixture struct {
	gateway  *fakeGateway
	catches  *stubCatchRepo
	spots    *stubSpotRepo
	settings *stubSettingsRepo
	profiles *stubProfileRepo
	events   *recordingPublisher
	state    *AppState
}

func newFixture(t zaptest.TestingT) *testFixture {
	f := &testFixture{
		gateway:  &fakeGateway{},
		catches:  &stubCatchRepo{},
		spots:    &stubSpotRepo{},
		settings: &stubSettingsRepo{},
		profiles: &stubProfileRepo{},
		events:   &recordingPublisher{},
	}
	f.state = NewAppState(f.gateway, Repositories{
		Catches:  f.catches,
		Spots:    f.spots,
		Settings: f.settings,
		Profiles: f.profiles,
	}, f.events, zaptest.NewLogger(t))
	return f
}
