package authgw

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/okunev/fishlog/internal/core/domain"
	"github.com/okunev/fishlog/internal/core/port"
	"github.com/okunev/fishlog/internal/repository"
)

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User

	touched []string
}

func (r *memoryUserRepo) Create(_ context.Context, user domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.users == nil {
		r.users = make(map[string]domain.User)
	}
	r.users[user.ID] = user
	return nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			copied := user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := user
	return &copied, nil
}

func (r *memoryUserRepo) TouchLastLogin(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.touched = append(r.touched, id)
	return nil
}

type memorySettingsRepo struct {
	mu   sync.Mutex
	docs map[string]domain.Settings
}

func (r *memorySettingsRepo) Get(_ context.Context, ownerID string) (*domain.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[ownerID]
	if !ok {
		return nil, nil
	}
	copied := doc
	return &copied, nil
}

func (r *memorySettingsRepo) Upsert(_ context.Context, ownerID string, update domain.SettingsUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
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

type memoryProfileRepo struct {
	mu   sync.Mutex
	docs map[string]domain.Profile
}

func (r *memoryProfileRepo) Get(_ context.Context, ownerID string) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[ownerID]
	if !ok {
		return nil, nil
	}
	copied := doc
	return &copied, nil
}

func (r *memoryProfileRepo) Upsert(_ context.Context, ownerID string, update domain.ProfileUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
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

type fakeRateStore struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
	resets   []string
}

func (f *fakeRateStore) RecordAttempt(_ context.Context, identifier string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.attempts == nil {
		f.attempts = make(map[string][]time.Time)
	}
	f.attempts[identifier] = append(f.attempts[identifier], at)
	return nil
}

func (f *fakeRateStore) CountAttempts(_ context.Context, identifier string, _ time.Duration, _ time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.attempts[identifier]), nil
}

func (f *fakeRateStore) TrimWindow(_ context.Context, _ string, _ time.Duration, _ time.Time) error {
	return nil
}

func (f *fakeRateStore) Reset(_ context.Context, identifier string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.attempts, identifier)
	f.resets = append(f.resets, identifier)
	return nil
}

func newTestGateway(t *testing.T, rate port.RateLimitStore) (*Gateway, *memoryUserRepo, *memorySettingsRepo, *memoryProfileRepo) {
	t.Helper()
	users := &memoryUserRepo{}
	settings := &memorySettingsRepo{}
	profiles := &memoryProfileRepo{}
	gw := New(Config{LoginMaxAttempts: 3}, users, settings, profiles, rate, nil, nil, zaptest.NewLogger(t))
	return gw, users, settings, profiles
}

func TestRegisterRejectsInvalidInput(t *testing.T) {
	gw, _, _, _ := newTestGateway(t, nil)
	ctx := context.Background()

	if _, err := gw.Register(ctx, "not-an-email", "secret1", "Иван"); !errors.Is(err, port.ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}

	if _, err := gw.Register(ctx, "ivan@example.com", "short", "Иван"); !errors.Is(err, port.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	gw, _, _, _ := newTestGateway(t, nil)
	ctx := context.Background()

	if _, err := gw.Register(ctx, "ivan@example.com", "secret1", "Иван"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}

	if _, err := gw.Register(ctx, "IVAN@example.com", "secret1", "Иван"); !errors.Is(err, port.ErrEmailInUse) {
		t.Fatalf("expected ErrEmailInUse, got %v", err)
	}
}

func TestRegisterSeedsProfileAndDefaultSettings(t *testing.T) {
	gw, _, settings, profiles := newTestGateway(t, nil)

	user, err := gw.Register(context.Background(), "Ivan@Example.com", "secret1", "Иван")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if user.Email != "ivan@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}

	doc, ok := settings.docs[user.ID]
	if !ok {
		t.Fatal("expected default settings document seeded")
	}
	if doc != domain.DefaultSettings() {
		t.Fatalf("expected pristine defaults, got %+v", doc)
	}

	profile, ok := profiles.docs[user.ID]
	if !ok || profile.Name != "Иван" || profile.Email != "ivan@example.com" {
		t.Fatalf("expected seeded profile, got %+v", profile)
	}
}

func TestLoginVerifiesCredentials(t *testing.T) {
	rate := &fakeRateStore{}
	gw, users, _, _ := newTestGateway(t, rate)
	ctx := context.Background()

	registered, err := gw.Register(ctx, "ivan@example.com", "secret1", "Иван")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if _, err := gw.Login(ctx, "ivan@example.com", "wrong-pass"); !errors.Is(err, port.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(rate.attempts["ivan@example.com"]) != 1 {
		t.Fatalf("expected failed attempt recorded, got %d", len(rate.attempts["ivan@example.com"]))
	}

	user, err := gw.Login(ctx, "ivan@example.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected same account, got %q vs %q", user.ID, registered.ID)
	}
	if len(users.touched) != 1 {
		t.Fatalf("expected last-login touch, got %d", len(users.touched))
	}
	if len(rate.resets) != 1 {
		t.Fatalf("expected throttle reset after success, got %d", len(rate.resets))
	}
}

func TestLoginUnknownAccountRecordsAttempt(t *testing.T) {
	rate := &fakeRateStore{}
	gw, _, _, _ := newTestGateway(t, rate)

	if _, err := gw.Login(context.Background(), "ghost@example.com", "secret1"); !errors.Is(err, port.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(rate.attempts["ghost@example.com"]) != 1 {
		t.Fatal("expected attempt recorded for unknown account")
	}
}

func TestLoginThrottlesAfterRepeatedFailures(t *testing.T) {
	rate := &fakeRateStore{}
	gw, _, _, _ := newTestGateway(t, rate)
	ctx := context.Background()

	if _, err := gw.Register(ctx, "ivan@example.com", "secret1", "Иван"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if _, err := gw.Login(ctx, "ivan@example.com", "wrong-pass"); !errors.Is(err, port.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}

	// The window is saturated; even the correct password is rejected.
	if _, err := gw.Login(ctx, "ivan@example.com", "secret1"); !errors.Is(err, port.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestOnSessionChangeFiresImmediatelyAndOnTransitions(t *testing.T) {
	gw, _, _, _ := newTestGateway(t, nil)
	ctx := context.Background()

	var (
		mu     sync.Mutex
		events []*port.AuthUser
	)
	unsubscribe := gw.OnSessionChange(func(user *port.AuthUser) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, user)
	})
	defer unsubscribe()

	mu.Lock()
	if len(events) != 1 || events[0] != nil {
		mu.Unlock()
		t.Fatalf("expected immediate nil event, got %+v", events)
	}
	mu.Unlock()

	user, err := gw.Register(ctx, "ivan@example.com", "secret1", "Иван")
	if err != nil {
		t.Fatalf("registration failed: %v", err)
	}
	if err := gw.Logout(ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	if events[1] == nil || events[1].ID != user.ID {
		t.Fatalf("expected sign-in event for %s, got %+v", user.ID, events[1])
	}
	if events[2] != nil {
		t.Fatalf("expected sign-out event, got %+v", events[2])
	}
}

func TestUnsubscribedCallbackStopsReceiving(t *testing.T) {
	gw, _, _, _ := newTestGateway(t, nil)

	var count int
	unsubscribe := gw.OnSessionChange(func(*port.AuthUser) { count++ })
	unsubscribe()

	if _, err := gw.Register(context.Background(), "ivan@example.com", "secret1", "Иван"); err != nil {
		t.Fatalf("registration failed: %v", err)
	}

	if count != 1 {
		t.Fatalf("expected only the immediate event, got %d", count)
	}
}

func TestMisconfiguredGateway(t *testing.T) {
	gw := New(Config{}, nil, nil, nil, nil, nil, nil, zaptest.NewLogger(t))

	if _, err := gw.Register(context.Background(), "ivan@example.com", "secret1", "Иван"); !errors.Is(err, port.ErrGatewayMisconfigured) {
		t.Fatalf("expected ErrGatewayMisconfigured, got %v", err)
	}
	if _, err := gw.Login(context.Background(), "ivan@example.com", "secret1"); !errors.Is(err, port.ErrGatewayMisconfigured) {
		t.Fatalf("expected ErrGatewayMisconfigured, got %v", err)
	}
}
