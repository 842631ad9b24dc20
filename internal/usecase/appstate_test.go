package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/okunev/fishlog/internal/core/domain"
	"github.com/okunev/fishlog/internal/core/port"
)

func TestInitialSessionSettlesLoading(t *testing.T) {
	f := newFixture(t)

	if f.state.Loading() {
		t.Fatal("expected loading to settle after the initial session event")
	}
	if f.state.IsAuthenticated() {
		t.Fatal("expected no authenticated session before sign-in")
	}
	if got := f.state.Settings(); got != domain.DefaultSettings() {
		t.Fatalf("expected default settings, got %+v", got)
	}
}

func TestSignInLoadsCollections(t *testing.T) {
	f := newFixture(t)

	older := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 6, 10, 19, 30, 0, 0, time.UTC)
	f.catches.catches = []domain.Catch{
		{ID: "c1", OwnerID: "user-1", FishType: "Карп", Weight: "2.3", Date: older},
		{ID: "c2", OwnerID: "user-1", FishType: "Щука", Weight: "1.1", Date: newer},
		{ID: "c3", OwnerID: "someone-else", FishType: "Окунь", Weight: "0.4", Date: newer},
	}
	f.spots.spots = []domain.FishingSpot{
		{ID: "s1", OwnerID: "user-1", Name: "Озеро", CreatedAt: older},
	}
	f.settings.docs = map[string]domain.Settings{"user-1": func() domain.Settings {
		s := domain.DefaultSettings()
		s.Preferences.DarkMode = true
		return s
	}()}
	f.profiles.docs = map[string]domain.Profile{"user-1": {Name: "Иван", Email: "ivan@example.com"}}

	f.gateway.signIn(&port.AuthUser{ID: "user-1", Email: "ivan@example.com"})

	if !f.state.IsAuthenticated() {
		t.Fatal("expected authenticated session")
	}

	catches := f.state.Catches()
	if len(catches) != 2 {
		t.Fatalf("expected 2 catches for the owner, got %d", len(catches))
	}
	if catches[0].ID != "c2" || catches[1].ID != "c1" {
		t.Fatalf("expected most recent catch first, got order %s, %s", catches[0].ID, catches[1].ID)
	}

	if spots := f.state.FishingSpots(); len(spots) != 1 || spots[0].Name != "Озеро" {
		t.Fatalf("unexpected spots snapshot: %+v", spots)
	}

	settings := f.state.Settings()
	if !settings.Preferences.DarkMode {
		t.Fatal("expected stored preferences to be loaded")
	}
	if settings.User.Name != "Иван" {
		t.Fatalf("expected profile merged into settings, got %+v", settings.User)
	}
}

func TestSignInWithoutDocumentsFallsBackToDefaults(t *testing.T) {
	f := newFixture(t)

	f.gateway.signIn(&port.AuthUser{ID: "user-1"})

	if got := f.state.Settings(); got != domain.DefaultSettings() {
		t.Fatalf("expected default settings for a fresh account, got %+v", got)
	}
	if got := f.state.Language(); got != "ru" {
		t.Fatalf("expected default language ru, got %q", got)
	}
}

func TestLogoutClearsState(t *testing.T) {
	f := newFixture(t)

	f.catches.catches = []domain.Catch{{ID: "c1", OwnerID: "user-1", FishType: "Карп", Weight: "2.3"}}
	f.spots.spots = []domain.FishingSpot{{ID: "s1", OwnerID: "user-1", Name: "Озеро"}}
	f.gateway.signIn(&port.AuthUser{ID: "user-1"})

	if err := f.state.Logout(context.Background()); err != nil {
		t.Fatalf("logout failed: %v", err)
	}

	if f.state.IsAuthenticated() {
		t.Fatal("expected session to be cleared")
	}
	if got := f.state.Catches(); len(got) != 0 {
		t.Fatalf("expected catches cleared, got %d", len(got))
	}
	if got := f.state.FishingSpots(); len(got) != 0 {
		t.Fatalf("expected spots cleared, got %d", len(got))
	}
	if got := f.state.Settings(); got != domain.DefaultSettings() {
		t.Fatalf("expected settings reset to defaults, got %+v", got)
	}
}

func TestActionsRequireAuthentication(t *testing.T) {
	f := newFixture(t)

	_, err := f.state.AddCatch(context.Background(), CatchInput{FishType: "Карп", Weight: "2.3"})
	if !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if f.catches.createCalls != 0 {
		t.Fatalf("expected no remote calls while signed out, got %d", f.catches.createCalls)
	}

	if err := f.state.UpdateSettings(context.Background(), domain.SettingsUpdate{}); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestModalToggles(t *testing.T) {
	f := newFixture(t)

	if f.state.ShowAddCatchModal() || f.state.ShowAddSpotModal() {
		t.Fatal("expected modals hidden initially")
	}

	f.state.SetShowAddCatchModal(true)
	f.state.SetShowAddSpotModal(true)

	if !f.state.ShowAddCatchModal() || !f.state.ShowAddSpotModal() {
		t.Fatal("expected modals visible after toggling")
	}
}

func TestCloseIsIdempotentUnderConcurrentUse(t *testing.T) {
	f := newFixture(t)
	f.gateway.signIn(&port.AuthUser{ID: "user-1"})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.state.Close()
		}()
	}
	wg.Wait()

	// A late Close after teardown stays a no-op.
	f.state.Close()
}
