package usecase

import (
	"testing"

	"go.uber.org/zap/zaptest"

	"github.com/okunev/fishlog/internal/core/domain"
	"github.com/okunev/fishlog/internal/core/port"
)

func newTestRegistry(t *testing.T) (*Registry, *stubCatchRepo) {
	t.Helper()
	catches := &stubCatchRepo{}
	registry := NewRegistry(&fakeGateway{}, Repositories{
		Catches:  catches,
		Spots:    &stubSpotRepo{},
		Settings: &stubSettingsRepo{},
		Profiles: &stubProfileRepo{},
	}, &recordingPublisher{}, zaptest.NewLogger(t))
	return registry, catches
}

func TestStateForReturnsSameContainerPerUser(t *testing.T) {
	registry, _ := newTestRegistry(t)

	first := registry.StateFor(&port.AuthUser{ID: "user-1"})
	second := registry.StateFor(&port.AuthUser{ID: "user-1"})
	other := registry.StateFor(&port.AuthUser{ID: "user-2"})

	if first != second {
		t.Fatal("expected the same container for repeated lookups")
	}
	if first == other {
		t.Fatal("expected separate containers per user")
	}
}

func TestStateForLoadsUserScopedData(t *testing.T) {
	registry, catches := newTestRegistry(t)
	catches.catches = []domain.Catch{
		{ID: "c1", OwnerID: "user-1", FishType: "Карп", Weight: "2.3"},
		{ID: "c2", OwnerID: "user-2", FishType: "Щука", Weight: "1.1"},
	}

	state := registry.StateFor(&port.AuthUser{ID: "user-1"})

	if !state.IsAuthenticated() {
		t.Fatal("expected scoped session to be established")
	}
	got := state.Catches()
	if len(got) != 1 || got[0].ID != "c1" {
		t.Fatalf("expected only the scoped user's catches, got %+v", got)
	}
}

func TestReleaseClearsContainer(t *testing.T) {
	registry, catches := newTestRegistry(t)
	catches.catches = []domain.Catch{{ID: "c1", OwnerID: "user-1", FishType: "Карп", Weight: "2.3"}}

	first := registry.StateFor(&port.AuthUser{ID: "user-1"})
	registry.Release("user-1")

	if first.IsAuthenticated() {
		t.Fatal("expected released container to be signed out")
	}
	if got := first.Catches(); len(got) != 0 {
		t.Fatalf("expected released container cleared, got %d catches", len(got))
	}

	second := registry.StateFor(&port.AuthUser{ID: "user-1"})
	if first == second {
		t.Fatal("expected a fresh container after release")
	}
}
