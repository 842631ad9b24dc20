package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap/zaptest"

	"github.com/okunev/fishlog/internal/core/domain"
	"github.com/okunev/fishlog/internal/core/port"
	"github.com/okunev/fishlog/internal/infra/security"
	"github.com/okunev/fishlog/internal/repository"
	"github.com/okunev/fishlog/internal/transport/http/handlers"
	"github.com/okunev/fishlog/internal/transport/http/middleware"
	"github.com/okunev/fishlog/internal/usecase"
)

// idleGateway satisfies the gateway port for tests that never exercise
// credential operations; per-user session scoping happens in the registry.
type idleGateway struct{}

func (idleGateway) Register(context.Context, string, string, string) (*port.AuthUser, error) {
	return nil, port.ErrGatewayMisconfigured
}

func (idleGateway) Login(context.Context, string, string) (*port.AuthUser, error) {
	return nil, port.ErrGatewayMisconfigured
}

func (idleGateway) Logout(context.Context) error { return nil }

func (idleGateway) OnSessionChange(cb port.SessionCallback) port.Unsubscribe {
	cb(nil)
	return func() {}
}

type memoryCatchRepo struct {
	mu      sync.Mutex
	catches []domain.Catch
}

func (r *memoryCatchRepo) Create(_ context.Context, c domain.Catch) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.catches = append(r.catches, c)
	return c.ID, nil
}

func (r *memoryCatchRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Catch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Catch
	for _, c := range r.catches {
		if c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memoryCatchRepo) Update(_ context.Context, ownerID, id string, patch domain.CatchPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.catches {
		if r.catches[i].ID == id && r.catches[i].OwnerID == ownerID {
			patch.Apply(&r.catches[i])
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *memoryCatchRepo) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.catches {
		if r.catches[i].ID == id && r.catches[i].OwnerID == ownerID {
			r.catches = append(r.catches[:i], r.catches[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memorySpotRepo struct{}

func (memorySpotRepo) Create(_ context.Context, s domain.FishingSpot) (string, error) {
	return s.ID, nil
}

func (memorySpotRepo) ListByOwner(context.Context, string) ([]domain.FishingSpot, error) {
	return nil, nil
}

func (memorySpotRepo) Update(context.Context, string, string, domain.SpotPatch) error { return nil }

func (memorySpotRepo) Delete(context.Context, string, string) error { return nil }

type memorySettingsRepo struct{}

func (memorySettingsRepo) Get(context.Context, string) (*domain.Settings, error) { return nil, nil }

func (memorySettingsRepo) Upsert(context.Context, string, domain.SettingsUpdate) error { return nil }

type memoryProfileRepo struct{}

func (memoryProfileRepo) Get(context.Context, string) (*domain.Profile, error) { return nil, nil }

func (memoryProfileRepo) Upsert(context.Context, string, domain.ProfileUpdate) error { return nil }

func newTestRouter(t *testing.T) (*gin.Engine, *security.TokenManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := security.NewTokenManager("test-secret", "fishlog-test", time.Hour)
	if err != nil {
		t.Fatalf("create token manager: %v", err)
	}

	registry := usecase.NewRegistry(idleGateway{}, usecase.Repositories{
		Catches:  &memoryCatchRepo{},
		Spots:    memorySpotRepo{},
		Settings: memorySettingsRepo{},
		Profiles: memoryProfileRepo{},
	}, nil, zaptest.NewLogger(t))

	router := gin.New()
	authMiddleware := middleware.RequireAuth(tokens)

	catchGroup := router.Group("/api/v1/catches")
	catchGroup.Use(authMiddleware)
	handlers.NewCatchHandler(registry).RegisterRoutes(catchGroup)

	settingsGroup := router.Group("/api/v1/settings")
	settingsGroup.Use(authMiddleware)
	handlers.NewSettingsHandler(registry).RegisterRoutes(settingsGroup)

	return router, tokens
}

func authedRequestAs(t *testing.T, tokens *security.TokenManager, userID, method, path string, body []byte) *http.Request {
	t.Helper()

	token, err := tokens.Issue(userID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func authedRequest(t *testing.T, tokens *security.TokenManager, method, path string, body []byte) *http.Request {
	t.Helper()
	return authedRequestAs(t, tokens, "user-1", method, path, body)
}

func TestCatchEndpointsRejectAnonymousRequests(t *testing.T) {
	router, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/catches", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestCreateCatchFallsBackToUnknownLocation(t *testing.T) {
	router, tokens := newTestRouter(t)

	body := []byte(`{"fishType":"Карп","weight":"2.3"}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, tokens, http.MethodPost, "/api/v1/catches", body))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created handlers.CatchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Location != "Неизвестное место" {
		t.Fatalf("expected unknown-location fallback, got %q", created.Location)
	}

	// The new catch shows up in the listing.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, tokens, http.MethodGet, "/api/v1/catches", nil))

	var listed []handlers.CatchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("expected the created catch listed, got %+v", listed)
	}
}

func TestCatchMutationsAreScopedToTheOwner(t *testing.T) {
	router, tokens := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, tokens, http.MethodPost, "/api/v1/catches", []byte(`{"fishType":"Карп","weight":"2.3"}`)))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var created handlers.CatchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	// Another authenticated user cannot mutate or delete the row.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, authedRequestAs(t, tokens, "user-2", http.MethodPatch, "/api/v1/catches/"+created.ID, []byte(`{"fishType":"Сом"}`)))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 patching a foreign catch, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authedRequestAs(t, tokens, "user-2", http.MethodDelete, "/api/v1/catches/"+created.ID, nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 deleting a foreign catch, got %d", w.Code)
	}

	// The owner's catch is untouched.
	w = httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, tokens, http.MethodGet, "/api/v1/catches", nil))

	var listed []handlers.CatchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(listed) != 1 || listed[0].FishType != "Карп" {
		t.Fatalf("expected the owner's catch intact, got %+v", listed)
	}
}

func TestCreateCatchValidatesPayload(t *testing.T) {
	router, tokens := newTestRouter(t)

	body := []byte(`{"fishType":"Карп"}`)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, tokens, http.MethodPost, "/api/v1/catches", body))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing weight, got %d", w.Code)
	}
}

func TestGetSettingsReturnsDefaultsForFreshAccount(t *testing.T) {
	router, tokens := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authedRequest(t, tokens, http.MethodGet, "/api/v1/settings", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var settings handlers.SettingsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &settings); err != nil {
		t.Fatalf("decode settings: %v", err)
	}
	if settings.Preferences.Language != "ru" || settings.Preferences.WeightUnit != "kg" {
		t.Fatalf("unexpected defaults: %+v", settings.Preferences)
	}
	if !settings.Notifications.Weather || settings.Notifications.Reminders {
		t.Fatalf("unexpected notification defaults: %+v", settings.Notifications)
	}
}
