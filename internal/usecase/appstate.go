package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/okunev/fishlog/internal/core/domain"
	"github.com/okunev/fishlog/internal/core/port"
	"github.com/okunev/fishlog/internal/i18n"
)

var (
	// ErrValidation indicates a required field is missing or malformed.
	// No remote call is made when validation fails.
	ErrValidation = errors.New("validation failed")
	// ErrNotAuthenticated indicates the action requires a signed-in user.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// Repositories groups the document store collections the state manager uses.
type Repositories struct {
	Catches  port.CatchRepository
	Spots    port.SpotRepository
	Settings port.SettingsRepository
	Profiles port.ProfileRepository
}

// AppState is the single owner of the authenticated session and all domain
// collections. It is the only component that talks to the auth gateway and
// the document store; presentation code reads snapshots and invokes actions.
//
// After any action returns, the in-memory state reflects either the new
// remote state or the prior one. Optimistic mutations already applied are
// not rolled back on remote failure.
type AppState struct {
	gateway port.AuthGateway
	repos   Repositories
	events  port.EventPublisher
	log     *zap.Logger

	unsubscribe port.Unsubscribe

	mu           sync.RWMutex
	loading      bool
	session      domain.Session
	catches      []domain.Catch
	fishingSpots []domain.FishingSpot
	settings     domain.Settings

	showAddCatchModal bool
	showAddSpotModal  bool
}

// NewAppState constructs the state container and subscribes to session
// changes. The subscription fires immediately with the current session, so
// the loading phase may already be settled when this returns.
func NewAppState(gateway port.AuthGateway, repos Repositories, events port.EventPublisher, log *zap.Logger) *AppState {
	if log == nil {
		log = zap.NewNop()
	}

	s := &AppState{
		gateway:  gateway,
		repos:    repos,
		events:   events,
		log:      log,
		loading:  true,
		settings: domain.DefaultSettings(),
	}

	s.unsubscribe = gateway.OnSessionChange(s.onSessionChange)

	return s
}

// Close tears down the session-change subscription.
func (s *AppState) Close() {
	s.mu.Lock()
	unsubscribe := s.unsubscribe
	s.unsubscribe = nil
	s.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (s *AppState) onSessionChange(user *port.AuthUser) {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	if user == nil {
		s.mu.Lock()
		s.session = domain.Session{}
		s.catches = nil
		s.fishingSpots = nil
		s.settings = domain.DefaultSettings()
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.session = domain.Session{UserID: user.ID}
	s.mu.Unlock()

	s.loadUserData(context.Background(), user.ID)
}

// loadUserData issues the four collection loads. A missing profile or
// settings document is handled as absent; list failures leave the collection
// empty and are logged.
func (s *AppState) loadUserData(ctx context.Context, userID string) {
	profile, err := s.repos.Profiles.Get(ctx, userID)
	if err != nil {
		s.log.Error("load profile failed", zap.String("user_id", userID), zap.Error(err))
	}

	settings, err := s.repos.Settings.Get(ctx, userID)
	if err != nil {
		s.log.Error("load settings failed", zap.String("user_id", userID), zap.Error(err))
	}

	catches, err := s.repos.Catches.ListByOwner(ctx, userID)
	if err != nil {
		s.log.Error("load catches failed", zap.String("user_id", userID), zap.Error(err))
	}

	spots, err := s.repos.Spots.ListByOwner(ctx, userID)
	if err != nil {
		s.log.Error("load spots failed", zap.String("user_id", userID), zap.Error(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := domain.DefaultSettings()
	if settings != nil {
		merged = *settings
	}
	if profile != nil {
		merged.User = *profile
	}
	s.settings = merged
	s.catches = catches
	s.fishingSpots = spots
}

// Loading reports whether the initial session check is still in progress.
func (s *AppState) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// IsAuthenticated reports whether a user is signed in.
func (s *AppState) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Authenticated()
}

// Session returns the current session status.
func (s *AppState) Session() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Catches returns a snapshot of the catch collection, most recent first.
func (s *AppState) Catches() []domain.Catch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Catch(nil), s.catches...)
}

// FishingSpots returns a snapshot of the spot collection.
func (s *AppState) FishingSpots() []domain.FishingSpot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.FishingSpot(nil), s.fishingSpots...)
}

// Settings returns a snapshot of the settings document.
func (s *AppState) Settings() domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Language returns the active language code.
func (s *AppState) Language() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings.Preferences.Language == "" {
		return i18n.DefaultLang
	}
	return s.settings.Preferences.Language
}

// T returns the active translation table.
func (s *AppState) T() i18n.Translations {
	return i18n.T(s.Language())
}

// ShowAddCatchModal reports the add-catch modal visibility toggle.
func (s *AppState) ShowAddCatchModal() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showAddCatchModal
}

// SetShowAddCatchModal flips the add-catch modal visibility toggle.
func (s *AppState) SetShowAddCatchModal(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showAddCatchModal = show
}

// ShowAddSpotModal reports the add-spot modal visibility toggle.
func (s *AppState) ShowAddSpotModal() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.showAddSpotModal
}

// SetShowAddSpotModal flips the add-spot modal visibility toggle.
func (s *AppState) SetShowAddSpotModal(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showAddSpotModal = show
}

func (s *AppState) currentUserID() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.session.Authenticated() {
		return "", ErrNotAuthenticated
	}
	return s.session.UserID, nil
}

func (s *AppState) tr(key string) string {
	return i18n.Get(s.Language(), key)
}

func validationError(field string) error {
	return fmt.Errorf("%w: %s is required", ErrValidation, field)
}
