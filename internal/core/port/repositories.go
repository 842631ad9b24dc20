package port

import (
	"context"

	"github.com/okunev/fishlog/internal/core/domain"
)

// CatchRepository persists catches in the remote document store.
// Listings are scoped to an owner and ordered most-recent-first by capture
// date. Update and Delete match on both id and owner: a foreign owner id
// behaves exactly like a missing row.
type CatchRepository interface {
	Create(ctx context.Context, c domain.Catch) (string, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Catch, error)
	Update(ctx context.Context, ownerID, id string, patch domain.CatchPatch) error
	Delete(ctx context.Context, ownerID, id string) error
}

// SpotRepository persists fishing spots. Listings are scoped to an owner and
// ordered by creation time, newest first. Update and Delete are owner-scoped
// the same way as CatchRepository.
type SpotRepository interface {
	Create(ctx context.Context, s domain.FishingSpot) (string, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.FishingSpot, error)
	Update(ctx context.Context, ownerID, id string, patch domain.SpotPatch) error
	Delete(ctx context.Context, ownerID, id string) error
}

// SettingsRepository persists the per-user settings document, keyed by owner.
type SettingsRepository interface {
	Get(ctx context.Context, ownerID string) (*domain.Settings, error)
	Upsert(ctx context.Context, ownerID string, update domain.SettingsUpdate) error
}

// ProfileRepository persists the per-user profile document, keyed by owner.
type ProfileRepository interface {
	Get(ctx context.Context, ownerID string) (*domain.Profile, error)
	Upsert(ctx context.Context, ownerID string, update domain.ProfileUpdate) error
}

// UserRepository persists accounts for the local auth gateway.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	TouchLastLogin(ctx context.Context, id string) error
}
