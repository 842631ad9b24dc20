package port

import (
	"context"

	"github.com/okunev/fishlog/internal/core/domain"
)

// EventPublisher publishes domain lifecycle events to the event stream.
// Publishing is best effort: callers log failures and continue.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error
	PublishCatchLogged(ctx context.Context, event domain.CatchLoggedEvent) error
	PublishSpotActivated(ctx context.Context, event domain.SpotActivatedEvent) error
}
