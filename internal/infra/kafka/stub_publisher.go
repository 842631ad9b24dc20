package kafka

import (
	"context"

	"go.uber.org/zap"

	"github.com/okunev/fishlog/internal/core/domain"
)

// StubPublisher satisfies port.EventPublisher when no brokers are configured.
// Events are logged at debug level and dropped.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a stub publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StubPublisher{logger: logger}
}

// PublishUserRegistered logs and drops the event.
func (s *StubPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	s.logger.Debug("stub publisher: user registered", zap.String("user_id", event.UserID))
	return nil
}

// PublishCatchLogged logs and drops the event.
func (s *StubPublisher) PublishCatchLogged(_ context.Context, event domain.CatchLoggedEvent) error {
	s.logger.Debug("stub publisher: catch logged", zap.String("catch_id", event.CatchID))
	return nil
}

// PublishSpotActivated logs and drops the event.
func (s *StubPublisher) PublishSpotActivated(_ context.Context, event domain.SpotActivatedEvent) error {
	s.logger.Debug("stub publisher: spot activated", zap.String("spot_id", event.SpotID))
	return nil
}
