package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/okunev/fishlog/internal/core/domain"
	"github.com/okunev/fishlog/internal/infra/config"
)

const schemaVersion = "1.0"

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type eventEnvelope struct {
	EventID   string            `json:"event_id"`
	EventType string            `json:"event_type"`
	UserID    string            `json:"user_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Payload   any               `json:"payload"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventID, eventType, userID string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	id := eventID
	if id == "" {
		id = uuid.NewString()
	}

	envelope := eventEnvelope{
		EventID:   id,
		EventType: eventType,
		UserID:    userID,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata: map[string]string{
			"service":     p.appCfg.Name,
			"environment": p.appCfg.Env,
		},
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishUserRegistered publishes fishlog.user.registered events.
func (p *EventPublisher) PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error {
	payload := struct {
		UserID       string    `json:"user_id"`
		Email        string    `json:"email"`
		DisplayName  string    `json:"display_name"`
		RegisteredAt time.Time `json:"registered_at"`
	}{
		UserID:       event.UserID,
		Email:        event.Email,
		DisplayName:  event.DisplayName,
		RegisteredAt: event.RegisteredAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "fishlog.user.registered", event.UserID, event.RegisteredAt, payload)
}

// PublishCatchLogged publishes fishlog.catch.logged events.
func (p *EventPublisher) PublishCatchLogged(ctx context.Context, event domain.CatchLoggedEvent) error {
	payload := struct {
		UserID   string    `json:"user_id"`
		CatchID  string    `json:"catch_id"`
		FishType string    `json:"fish_type"`
		Weight   string    `json:"weight"`
		Location string    `json:"location"`
		SpotID   string    `json:"spot_id,omitempty"`
		LoggedAt time.Time `json:"logged_at"`
	}{
		UserID:   event.UserID,
		CatchID:  event.CatchID,
		FishType: event.FishType,
		Weight:   event.Weight,
		Location: event.Location,
		SpotID:   event.SpotID,
		LoggedAt: event.LoggedAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "fishlog.catch.logged", event.UserID, event.LoggedAt, payload)
}

// PublishSpotActivated publishes fishlog.spot.activated events.
func (p *EventPublisher) PublishSpotActivated(ctx context.Context, event domain.SpotActivatedEvent) error {
	payload := struct {
		UserID      string    `json:"user_id"`
		SpotID      string    `json:"spot_id"`
		SpotName    string    `json:"spot_name"`
		ActivatedAt time.Time `json:"activated_at"`
	}{
		UserID:      event.UserID,
		SpotID:      event.SpotID,
		SpotName:    event.SpotName,
		ActivatedAt: event.ActivatedAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "fishlog.spot.activated", event.UserID, event.ActivatedAt, payload)
}
