package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/okunev/fishlog/internal/core/domain"
)

// SpotInput carries the fields for a new fishing spot.
type SpotInput struct {
	Name        string
	Location    string
	Rating      float64
	Distance    string
	FishTypes   []string
	LastVisit   string
	Image       string
	Coordinates *domain.Coordinates
}

// AddFishingSpot persists a new spot with a zero catch counter and appends
// it to the in-memory collection.
func (s *AppState) AddFishingSpot(ctx context.Context, input SpotInput) (domain.FishingSpot, error) {
	if strings.TrimSpace(input.Name) == "" {
		return domain.FishingSpot{}, validationError("name")
	}

	userID, err := s.currentUserID()
	if err != nil {
		return domain.FishingSpot{}, err
	}

	spot := domain.FishingSpot{
		ID:          uuid.NewString(),
		OwnerID:     userID,
		Name:        input.Name,
		Location:    input.Location,
		Rating:      input.Rating,
		Distance:    input.Distance,
		FishTypes:   append([]string(nil), input.FishTypes...),
		LastVisit:   input.LastVisit,
		Catches:     0,
		Image:       input.Image,
		Coordinates: input.Coordinates,
		CreatedAt:   time.Now().UTC(),
	}

	assignedID, err := s.repos.Spots.Create(ctx, spot)
	if err != nil {
		s.log.Error("add fishing spot failed", zap.Error(err))
		return domain.FishingSpot{}, fmt.Errorf("add fishing spot: %w", err)
	}
	spot.ID = assignedID

	s.mu.Lock()
	s.fishingSpots = append(s.fishingSpots, spot)
	s.mu.Unlock()

	return spot, nil
}

// UpdateFishingSpot applies a partial update remotely, then mirrors it locally.
func (s *AppState) UpdateFishingSpot(ctx context.Context, id string, patch domain.SpotPatch) error {
	userID, err := s.currentUserID()
	if err != nil {
		return err
	}

	if err := s.repos.Spots.Update(ctx, userID, id, patch); err != nil {
		s.log.Error("update fishing spot failed", zap.String("spot_id", id), zap.Error(err))
		return fmt.Errorf("update fishing spot: %w", err)
	}

	s.mu.Lock()
	for i := range s.fishingSpots {
		if s.fishingSpots[i].ID == id {
			patch.Apply(&s.fishingSpots[i])
		}
	}
	s.mu.Unlock()

	return nil
}

// SetActiveSpot makes the target spot the single active one. One remote
// update is issued per existing spot and all are awaited jointly; local
// state is updated uniformly only after every update succeeded. Updates that
// succeeded remotely before a failure are not rolled back, so local and
// remote can diverge until the next full reload.
func (s *AppState) SetActiveSpot(ctx context.Context, id string) error {
	userID, err := s.currentUserID()
	if err != nil {
		return err
	}

	snapshot := s.FishingSpots()

	var target *domain.FishingSpot
	for i := range snapshot {
		if snapshot[i].ID == id {
			target = &snapshot[i]
		}
	}
	if target == nil {
		return fmt.Errorf("%w: spot %s", ErrValidation, id)
	}

	errs := make([]error, len(snapshot))
	var wg sync.WaitGroup
	for i, spot := range snapshot {
		active := spot.ID == id
		wg.Add(1)
		go func(i int, spotID string, active bool) {
			defer wg.Done()
			patch := domain.SpotPatch{IsActive: &active}
			errs[i] = s.repos.Spots.Update(ctx, userID, spotID, patch)
		}(i, spot.ID, active)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		s.log.Error("set active spot failed", zap.String("spot_id", id), zap.Error(err))
		return fmt.Errorf("set active spot: %w", err)
	}

	s.mu.Lock()
	for i := range s.fishingSpots {
		s.fishingSpots[i].IsActive = s.fishingSpots[i].ID == id
	}
	s.mu.Unlock()

	if s.events != nil {
		event := domain.SpotActivatedEvent{
			EventID:     uuid.NewString(),
			UserID:      userID,
			SpotID:      id,
			SpotName:    target.Name,
			ActivatedAt: time.Now().UTC(),
		}
		if err := s.events.PublishSpotActivated(ctx, event); err != nil {
			s.log.Warn("publish spot activated failed", zap.Error(err))
		}
	}

	return nil
}
