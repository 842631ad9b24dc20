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

// CatchInput carries the fields for a new catch. FishType and Weight are
// required; everything else is optional.
type CatchInput struct {
	FishType string
	Weight   string
	Length   string
	Location string
	Bait     string
	Notes    string
	Photo    string
}

// AddCatch validates the input, resolves the location against the active
// spot, persists the catch, and prepends it to the in-memory list. When a
// spot is active its catch counter is bumped as a second, independent write.
func (s *AppState) AddCatch(ctx context.Context, input CatchInput) (domain.Catch, error) {
	if strings.TrimSpace(input.FishType) == "" {
		return domain.Catch{}, validationError("fishType")
	}
	if strings.TrimSpace(input.Weight) == "" {
		return domain.Catch{}, validationError("weight")
	}

	userID, err := s.currentUserID()
	if err != nil {
		return domain.Catch{}, err
	}

	location := input.Location
	activeSpot := s.activeSpot()
	if location == "" {
		if activeSpot != nil {
			location = activeSpot.Name
		} else {
			location = s.tr("catch.unknown_location")
		}
	}

	now := time.Now().UTC()
	newCatch := domain.Catch{
		ID:        uuid.NewString(),
		OwnerID:   userID,
		FishType:  input.FishType,
		Weight:    input.Weight,
		Length:    input.Length,
		Location:  location,
		Bait:      input.Bait,
		Notes:     input.Notes,
		Photo:     input.Photo,
		Date:      now,
		CreatedAt: now,
	}

	assignedID, err := s.repos.Catches.Create(ctx, newCatch)
	if err != nil {
		s.log.Error("add catch failed", zap.Error(err))
		return domain.Catch{}, fmt.Errorf("add catch: %w", err)
	}
	newCatch.ID = assignedID

	s.mu.Lock()
	s.catches = append([]domain.Catch{newCatch}, s.catches...)
	s.mu.Unlock()

	var spotID string
	if activeSpot != nil {
		spotID = activeSpot.ID
		updated := activeSpot.Catches + 1
		patch := domain.SpotPatch{Catches: &updated}
		if err := s.repos.Spots.Update(ctx, userID, activeSpot.ID, patch); err != nil {
			s.log.Error("bump spot counter failed", zap.String("spot_id", activeSpot.ID), zap.Error(err))
			return newCatch, fmt.Errorf("update spot counter: %w", err)
		}

		s.mu.Lock()
		for i := range s.fishingSpots {
			if s.fishingSpots[i].ID == activeSpot.ID {
				s.fishingSpots[i].Catches = updated
			}
		}
		s.mu.Unlock()
	}

	if s.events != nil {
		event := domain.CatchLoggedEvent{
			EventID:  uuid.NewString(),
			UserID:   userID,
			CatchID:  newCatch.ID,
			FishType: newCatch.FishType,
			Weight:   newCatch.Weight,
			Location: newCatch.Location,
			SpotID:   spotID,
			LoggedAt: now,
		}
		if err := s.events.PublishCatchLogged(ctx, event); err != nil {
			s.log.Warn("publish catch logged failed", zap.Error(err))
		}
	}

	return newCatch, nil
}

// UpdateCatch applies a partial update remotely, then mirrors it locally.
func (s *AppState) UpdateCatch(ctx context.Context, id string, patch domain.CatchPatch) error {
	userID, err := s.currentUserID()
	if err != nil {
		return err
	}

	if err := s.repos.Catches.Update(ctx, userID, id, patch); err != nil {
		s.log.Error("update catch failed", zap.String("catch_id", id), zap.Error(err))
		return fmt.Errorf("update catch: %w", err)
	}

	s.mu.Lock()
	for i := range s.catches {
		if s.catches[i].ID == id {
			patch.Apply(&s.catches[i])
		}
	}
	s.mu.Unlock()

	return nil
}

// DeleteCatch removes a catch remotely, then locally. The active spot's
// counter is not decremented; only creation increments it.
func (s *AppState) DeleteCatch(ctx context.Context, id string) error {
	userID, err := s.currentUserID()
	if err != nil {
		return err
	}

	if err := s.repos.Catches.Delete(ctx, userID, id); err != nil {
		s.log.Error("delete catch failed", zap.String("catch_id", id), zap.Error(err))
		return fmt.Errorf("delete catch: %w", err)
	}

	s.mu.Lock()
	filtered := s.catches[:0]
	for _, c := range s.catches {
		if c.ID != id {
			filtered = append(filtered, c)
		}
	}
	s.catches = filtered
	s.mu.Unlock()

	return nil
}

// DeleteAllCatches issues one delete per catch, concurrently, and waits for
// all to settle. The batch is not atomic: some deletes may have succeeded
// remotely even when the action reports failure. Local state is cleared only
// when every delete succeeded.
func (s *AppState) DeleteAllCatches(ctx context.Context) error {
	userID, err := s.currentUserID()
	if err != nil {
		return err
	}

	snapshot := s.Catches()
	if len(snapshot) == 0 {
		return nil
	}

	errs := make([]error, len(snapshot))
	var wg sync.WaitGroup
	for i, c := range snapshot {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			errs[i] = s.repos.Catches.Delete(ctx, userID, id)
		}(i, c.ID)
	}
	wg.Wait()

	if err := errors.Join(errs...); err != nil {
		s.log.Error("delete all catches failed", zap.Error(err))
		return fmt.Errorf("delete all catches: %w", err)
	}

	s.mu.Lock()
	s.catches = nil
	s.mu.Unlock()

	return nil
}

func (s *AppState) activeSpot() *domain.FishingSpot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, spot := range s.fishingSpots {
		if spot.IsActive {
			copied := spot
			return &copied
		}
	}
	return nil
}
