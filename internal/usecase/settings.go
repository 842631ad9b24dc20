package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/okunev/fishlog/internal/core/domain"
)

// UpdateSettings merges the partial update into the stored settings document
// and, when the profile sub-object is present, into the profile document.
// The two writes are independent: partial failure of one while the other
// succeeded is surfaced as a single action failure and not reconciled.
func (s *AppState) UpdateSettings(ctx context.Context, update domain.SettingsUpdate) error {
	userID, err := s.currentUserID()
	if err != nil {
		return err
	}

	if update.Notifications != nil || update.Preferences != nil {
		stored := domain.SettingsUpdate{
			Notifications: update.Notifications,
			Preferences:   update.Preferences,
		}
		if err := s.repos.Settings.Upsert(ctx, userID, stored); err != nil {
			s.log.Error("update settings failed", zap.String("user_id", userID), zap.Error(err))
			return fmt.Errorf("update settings: %w", err)
		}
	}

	if update.User != nil {
		if err := s.repos.Profiles.Upsert(ctx, userID, *update.User); err != nil {
			s.log.Error("update profile failed", zap.String("user_id", userID), zap.Error(err))
			return fmt.Errorf("update profile: %w", err)
		}
	}

	s.mu.Lock()
	update.Apply(&s.settings)
	s.mu.Unlock()

	return nil
}
