package usecase

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/okunev/fishlog/internal/core/domain"
)

// Export produces a JSON backup of the three collections plus a timestamp.
// The field layout mirrors the in-memory entity shapes.
func (s *AppState) Export() ([]byte, error) {
	doc := s.exportDocument()

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export document: %w", err)
	}
	return data, nil
}

// ParseExport decodes an export document produced by Export.
func ParseExport(data []byte) (domain.ExportDocument, error) {
	var doc domain.ExportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.ExportDocument{}, fmt.Errorf("parse export document: %w", err)
	}
	return doc, nil
}

func (s *AppState) exportDocument() domain.ExportDocument {
	s.mu.RLock()
	defer s.mu.RUnlock()

	catches := make([]domain.ExportCatch, 0, len(s.catches))
	for _, c := range s.catches {
		catches = append(catches, domain.ExportCatch{
			ID:       c.ID,
			FishType: c.FishType,
			Weight:   c.Weight,
			Length:   c.Length,
			Location: c.Location,
			Bait:     c.Bait,
			Notes:    c.Notes,
			Photo:    c.Photo,
			Date:     c.Date,
		})
	}

	spots := make([]domain.ExportSpot, 0, len(s.fishingSpots))
	for _, spot := range s.fishingSpots {
		var coords *domain.Coordinates
		if spot.Coordinates != nil {
			copied := *spot.Coordinates
			coords = &copied
		}
		spots = append(spots, domain.ExportSpot{
			ID:          spot.ID,
			Name:        spot.Name,
			Location:    spot.Location,
			Rating:      spot.Rating,
			Distance:    spot.Distance,
			FishTypes:   append([]string(nil), spot.FishTypes...),
			LastVisit:   spot.LastVisit,
			Catches:     spot.Catches,
			Image:       spot.Image,
			IsActive:    spot.IsActive,
			Coordinates: coords,
		})
	}

	return domain.ExportDocument{
		Catches:      catches,
		FishingSpots: spots,
		Settings: domain.ExportSettings{
			Notifications: domain.ExportNotifications{
				Weather:   s.settings.Notifications.Weather,
				Reminders: s.settings.Notifications.Reminders,
				NewSpots:  s.settings.Notifications.NewSpots,
			},
			Preferences: domain.ExportPreferences{
				DarkMode:        s.settings.Preferences.DarkMode,
				Language:        s.settings.Preferences.Language,
				WeightUnit:      s.settings.Preferences.WeightUnit,
				TemperatureUnit: s.settings.Preferences.TemperatureUnit,
			},
			User: domain.ExportProfile{
				Name:   s.settings.User.Name,
				Email:  s.settings.User.Email,
				Avatar: s.settings.User.Avatar,
			},
		},
		ExportDate: time.Now().UTC(),
	}
}
