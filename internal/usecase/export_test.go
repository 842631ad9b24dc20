package usecase

import (
	"testing"
	"time"

	"github.com/okunev/fishlog/internal/core/domain"
	"github.com/okunev/fishlog/internal/core/port"
)

func TestExportRoundTrip(t *testing.T) {
	f := newFixture(t)
	caught := time.Date(2026, 6, 10, 19, 30, 0, 0, time.UTC)
	f.catches.catches = []domain.Catch{
		{ID: "c1", OwnerID: "user-1", FishType: "Карп", Weight: "2.3", Location: "Озеро", Date: caught},
	}
	f.spots.spots = []domain.FishingSpot{
		{ID: "s1", OwnerID: "user-1", Name: "Озеро", IsActive: true, Coordinates: &domain.Coordinates{Lat: 55.7, Lng: 37.6}},
	}
	f.gateway.signIn(&port.AuthUser{ID: "user-1"})

	data, err := f.state.Export()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	doc, err := ParseExport(data)
	if err != nil {
		t.Fatalf("parse export failed: %v", err)
	}

	if len(doc.Catches) != 1 || doc.Catches[0].FishType != "Карп" || !doc.Catches[0].Date.Equal(caught) {
		t.Fatalf("unexpected catches in export: %+v", doc.Catches)
	}
	if len(doc.FishingSpots) != 1 || !doc.FishingSpots[0].IsActive {
		t.Fatalf("unexpected spots in export: %+v", doc.FishingSpots)
	}
	if doc.FishingSpots[0].Coordinates == nil || doc.FishingSpots[0].Coordinates.Lat != 55.7 {
		t.Fatalf("expected coordinates preserved, got %+v", doc.FishingSpots[0].Coordinates)
	}
	if doc.Settings.Preferences.Language != "ru" {
		t.Fatalf("expected settings snapshot in export, got %+v", doc.Settings)
	}
	if doc.ExportDate.IsZero() {
		t.Fatal("expected export date stamped")
	}
}

func TestExportOfEmptyStateProducesEmptyCollections(t *testing.T) {
	f := newFixture(t)
	f.gateway.signIn(&port.AuthUser{ID: "user-1"})

	data, err := f.state.Export()
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	doc, err := ParseExport(data)
	if err != nil {
		t.Fatalf("parse export failed: %v", err)
	}

	if len(doc.Catches) != 0 || len(doc.FishingSpots) != 0 {
		t.Fatalf("expected empty collections, got %d catches, %d spots", len(doc.Catches), len(doc.FishingSpots))
	}
}

func TestParseExportRejectsMalformedInput(t *testing.T) {
	if _, err := ParseExport([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed document")
	}
}
