package domain

import "time"

// Coordinates holds an optional geographic position for a fishing spot.
type Coordinates struct {
	Lat float64
	Lng float64
}

// FishingSpot is a named location with aggregate statistics and an activation flag.
// At most one spot per owner may have IsActive set at any time.
type FishingSpot struct {
	ID          string
	OwnerID     string
	Name        string
	Location    string
	Rating      float64
	Distance    string
	FishTypes   []string
	LastVisit   string
	Catches     int
	Image       string
	IsActive    bool
	Coordinates *Coordinates
	CreatedAt   time.Time
}

// SpotPatch carries a partial update for a fishing spot. Nil fields are left untouched.
type SpotPatch struct {
	Name        *string
	Location    *string
	Rating      *float64
	Distance    *string
	FishTypes   *[]string
	LastVisit   *string
	Catches     *int
	Image       *string
	IsActive    *bool
	Coordinates *Coordinates
}

// Apply merges the non-nil patch fields into the spot.
func (p SpotPatch) Apply(s *FishingSpot) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Location != nil {
		s.Location = *p.Location
	}
	if p.Rating != nil {
		s.Rating = *p.Rating
	}
	if p.Distance != nil {
		s.Distance = *p.Distance
	}
	if p.FishTypes != nil {
		s.FishTypes = append([]string(nil), (*p.FishTypes)...)
	}
	if p.LastVisit != nil {
		s.LastVisit = *p.LastVisit
	}
	if p.Catches != nil {
		s.Catches = *p.Catches
	}
	if p.Image != nil {
		s.Image = *p.Image
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
	if p.Coordinates != nil {
		coords := *p.Coordinates
		s.Coordinates = &coords
	}
}
