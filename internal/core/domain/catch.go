package domain

import "time"

// Catch mirrors the persisted representation of a single logged fish capture.
type Catch struct {
	ID        string
	OwnerID   string
	FishType  string
	Weight    string
	Length    string
	Location  string
	Bait      string
	Notes     string
	Photo     string
	Date      time.Time
	CreatedAt time.Time
}

// CatchPatch carries a partial update for a catch. Nil fields are left untouched.
type CatchPatch struct {
	FishType *string
	Weight   *string
	Length   *string
	Location *string
	Bait     *string
	Notes    *string
	Photo    *string
	Date     *time.Time
}

// Apply merges the non-nil patch fields into the catch.
func (p CatchPatch) Apply(c *Catch) {
	if p.FishType != nil {
		c.FishType = *p.FishType
	}
	if p.Weight != nil {
		c.Weight = *p.Weight
	}
	if p.Length != nil {
		c.Length = *p.Length
	}
	if p.Location != nil {
		c.Location = *p.Location
	}
	if p.Bait != nil {
		c.Bait = *p.Bait
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.Photo != nil {
		c.Photo = *p.Photo
	}
	if p.Date != nil {
		c.Date = *p.Date
	}
}
