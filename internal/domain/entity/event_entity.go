package entity

import "time"

type Event struct {
	ID          string
	Name        string
	Description string
	Category    string
	Date        time.Time
	Venue       string
	Price       float64
	Image       string
	OrganizerID string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EventDetail is an Event with its read-time projections.
// IsRegistered is only ever true for an authenticated viewer.
type EventDetail struct {
	Event
	Organizer         UserSummary
	RegistrationCount int64
	IsRegistered      bool
}

// EventPatch carries a partial update; nil fields are left untouched.
type EventPatch struct {
	Name        *string
	Description *string
	Category    *string
	Date        *time.Time
	Venue       *string
	Price       *float64
}

func (p EventPatch) Empty() bool {
	return p.Name == nil && p.Description == nil && p.Category == nil &&
		p.Date == nil && p.Venue == nil && p.Price == nil
}

// Apply copies the provided fields onto e.
func (p EventPatch) Apply(e *Event) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Description != nil {
		e.Description = *p.Description
	}
	if p.Category != nil {
		e.Category = *p.Category
	}
	if p.Date != nil {
		e.Date = *p.Date
	}
	if p.Venue != nil {
		e.Venue = *p.Venue
	}
	if p.Price != nil {
		e.Price = *p.Price
	}
}
