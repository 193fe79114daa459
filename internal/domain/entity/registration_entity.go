package entity

import "time"

// Registration is a user attending an event. (EventID, UserID) is unique.
type Registration struct {
	ID        string
	EventID   string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type RegistrationDetail struct {
	Registration
	User UserSummary
}
