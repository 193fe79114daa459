package handlers

import (
	"time"

	"github.com/oksasatya/go-event-registration/internal/domain/entity"
)

// UserResponse never carries the password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type UserSummaryResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// EventResponse is the one shape used by both public and admin listings.
type EventResponse struct {
	ID                string               `json:"id"`
	Name              string               `json:"name"`
	Description       string               `json:"description"`
	Category          string               `json:"category"`
	Date              time.Time            `json:"date"`
	Venue             string               `json:"venue"`
	Price             float64              `json:"price"`
	Image             string               `json:"image"`
	OrganizerID       string               `json:"organizerId"`
	Organizer         *UserSummaryResponse `json:"organizer,omitempty"`
	RegistrationCount int64                `json:"registrationCount"`
	IsRegistered      bool                 `json:"isRegistered"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

type RegistrationResponse struct {
	ID        string              `json:"id"`
	EventID   string              `json:"eventId"`
	UserID    string              `json:"userId"`
	User      UserSummaryResponse `json:"user"`
	CreatedAt time.Time           `json:"createdAt"`
}

type ImageResponse struct {
	Image string `json:"image"`
}

func toUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toUserResponses(users []entity.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}

func toSummary(s entity.UserSummary) UserSummaryResponse {
	return UserSummaryResponse{ID: s.ID, Name: s.Name, Email: s.Email}
}

func toEventResponse(d *entity.EventDetail) EventResponse {
	res := EventResponse{
		ID:                d.ID,
		Name:              d.Name,
		Description:       d.Description,
		Category:          d.Category,
		Date:              d.Date,
		Venue:             d.Venue,
		Price:             d.Price,
		Image:             d.Image,
		OrganizerID:       d.OrganizerID,
		RegistrationCount: d.RegistrationCount,
		IsRegistered:      d.IsRegistered,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	if d.Organizer.ID != "" {
		org := toSummary(d.Organizer)
		res.Organizer = &org
	}
	return res
}

func toEventResponses(items []entity.EventDetail) []EventResponse {
	out := make([]EventResponse, 0, len(items))
	for i := range items {
		out = append(out, toEventResponse(&items[i]))
	}
	return out
}

func toRegistrationResponses(items []entity.RegistrationDetail) []RegistrationResponse {
	out := make([]RegistrationResponse, 0, len(items))
	for _, r := range items {
		out = append(out, RegistrationResponse{
			ID:        r.ID,
			EventID:   r.EventID,
			UserID:    r.UserID,
			User:      toSummary(r.User),
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}
