package application

import (
	"context"
	"io"
	"time"

	"github.com/oksasatya/go-event-registration/internal/domain/entity"
	"github.com/oksasatya/go-event-registration/pkg/helpers"
)

// TokenIssuer signs bearer tokens for a user.
type TokenIssuer interface {
	GenerateToken(sub helpers.TokenSubject) (string, time.Time, error)
}

// ImageStore persists an image and returns its public URL.
type ImageStore interface {
	Put(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// EventIndex mirrors events into a full-text index.
type EventIndex interface {
	Index(ctx context.Context, e *entity.Event) error
	Remove(ctx context.Context, eventID string) error
	RemoveByOrganizer(ctx context.Context, organizerID string) error
	Search(ctx context.Context, query string, size int) ([]EventSearchHit, error)
}

// EventSearchHit is one document returned by EventIndex.Search.
type EventSearchHit struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Venue       string    `json:"venue"`
	Date        time.Time `json:"date"`
	Price       float64   `json:"price"`
	Image       string    `json:"image"`
	OrganizerID string    `json:"organizerId"`
	Score       float64   `json:"score"`
}

// Notifier tells a user about changes to their registrations.
type Notifier interface {
	RegistrationConfirmed(ctx context.Context, to entity.UserSummary, e *entity.Event) error
	RegistrationCancelled(ctx context.Context, to entity.UserSummary, e *entity.Event) error
}
