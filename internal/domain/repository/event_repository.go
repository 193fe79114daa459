package repository

import (
	"context"

	"github.com/oksasatya/go-event-registration/internal/domain/entity"
	"github.com/oksasatya/go-event-registration/pkg/pagination"
)

// EventQuery filters a listing. ViewerID is "" for anonymous callers.
type EventQuery struct {
	Search   string
	ViewerID string
	Page     pagination.Params
}

type EventRepository interface {
	Create(ctx context.Context, e *entity.Event) error
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	GetDetail(ctx context.Context, id, viewerID string) (*entity.EventDetail, error)
	// List returns one page plus the total matching count from a separate aggregate.
	List(ctx context.Context, q EventQuery) ([]entity.EventDetail, int64, error)
	Update(ctx context.Context, id string, patch entity.EventPatch) (*entity.Event, error)
	SetImage(ctx context.Context, id, imageURL string) error
	// DeleteWithRegistrations removes the event's registrations and then the event in one transaction.
	DeleteWithRegistrations(ctx context.Context, id string) error
}
