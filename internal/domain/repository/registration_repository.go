package repository

import (
	"context"

	"github.com/oksasatya/go-event-registration/internal/domain/entity"
	"github.com/oksasatya/go-event-registration/pkg/pagination"
)

type RegistrationRepository interface {
	// Create fails with ErrDuplicate when the pair exists and ErrReferenceMissing
	// when the event or user does not.
	Create(ctx context.Context, eventID, userID string) (*entity.Registration, error)
	// Delete fails with ErrNotFound when no row matched.
	Delete(ctx context.Context, eventID, userID string) error
	CountByEvent(ctx context.Context, eventID string) (int64, error)
	ListByEvent(ctx context.Context, eventID string, p pagination.Params) ([]entity.RegistrationDetail, int64, error)
}
