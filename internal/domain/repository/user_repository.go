package repository

import (
	"context"

	"github.com/oksasatya/go-event-registration/internal/domain/entity"
	"github.com/oksasatya/go-event-registration/pkg/pagination"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, p pagination.Params) ([]entity.User, int64, error)
	Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error)
	// DeleteWithCascade removes the user, its registrations, the events it organizes
	// and their registrations in one transaction.
	DeleteWithCascade(ctx context.Context, id string) error
}
