package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-event-registration/internal/domain/entity"
	repo "github.com/oksasatya/go-event-registration/internal/domain/repository"
	"github.com/oksasatya/go-event-registration/pkg/helpers"
	"github.com/oksasatya/go-event-registration/pkg/pagination"
)

// UserService backs the admin user-management endpoints.
type UserService struct {
	Repo   repo.UserRepository
	Index  EventIndex // optional
	Logger logrus.FieldLogger
}

func NewUserService(repo repo.UserRepository, index EventIndex, logger logrus.FieldLogger) *UserService {
	return &UserService{Repo: repo, Index: index, Logger: logger}
}

// CreateUserInput is an admin-created account. Role defaults to user.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

func (s *UserService) List(ctx context.Context, p pagination.Params) ([]entity.User, pagination.Meta, error) {
	p = p.Normalize()
	users, total, err := s.Repo.List(ctx, p)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []entity.User{}
	}
	return users, pagination.NewMeta(total, p), nil
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	role := entity.RoleUser
	if r := strings.TrimSpace(in.Role); r != "" {
		role = entity.Role(r)
		if !role.Valid() {
			return nil, invalid("role must be one of: user, admin")
		}
	}
	u, err := createAccount(ctx, s.Repo, RegisterInput{Name: in.Name, Email: in.Email, Password: in.Password}, role)
	if err != nil {
		return nil, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("user created by admin")
	return u, nil
}

func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*entity.User, error) {
	var patch entity.UserPatch
	if in.Name != nil {
		if err := requireText("name", *in.Name); err != nil {
			return nil, err
		}
		v := strings.TrimSpace(*in.Name)
		patch.Name = &v
	}
	if in.Email != nil {
		v := normalizeEmail(*in.Email)
		if v == "" {
			return nil, invalid("email is required")
		}
		patch.Email = &v
	}
	if in.Password != nil {
		hash, err := helpers.HashPassword(*in.Password)
		if err != nil {
			if errors.Is(err, helpers.ErrPasswordTooLong) {
				return nil, invalid("password must be at most 72 characters long")
			}
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patch.Password = &hash
	}
	if in.Role != nil {
		role := entity.Role(strings.TrimSpace(*in.Role))
		if !role.Valid() {
			return nil, invalid("role must be one of: user, admin")
		}
		patch.Role = &role
	}

	if patch.Empty() {
		return s.Get(ctx, id)
	}
	u, err := s.Repo.Update(ctx, id, patch)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repo.ErrDuplicate):
			return nil, ErrEmailTaken
		default:
			return nil, fmt.Errorf("update user: %w", err)
		}
	}
	return u, nil
}

// Delete removes the user with everything that references it. Admins cannot delete themselves.
func (s *UserService) Delete(ctx context.Context, caller *entity.Identity, id string) error {
	if caller != nil && caller.ID == id {
		return ErrCannotDeleteSelf
	}
	if err := s.Repo.DeleteWithCascade(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	if s.Index != nil {
		if err := s.Index.RemoveByOrganizer(ctx, id); err != nil {
			helpers.LogWarn(s.Logger, "event index cleanup failed", err, logrus.Fields{"organizer_id": id})
		}
	}
	return nil
}
