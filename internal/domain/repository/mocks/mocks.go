// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/go-event-registration/internal/domain/entity"
	"github.com/oksasatya/go-event-registration/internal/domain/repository"
	"github.com/oksasatya/go-event-registration/pkg/pagination"
)

var (
	_ repository.UserRepository         = (*UserRepository)(nil)
	_ repository.EventRepository        = (*EventRepository)(nil)
	_ repository.RegistrationRepository = (*RegistrationRepository)(nil)
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, u *entity.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserRepository) List(ctx context.Context, p pagination.Params) ([]entity.User, int64, error) {
	args := m.Called(ctx, p)
	var out []entity.User
	if v := args.Get(0); v != nil {
		out = v.([]entity.User)
	}
	return out, args.Get(1).(int64), args.Error(2)
}

func (m *UserRepository) Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	args := m.Called(ctx, id, patch)
	return userOrNil(args.Get(0)), args.Error(1)
}

func (m *UserRepository) DeleteWithCascade(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func userOrNil(v any) *entity.User {
	if v == nil {
		return nil
	}
	return v.(*entity.User)
}

type EventRepository struct {
	mock.Mock
}

func (m *EventRepository) Create(ctx context.Context, e *entity.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *EventRepository) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	args := m.Called(ctx, id)
	var out *entity.Event
	if v := args.Get(0); v != nil {
		out = v.(*entity.Event)
	}
	return out, args.Error(1)
}

func (m *EventRepository) GetDetail(ctx context.Context, id, viewerID string) (*entity.EventDetail, error) {
	args := m.Called(ctx, id, viewerID)
	var out *entity.EventDetail
	if v := args.Get(0); v != nil {
		out = v.(*entity.EventDetail)
	}
	return out, args.Error(1)
}

func (m *EventRepository) List(ctx context.Context, q repository.EventQuery) ([]entity.EventDetail, int64, error) {
	args := m.Called(ctx, q)
	var out []entity.EventDetail
	if v := args.Get(0); v != nil {
		out = v.([]entity.EventDetail)
	}
	return out, args.Get(1).(int64), args.Error(2)
}

func (m *EventRepository) Update(ctx context.Context, id string, patch entity.EventPatch) (*entity.Event, error) {
	args := m.Called(ctx, id, patch)
	var out *entity.Event
	if v := args.Get(0); v != nil {
		out = v.(*entity.Event)
	}
	return out, args.Error(1)
}

func (m *EventRepository) SetImage(ctx context.Context, id, imageURL string) error {
	args := m.Called(ctx, id, imageURL)
	return args.Error(0)
}

func (m *EventRepository) DeleteWithRegistrations(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type RegistrationRepository struct {
	mock.Mock
}

func (m *RegistrationRepository) Create(ctx context.Context, eventID, userID string) (*entity.Registration, error) {
	args := m.Called(ctx, eventID, userID)
	var out *entity.Registration
	if v := args.Get(0); v != nil {
		out = v.(*entity.Registration)
	}
	return out, args.Error(1)
}

func (m *RegistrationRepository) Delete(ctx context.Context, eventID, userID string) error {
	args := m.Called(ctx, eventID, userID)
	return args.Error(0)
}

func (m *RegistrationRepository) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RegistrationRepository) ListByEvent(ctx context.Context, eventID string, p pagination.Params) ([]entity.RegistrationDetail, int64, error) {
	args := m.Called(ctx, eventID, p)
	var out []entity.RegistrationDetail
	if v := args.Get(0); v != nil {
		out = v.([]entity.RegistrationDetail)
	}
	return out, args.Get(1).(int64), args.Error(2)
}
