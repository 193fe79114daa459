package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-event-registration/internal/domain/entity"
	"github.com/oksasatya/go-event-registration/internal/domain/repository"
	"github.com/oksasatya/go-event-registration/internal/domain/repository/mocks"
	"github.com/oksasatya/go-event-registration/pkg/helpers"
	"github.com/oksasatya/go-event-registration/pkg/pagination"
)

var attendee = &entity.Identity{ID: "u-2", Name: "Bo", Email: "bo@example.com", Role: entity.RoleUser}

type registrationFixture struct {
	svc      *RegistrationService
	events   *mocks.EventRepository
	regs     *mocks.RegistrationRepository
	notifier *mockNotifier
}

func newRegistrationFixture(t *testing.T) registrationFixture {
	t.Helper()
	f := registrationFixture{
		events:   &mocks.EventRepository{},
		regs:     &mocks.RegistrationRepository{},
		notifier: &mockNotifier{},
	}
	f.svc = NewRegistrationService(f.events, f.regs, f.notifier, helpers.NewDiscardLogger())
	t.Cleanup(func() {
		f.events.AssertExpectations(t)
		f.regs.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})
	return f
}

func TestRegistrationService_RegisterCancelRegister(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	e := &entity.Event{ID: "e-1", Name: "Go Meetup"}
	who := entity.UserSummary{ID: attendee.ID, Name: attendee.Name, Email: attendee.Email}

	f.events.On("GetByID", ctx, "e-1").Return(e, nil)
	f.regs.On("Create", ctx, "e-1", "u-2").Return(&entity.Registration{ID: "r-1"}, nil).Once()
	f.regs.On("Create", ctx, "e-1", "u-2").Return(nil, repository.ErrDuplicate).Once()
	f.regs.On("Delete", ctx, "e-1", "u-2").Return(nil).Once()
	f.regs.On("Create", ctx, "e-1", "u-2").Return(&entity.Registration{ID: "r-2"}, nil).Once()
	f.notifier.On("RegistrationConfirmed", ctx, who, e).Return(nil).Twice()
	f.notifier.On("RegistrationCancelled", ctx, who, e).Return(nil).Once()

	require.NoError(t, f.svc.Register(ctx, attendee, "e-1"))
	assert.ErrorIs(t, f.svc.Register(ctx, attendee, "e-1"), ErrAlreadyRegistered)
	require.NoError(t, f.svc.Cancel(ctx, attendee, "e-1"))
	require.NoError(t, f.svc.Register(ctx, attendee, "e-1"))
}

func TestRegistrationService_RegisterMissingEvent(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	f.events.On("GetByID", ctx, "e-404").Return(nil, repository.ErrNotFound).Once()

	assert.ErrorIs(t, f.svc.Register(ctx, attendee, "e-404"), ErrEventNotFound)
}

func TestRegistrationService_RegisterEventDeletedMidway(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	f.events.On("GetByID", ctx, "e-1").Return(&entity.Event{ID: "e-1"}, nil).Once()
	f.regs.On("Create", ctx, "e-1", "u-2").Return(nil, repository.ErrReferenceMissing).Once()
	f.events.On("GetByID", ctx, "e-1").Return(nil, repository.ErrNotFound).Once()

	assert.ErrorIs(t, f.svc.Register(ctx, attendee, "e-1"), ErrEventNotFound)
}

func TestRegistrationService_RegisterWithDeletedAccount(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	f.events.On("GetByID", ctx, "e-1").Return(&entity.Event{ID: "e-1"}, nil).Twice()
	f.regs.On("Create", ctx, "e-1", "u-2").Return(nil, repository.ErrReferenceMissing).Once()

	err := f.svc.Register(ctx, attendee, "e-1")
	assert.ErrorIs(t, err, ErrAccountNotFound)
	assert.NotErrorIs(t, err, ErrEventNotFound)
}

func TestRegistrationService_NotifierFailureDoesNotFailRequest(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	f.events.On("GetByID", ctx, "e-1").Return(&entity.Event{ID: "e-1"}, nil).Once()
	f.regs.On("Create", ctx, "e-1", "u-2").Return(&entity.Registration{ID: "r-1"}, nil).Once()
	f.notifier.On("RegistrationConfirmed", ctx, mock.Anything, mock.Anything).Return(errors.New("amqp closed")).Once()

	assert.NoError(t, f.svc.Register(ctx, attendee, "e-1"))
}

func TestRegistrationService_CancelWhenNotRegistered(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	f.regs.On("Delete", ctx, "e-1", "u-2").Return(repository.ErrNotFound).Once()

	assert.ErrorIs(t, f.svc.Cancel(ctx, attendee, "e-1"), ErrNotRegistered)
}

func TestRegistrationService_WithoutNotifier(t *testing.T) {
	f := newRegistrationFixture(t)
	f.svc.Notifier = nil
	ctx := context.Background()
	f.regs.On("Delete", ctx, "e-1", "u-2").Return(nil).Once()

	assert.NoError(t, f.svc.Cancel(ctx, attendee, "e-1"))
}

func TestRegistrationService_ListByEvent(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	p := pagination.Params{Page: 2, Limit: 2}
	rows := []entity.RegistrationDetail{{
		Registration: entity.Registration{ID: "r-3", EventID: "e-1", UserID: "u-3"},
		User:         entity.UserSummary{ID: "u-3", Name: "Cy"},
	}}
	f.events.On("GetByID", ctx, "e-1").Return(&entity.Event{ID: "e-1"}, nil).Once()
	f.regs.On("ListByEvent", ctx, "e-1", p).Return(rows, int64(3), nil).Once()

	items, meta, err := f.svc.ListByEvent(ctx, "e-1", p)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, pagination.Meta{Total: 3, Page: 2, Limit: 2, TotalPages: 2}, meta)
}

func TestRegistrationService_ListByMissingEvent(t *testing.T) {
	f := newRegistrationFixture(t)
	ctx := context.Background()
	f.events.On("GetByID", ctx, "nope").Return(nil, repository.ErrNotFound).Once()

	_, _, err := f.svc.ListByEvent(ctx, "nope", pagination.Params{Page: 1, Limit: 10})
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "success", outcome(nil))
	assert.Equal(t, "rejected", outcome(ErrAlreadyRegistered))
	assert.Equal(t, "error", outcome(errors.New("x")))
}
