package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-event-registration/internal/domain/entity"
	repo "github.com/oksasatya/go-event-registration/internal/domain/repository"
	"github.com/oksasatya/go-event-registration/pkg/helpers"
	"github.com/oksasatya/go-event-registration/pkg/metrics"
	"github.com/oksasatya/go-event-registration/pkg/pagination"
)

// RegistrationService moves a (event, user) pair between unregistered and registered.
type RegistrationService struct {
	Events        repo.EventRepository
	Registrations repo.RegistrationRepository
	Notifier      Notifier // optional
	Logger        logrus.FieldLogger
}

func NewRegistrationService(events repo.EventRepository, regs repo.RegistrationRepository, notifier Notifier, logger logrus.FieldLogger) *RegistrationService {
	return &RegistrationService{Events: events, Registrations: regs, Notifier: notifier, Logger: logger}
}

// Register fails with ErrAlreadyRegistered when the pair exists, including when a
// concurrent request inserted it first.
func (s *RegistrationService) Register(ctx context.Context, caller *entity.Identity, eventID string) (err error) {
	defer func() {
		metrics.RegistrationsTotal.WithLabelValues("register", outcome(err)).Inc()
	}()

	e, err := s.Events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}

	if _, err := s.Registrations.Create(ctx, e.ID, caller.ID); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			return ErrAlreadyRegistered
		case errors.Is(err, repo.ErrReferenceMissing):
			return s.missingReference(ctx, e.ID)
		default:
			return fmt.Errorf("create registration: %w", err)
		}
	}

	if s.Notifier != nil {
		if nErr := s.Notifier.RegistrationConfirmed(ctx, summary(caller), e); nErr != nil {
			helpers.LogWarn(s.Logger, "registration notification failed", nErr, logrus.Fields{"event_id": e.ID, "user_id": caller.ID})
		}
	}
	return nil
}

// missingReference works out which side of a registration insert vanished:
// the event, deleted after the lookup, or the caller's account, deleted
// while its token is still valid.
func (s *RegistrationService) missingReference(ctx context.Context, eventID string) error {
	_, err := s.Events.GetByID(ctx, eventID)
	switch {
	case err == nil:
		return ErrAccountNotFound
	case errors.Is(err, repo.ErrNotFound):
		return ErrEventNotFound
	default:
		return fmt.Errorf("get event: %w", err)
	}
}

// Cancel fails with ErrNotRegistered when there is nothing to cancel.
func (s *RegistrationService) Cancel(ctx context.Context, caller *entity.Identity, eventID string) (err error) {
	defer func() {
		metrics.RegistrationsTotal.WithLabelValues("cancel", outcome(err)).Inc()
	}()

	if err := s.Registrations.Delete(ctx, eventID, caller.ID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrNotRegistered
		}
		return fmt.Errorf("delete registration: %w", err)
	}

	if s.Notifier != nil {
		e, gErr := s.Events.GetByID(ctx, eventID)
		if gErr != nil {
			helpers.LogWarn(s.Logger, "load event for cancellation notice failed", gErr, logrus.Fields{"event_id": eventID})
			return nil
		}
		if nErr := s.Notifier.RegistrationCancelled(ctx, summary(caller), e); nErr != nil {
			helpers.LogWarn(s.Logger, "cancellation notification failed", nErr, logrus.Fields{"event_id": eventID, "user_id": caller.ID})
		}
	}
	return nil
}

func (s *RegistrationService) ListByEvent(ctx context.Context, eventID string, p pagination.Params) ([]entity.RegistrationDetail, pagination.Meta, error) {
	p = p.Normalize()
	if _, err := s.Events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, pagination.Meta{}, ErrEventNotFound
		}
		return nil, pagination.Meta{}, fmt.Errorf("get event: %w", err)
	}
	items, total, err := s.Registrations.ListByEvent(ctx, eventID, p)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list registrations: %w", err)
	}
	if items == nil {
		items = []entity.RegistrationDetail{}
	}
	return items, pagination.NewMeta(total, p), nil
}

func summary(id *entity.Identity) entity.UserSummary {
	return entity.UserSummary{ID: id.ID, Name: id.Name, Email: id.Email}
}

// outcome labels expected business failures apart from errors.
func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrAlreadyRegistered), errors.Is(err, ErrNotRegistered), errors.Is(err, ErrEventNotFound):
		return "rejected"
	default:
		return metrics.OutcomeError
	}
}
