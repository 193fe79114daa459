package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-event-registration/internal/domain/entity"
	repo "github.com/oksasatya/go-event-registration/internal/domain/repository"
	"github.com/oksasatya/go-event-registration/pkg/helpers"
	"github.com/oksasatya/go-event-registration/pkg/metrics"
	"github.com/oksasatya/go-event-registration/pkg/pagination"
)

// MaxImageSize caps event image uploads.
const MaxImageSize = 5 << 20

var allowedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

// imageKey is one object per event, so a new upload of any type replaces the old one.
func imageKey(eventID string) string { return "events/" + eventID }

type EventService struct {
	Repo   repo.EventRepository
	Images ImageStore
	Index  EventIndex // optional
	Logger logrus.FieldLogger

	now func() time.Time
}

func NewEventService(repo repo.EventRepository, images ImageStore, index EventIndex, logger logrus.FieldLogger) *EventService {
	return &EventService{Repo: repo, Images: images, Index: index, Logger: logger, now: time.Now}
}

type ListEventsInput struct {
	Search string
	Page   pagination.Params
}

type CreateEventInput struct {
	Name        string
	Description string
	Category    string
	Date        string
	Venue       string
	Price       float64
}

// UpdateEventInput only changes the fields that are non-nil.
type UpdateEventInput struct {
	Name        *string
	Description *string
	Category    *string
	Date        *string
	Venue       *string
	Price       *float64
}

func (s *EventService) List(ctx context.Context, in ListEventsInput, viewer *entity.Identity) ([]entity.EventDetail, pagination.Meta, error) {
	p := in.Page.Normalize()
	items, total, err := s.Repo.List(ctx, repo.EventQuery{
		Search:   strings.TrimSpace(in.Search),
		ViewerID: viewer.ViewerID(),
		Page:     p,
	})
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("list events: %w", err)
	}
	if items == nil {
		items = []entity.EventDetail{}
	}
	return items, pagination.NewMeta(total, p), nil
}

func (s *EventService) Get(ctx context.Context, id string, viewer *entity.Identity) (*entity.EventDetail, error) {
	d, err := s.Repo.GetDetail(ctx, id, viewer.ViewerID())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return d, nil
}

// futureDate parses raw and requires it to be strictly after now.
func (s *EventService) futureDate(raw string) (time.Time, error) {
	t, err := helpers.ParseDate(raw)
	if err != nil {
		return time.Time{}, ErrInvalidEventDate
	}
	if !t.After(s.now()) {
		return time.Time{}, ErrEventDateInPast
	}
	return t, nil
}

func requireText(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return invalid(field + " is required")
	}
	return nil
}

func (s *EventService) Create(ctx context.Context, caller *entity.Identity, in CreateEventInput) (*entity.EventDetail, error) {
	for _, f := range []struct{ name, value string }{
		{"name", in.Name}, {"description", in.Description}, {"category", in.Category}, {"venue", in.Venue},
	} {
		if err := requireText(f.name, f.value); err != nil {
			return nil, err
		}
	}
	if in.Price < 0 {
		return nil, invalid("price must be greater than or equal to 0")
	}
	date, err := s.futureDate(in.Date)
	if err != nil {
		return nil, err
	}

	e := &entity.Event{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Date:        date,
		Venue:       strings.TrimSpace(in.Venue),
		Price:       in.Price,
		OrganizerID: caller.ID,
	}
	if err := s.Repo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	s.index(ctx, e)

	return &entity.EventDetail{
		Event:     *e,
		Organizer: entity.UserSummary{ID: caller.ID, Name: caller.Name, Email: caller.Email},
	}, nil
}

func (s *EventService) Update(ctx context.Context, caller *entity.Identity, id string, in UpdateEventInput) (*entity.EventDetail, error) {
	patch := entity.EventPatch{Price: in.Price}
	for _, f := range []struct {
		name string
		src  *string
		dst  **string
	}{
		{"name", in.Name, &patch.Name},
		{"description", in.Description, &patch.Description},
		{"category", in.Category, &patch.Category},
		{"venue", in.Venue, &patch.Venue},
	} {
		if f.src == nil {
			continue
		}
		if err := requireText(f.name, *f.src); err != nil {
			return nil, err
		}
		v := strings.TrimSpace(*f.src)
		*f.dst = &v
	}
	if in.Price != nil && *in.Price < 0 {
		return nil, invalid("price must be greater than or equal to 0")
	}
	if in.Date != nil {
		date, err := s.futureDate(*in.Date)
		if err != nil {
			return nil, err
		}
		patch.Date = &date
	}

	e, err := s.Repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	s.index(ctx, e)
	return s.Get(ctx, e.ID, caller)
}

// Delete removes the event together with its registrations.
func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.DeleteWithRegistrations(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	if s.Index != nil {
		if err := s.Index.Remove(ctx, id); err != nil {
			helpers.LogWarn(s.Logger, "event index remove failed", err, logrus.Fields{"event_id": id})
		}
	}
	return nil
}

// UploadImage sniffs the content, stores it under the event's image key and points the event at it.
func (s *EventService) UploadImage(ctx context.Context, id string, r io.Reader) (url string, err error) {
	defer func() {
		metrics.ImageUploadsTotal.WithLabelValues(metrics.OutcomeOf(err)).Inc()
	}()

	if r == nil {
		return "", ErrMissingImage
	}
	e, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrEventNotFound
		}
		return "", fmt.Errorf("get event: %w", err)
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return "", ErrMissingImage
	}
	if len(data) > MaxImageSize {
		return "", ErrImageTooLarge
	}
	mt := mimetype.Detect(data)
	if !allowedImageTypes[mt.String()] {
		return "", ErrInvalidImage
	}

	url, err = s.Images.Put(ctx, imageKey(e.ID), mt.String(), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	if err := s.Repo.SetImage(ctx, e.ID, url); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrEventNotFound
		}
		return "", fmt.Errorf("set image: %w", err)
	}
	e.Image = url
	s.index(ctx, e)
	return url, nil
}

// Search queries the full-text index; without one it returns no hits.
func (s *EventService) Search(ctx context.Context, query string, size int) ([]EventSearchHit, error) {
	if s.Index == nil || strings.TrimSpace(query) == "" {
		return []EventSearchHit{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	hits, err := s.Index.Search(ctx, strings.TrimSpace(query), size)
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	if hits == nil {
		hits = []EventSearchHit{}
	}
	return hits, nil
}

func (s *EventService) index(ctx context.Context, e *entity.Event) {
	if s.Index == nil {
		return
	}
	if err := s.Index.Index(ctx, e); err != nil {
		helpers.LogWarn(s.Logger, "event index failed", err, logrus.Fields{"event_id": e.ID})
	}
}
