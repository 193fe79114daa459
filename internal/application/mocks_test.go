package application

import (
	"bytes"
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/oksasatya/go-event-registration/internal/domain/entity"
)

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) RegistrationConfirmed(ctx context.Context, to entity.UserSummary, e *entity.Event) error {
	return m.Called(ctx, to, e).Error(0)
}

func (m *mockNotifier) RegistrationCancelled(ctx context.Context, to entity.UserSummary, e *entity.Event) error {
	return m.Called(ctx, to, e).Error(0)
}

type mockIndex struct {
	mock.Mock
}

func (m *mockIndex) Index(ctx context.Context, e *entity.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockIndex) Remove(ctx context.Context, eventID string) error {
	return m.Called(ctx, eventID).Error(0)
}

func (m *mockIndex) RemoveByOrganizer(ctx context.Context, organizerID string) error {
	return m.Called(ctx, organizerID).Error(0)
}

func (m *mockIndex) Search(ctx context.Context, query string, size int) ([]EventSearchHit, error) {
	args := m.Called(ctx, query, size)
	var hits []EventSearchHit
	if v := args.Get(0); v != nil {
		hits = v.([]EventSearchHit)
	}
	return hits, args.Error(1)
}

// fakeImages records the last object written.
type fakeImages struct {
	path        string
	contentType string
	body        []byte
	err         error
}

func (f *fakeImages) Put(_ context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	f.path, f.contentType, f.body = objectPath, contentType, buf.Bytes()
	return "https://storage.googleapis.com/bucket/" + objectPath, nil
}
