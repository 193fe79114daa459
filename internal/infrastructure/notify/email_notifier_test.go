package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-event-registration/internal/domain/entity"
	"github.com/oksasatya/go-event-registration/pkg/helpers"
	"github.com/oksasatya/go-event-registration/pkg/mailer"
	mailtpl "github.com/oksasatya/go-event-registration/pkg/mailer/templates"
)

type capturePublisher struct {
	jobs []mailer.EmailJob
	err  error
}

func (p *capturePublisher) PublishJSON(ctx context.Context, body any) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("publish without deadline")
	}
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body.(mailer.EmailJob))
	return nil
}

func eventURL(id string) string { return "http://localhost:3001/events/" + id }

func TestEmailNotifier_RegistrationConfirmed(t *testing.T) {
	pub := &capturePublisher{}
	n := NewEmailNotifier(pub, "Events", eventURL)
	e := &entity.Event{ID: "e-1", Name: "Go Meetup", Venue: "Hub", Date: time.Date(2031, 2, 3, 18, 0, 0, 0, time.UTC)}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, n.RegistrationConfirmed(ctx, entity.UserSummary{ID: "u-1", Name: "Bo", Email: "bo@example.com"}, e))

	require.Len(t, pub.jobs, 1)
	job := pub.jobs[0]
	assert.Equal(t, "bo@example.com", job.To)
	assert.Equal(t, mailtpl.RegistrationConfirmed, job.Template)

	// the worker must be able to render what we publish
	subject, text, _, err := helpers.RenderEmailJob(&job)
	require.NoError(t, err)
	assert.Equal(t, "You're registered for Go Meetup", subject)
	assert.Contains(t, text, "http://localhost:3001/events/e-1")
}

func TestEmailNotifier_Errors(t *testing.T) {
	pub := &capturePublisher{err: errors.New("channel closed")}
	n := NewEmailNotifier(pub, "Events", nil)
	e := &entity.Event{ID: "e-1"}

	assert.Error(t, n.RegistrationCancelled(context.Background(), entity.UserSummary{Email: "bo@example.com"}, e))
	assert.Error(t, n.RegistrationCancelled(context.Background(), entity.UserSummary{}, e))
}
