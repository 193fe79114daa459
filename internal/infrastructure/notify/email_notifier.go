// Package notify turns registration changes into email jobs on the RabbitMQ queue.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/go-event-registration/internal/application"
	"github.com/oksasatya/go-event-registration/internal/domain/entity"
	"github.com/oksasatya/go-event-registration/pkg/mailer"
	mailtpl "github.com/oksasatya/go-event-registration/pkg/mailer/templates"
	"github.com/oksasatya/go-event-registration/pkg/metrics"
)

const publishTimeout = 3 * time.Second

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

type EmailNotifier struct {
	Pub      Publisher
	AppName  string
	EventURL func(eventID string) string
}

func NewEmailNotifier(pub Publisher, appName string, eventURL func(string) string) *EmailNotifier {
	return &EmailNotifier{Pub: pub, AppName: appName, EventURL: eventURL}
}

func (n *EmailNotifier) RegistrationConfirmed(ctx context.Context, to entity.UserSummary, e *entity.Event) error {
	return n.publish(ctx, mailtpl.RegistrationConfirmed, to, e)
}

func (n *EmailNotifier) RegistrationCancelled(ctx context.Context, to entity.UserSummary, e *entity.Event) error {
	return n.publish(ctx, mailtpl.RegistrationCancelled, to, e)
}

func (n *EmailNotifier) publish(ctx context.Context, template string, to entity.UserSummary, e *entity.Event) (err error) {
	defer func() {
		metrics.NotificationsPublishedTotal.WithLabelValues(template, metrics.OutcomeOf(err)).Inc()
	}()
	if to.Email == "" {
		return errors.New("recipient has no email")
	}

	data := mailtpl.EmailData{
		AppName:    n.AppName,
		Name:       to.Name,
		Email:      to.Email,
		EventID:    e.ID,
		EventName:  e.Name,
		EventVenue: e.Venue,
		EventDate:  e.Date,
	}
	if n.EventURL != nil {
		data.EventURL = n.EventURL(e.ID)
	}
	job := mailer.EmailJob{To: to.Email, Template: template, Data: mailtpl.ToMap(data)}

	// the request context may be cancelled as soon as the response is written
	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	return n.Pub.PublishJSON(c, job)
}

var _ application.Notifier = (*EmailNotifier)(nil)
