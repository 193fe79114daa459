package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-event-registration/pkg/helpers"
	"github.com/oksasatya/go-event-registration/pkg/mailer"
)

// verdict says what to do with a delivery once it has been handled.
type verdict int

const (
	ack verdict = iota
	// drop rejects without requeue; the message can never succeed
	drop
	// retry rejects with requeue; the failure was on the sending side
	retry
)

type worker struct {
	Sender      mailer.Sender
	Logger      logrus.FieldLogger
	SendTimeout time.Duration
}

func (w *worker) handle(ctx context.Context, body []byte) verdict {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		helpers.LogWarn(w.Logger, "bad message", err, nil)
		return drop
	}

	subject, text, html, err := helpers.RenderEmailJob(&job)
	if err != nil {
		helpers.LogWarn(w.Logger, "render email failed", err, logrus.Fields{"template": job.Template, "to": job.To})
		return drop
	}

	c, cancel := context.WithTimeout(ctx, w.SendTimeout)
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		helpers.LogError(w.Logger, "send failed", err, logrus.Fields{"template": job.Template, "to": job.To})
		return retry
	}
	w.Logger.WithFields(logrus.Fields{"template": job.Template, "to": job.To}).Info("email sent")
	return ack
}
