package helpers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/go-event-registration/pkg/mailer"
	mailtpl "github.com/oksasatya/go-event-registration/pkg/mailer/templates"
)

var ErrEmptyEmailJob = errors.New("email job has neither template nor body")

// EnsureRecipientAndEmail copies job.To into the template data when the producer left it out.
func EnsureRecipientAndEmail(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["Email"] = job.To
	}
}

// RenderEmailJob turns a queued job into subject, text and html bodies.
// Jobs that already carry a body are passed through as-is.
func RenderEmailJob(job *mailer.EmailJob) (subject, text, html string, err error) {
	if strings.TrimSpace(job.To) == "" {
		return "", "", "", errors.New("email job has no recipient")
	}
	tpl := strings.ToLower(strings.TrimSpace(job.Template))
	if tpl == "" {
		if job.Subject == "" || (job.Text == "" && job.HTML == "") {
			return "", "", "", ErrEmptyEmailJob
		}
		return job.Subject, job.Text, job.HTML, nil
	}

	switch tpl {
	case mailtpl.RegistrationConfirmed, mailtpl.RegistrationCancelled:
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", job.Template)
	}

	EnsureRecipientAndEmail(job)
	data, err := mailtpl.FromMap(job.Data)
	if err != nil {
		return "", "", "", fmt.Errorf("decode template data: %w", err)
	}
	subject, text, html, err = mailtpl.Render(tpl, data)
	if err != nil {
		return "", "", "", err
	}
	if job.Subject != "" {
		subject = job.Subject
	}
	return subject, text, html, nil
}
