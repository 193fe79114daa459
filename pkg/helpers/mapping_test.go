package helpers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-event-registration/pkg/mailer"
	mailtpl "github.com/oksasatya/go-event-registration/pkg/mailer/templates"
)

func TestRenderEmailJob_Template(t *testing.T) {
	job := mailer.EmailJob{
		To:       "bea@example.com",
		Template: mailtpl.RegistrationConfirmed,
		Data: mailtpl.ToMap(mailtpl.EmailData{
			AppName:   "Events",
			Name:      "Bea",
			EventName: "Go Meetup",
			EventDate: time.Date(2031, 1, 2, 10, 0, 0, 0, time.UTC),
			EventURL:  "http://localhost:3001/events/e-1",
		}),
	}

	// survive the queue round trip
	raw, err := json.Marshal(job)
	require.NoError(t, err)
	var decoded mailer.EmailJob
	require.NoError(t, json.Unmarshal(raw, &decoded))

	subject, text, html, err := RenderEmailJob(&decoded)
	require.NoError(t, err)
	assert.Equal(t, "You're registered for Go Meetup", subject)
	assert.Contains(t, text, "Hi Bea,")
	assert.Contains(t, html, "Go Meetup")
	assert.Equal(t, "bea@example.com", decoded.Data["Email"])
}

func TestRenderEmailJob_PlainBody(t *testing.T) {
	job := mailer.EmailJob{To: "a@example.com", Subject: "Hi", Text: "body"}
	subject, text, html, err := RenderEmailJob(&job)
	require.NoError(t, err)
	assert.Equal(t, "Hi", subject)
	assert.Equal(t, "body", text)
	assert.Empty(t, html)
}

func TestRenderEmailJob_Invalid(t *testing.T) {
	tests := []struct {
		name string
		job  mailer.EmailJob
	}{
		{"no recipient", mailer.EmailJob{Subject: "Hi", Text: "x"}},
		{"empty", mailer.EmailJob{To: "a@example.com"}},
		{"unknown template", mailer.EmailJob{To: "a@example.com", Template: "welcome"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := RenderEmailJob(&tt.job)
			assert.Error(t, err)
		})
	}
}
