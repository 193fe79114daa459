package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-event-registration/internal/application"
	"github.com/oksasatya/go-event-registration/pkg/helpers"
	"github.com/oksasatya/go-event-registration/pkg/response"
	"github.com/oksasatya/go-event-registration/pkg/validation"
)

type errorMapping struct {
	err     error
	status  int
	message string
}

// Conflicts (duplicate registration, duplicate email) answer 400 for client compatibility.
var errorMappings = []errorMapping{
	{application.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{application.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{application.ErrEmailTaken, http.StatusBadRequest, "Email already registered"},
	{application.ErrCannotDeleteSelf, http.StatusBadRequest, "You cannot delete your own account"},
	{application.ErrAccountNotFound, http.StatusUnauthorized, "Invalid or expired token"},
	{application.ErrEventNotFound, http.StatusNotFound, "Event not found"},
	{application.ErrEventDateInPast, http.StatusBadRequest, "Event date must be in the future."},
	{application.ErrInvalidEventDate, http.StatusBadRequest, "Invalid event date"},
	{application.ErrAlreadyRegistered, http.StatusBadRequest, "Already registered for this event"},
	{application.ErrNotRegistered, http.StatusBadRequest, "Not registered for this event"},
	{application.ErrMissingImage, http.StatusBadRequest, "No image file uploaded"},
	{application.ErrInvalidImage, http.StatusBadRequest, "Only PNG and JPEG images are allowed"},
	{application.ErrImageTooLarge, http.StatusBadRequest, "Image must be 5MB or smaller"},
}

// writeError maps a service error to its status and message. Anything unknown is
// logged and answered with a generic 500.
func writeError(c *gin.Context, logger logrus.FieldLogger, err error) {
	var verr *application.ValidationError
	if errors.As(err, &verr) {
		response.Error(c, http.StatusBadRequest, verr.Message)
		return
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			response.Error(c, m.status, m.message)
			return
		}
	}

	_ = c.Error(err)
	helpers.LogError(logger, "request failed", err, logrus.Fields{
		"request_id": c.GetString("request_id"),
		"method":     c.Request.Method,
		"path":       c.FullPath(),
	})
	response.Error(c, http.StatusInternalServerError, "Internal server error")
}

// bindError answers a request body that failed to bind or validate.
func bindError(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, validation.Message(err))
}
