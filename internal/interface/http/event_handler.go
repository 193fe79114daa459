package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-event-registration/internal/application"
	"github.com/oksasatya/go-event-registration/internal/interface/middleware"
	"github.com/oksasatya/go-event-registration/pkg/pagination"
	"github.com/oksasatya/go-event-registration/pkg/response"
)

// EventHandler serves the public event routes and the attendee registration flow.
type EventHandler struct {
	Events          *application.EventService
	RegistrationSvc *application.RegistrationService
	Logger          logrus.FieldLogger
}

func NewEventHandler(events *application.EventService, regs *application.RegistrationService, logger logrus.FieldLogger) *EventHandler {
	return &EventHandler{Events: events, RegistrationSvc: regs, Logger: logger}
}

func pageParams(c *gin.Context) pagination.Params {
	return pagination.Parse(c.Query("page"), c.Query("limit"))
}

// List GET /events?page&limit&search
// An authenticated caller also gets isRegistered per event.
func (h *EventHandler) List(c *gin.Context) {
	listEvents(c, h.Events, h.Logger)
}

func listEvents(c *gin.Context, svc *application.EventService, logger logrus.FieldLogger) {
	viewer, _ := middleware.IdentityFrom(c)
	items, meta, err := svc.List(c.Request.Context(), application.ListEventsInput{
		Search: c.Query("search"),
		Page:   pageParams(c),
	}, viewer)
	if err != nil {
		writeError(c, logger, err)
		return
	}
	response.Paginated(c, toEventResponses(items), meta)
}

// Get GET /events/:id
func (h *EventHandler) Get(c *gin.Context) {
	viewer, _ := middleware.IdentityFrom(c)
	d, err := h.Events.Get(c.Request.Context(), c.Param("id"), viewer)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, toEventResponse(d))
}

// Registrations GET /events/:id/registrations?page&limit
func (h *EventHandler) Registrations(c *gin.Context) {
	items, meta, err := h.RegistrationSvc.ListByEvent(c.Request.Context(), c.Param("id"), pageParams(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Paginated(c, toRegistrationResponses(items), meta)
}

// Register POST /events/:id/register
func (h *EventHandler) Register(c *gin.Context) {
	caller, _ := middleware.IdentityFrom(c)
	if err := h.RegistrationSvc.Register(c.Request.Context(), caller, c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusCreated)
}

// Cancel DELETE /events/:id/register
func (h *EventHandler) Cancel(c *gin.Context) {
	caller, _ := middleware.IdentityFrom(c)
	if err := h.RegistrationSvc.Cancel(c.Request.Context(), caller, c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
