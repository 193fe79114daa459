package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-event-registration/internal/application"
	"github.com/oksasatya/go-event-registration/internal/interface/middleware"
	"github.com/oksasatya/go-event-registration/pkg/response"
)

// multipart overhead allowed on top of the image itself
const uploadSlack = 1 << 20

type AdminEventHandler struct {
	Events *application.EventService
	Logger logrus.FieldLogger
}

func NewAdminEventHandler(events *application.EventService, logger logrus.FieldLogger) *AdminEventHandler {
	return &AdminEventHandler{Events: events, Logger: logger}
}

type createEventRequest struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Description string   `json:"description" binding:"required"`
	Category    string   `json:"category" binding:"required,max=100"`
	Date        string   `json:"date" binding:"required"`
	Venue       string   `json:"venue" binding:"required,max=200"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
}

type updateEventRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=200"`
	Description *string  `json:"description"`
	Category    *string  `json:"category" binding:"omitempty,max=100"`
	Date        *string  `json:"date"`
	Venue       *string  `json:"venue" binding:"omitempty,max=200"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
}

// List GET /admin/events?page&limit&search
func (h *AdminEventHandler) List(c *gin.Context) {
	listEvents(c, h.Events, h.Logger)
}

// Search GET /admin/events/search?q&size
func (h *AdminEventHandler) Search(c *gin.Context) {
	size, _ := strconv.Atoi(c.Query("size"))
	hits, err := h.Events.Search(c.Request.Context(), c.Query("q"), size)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Items(c, hits)
}

// Create POST /admin/events
func (h *AdminEventHandler) Create(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	caller, _ := middleware.IdentityFrom(c)
	d, err := h.Events.Create(c.Request.Context(), caller, application.CreateEventInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
		Venue:       req.Venue,
		Price:       *req.Price,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, toEventResponse(d))
}

// Update PUT /admin/events/:id
// Only the fields present in the body change.
func (h *AdminEventHandler) Update(c *gin.Context) {
	var req updateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	caller, _ := middleware.IdentityFrom(c)
	d, err := h.Events.Update(c.Request.Context(), caller, c.Param("id"), application.UpdateEventInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Date:        req.Date,
		Venue:       req.Venue,
		Price:       req.Price,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, toEventResponse(d))
}

// Delete DELETE /admin/events/:id
func (h *AdminEventHandler) Delete(c *gin.Context) {
	if err := h.Events.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.OK(c, http.StatusOK)
}

// UploadImage POST /admin/events/:id/image (multipart field "image", exactly one png/jpeg file)
func (h *AdminEventHandler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, application.MaxImageSize+uploadSlack)
	form, err := c.MultipartForm()
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(c, h.Logger, application.ErrImageTooLarge)
			return
		}
		writeError(c, h.Logger, application.ErrMissingImage)
		return
	}
	defer func() { _ = form.RemoveAll() }()

	files := form.File["image"]
	switch {
	case len(files) == 0:
		writeError(c, h.Logger, application.ErrMissingImage)
		return
	case len(files) > 1:
		response.Error(c, http.StatusBadRequest, "Only one image file is allowed")
		return
	case files[0].Size > application.MaxImageSize:
		writeError(c, h.Logger, application.ErrImageTooLarge)
		return
	}

	f, err := files[0].Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer f.Close()

	url, err := h.Events.UploadImage(c.Request.Context(), c.Param("id"), f)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, ImageResponse{Image: url})
}
