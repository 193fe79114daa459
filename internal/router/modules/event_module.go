package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-event-registration/internal/interface/http"
	"github.com/oksasatya/go-event-registration/internal/interface/middleware"
)

// EventModule wires the public event routes.
// Listing and detail accept an optional token so isRegistered can be filled in.
type EventModule struct {
	Handler *handlers.EventHandler
	Tokens  middleware.TokenVerifier
}

func NewEventModule(h *handlers.EventHandler, tokens middleware.TokenVerifier) *EventModule {
	return &EventModule{Handler: h, Tokens: tokens}
}

func (m *EventModule) Register(rg *gin.RouterGroup) {
	optional := middleware.Authenticate(m.Tokens, middleware.AuthOptional)
	required := middleware.Authenticate(m.Tokens, middleware.AuthRequired)

	g := rg.Group("/events")
	g.GET("", optional, m.Handler.List)
	g.GET("/:id", optional, m.Handler.Get)
	g.GET("/:id/registrations", m.Handler.Registrations)
	g.POST("/:id/register", required, m.Handler.Register)
	g.DELETE("/:id/register", required, m.Handler.Cancel)
}
