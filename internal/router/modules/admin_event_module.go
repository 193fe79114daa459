package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-event-registration/internal/interface/http"
	"github.com/oksasatya/go-event-registration/internal/interface/middleware"
)

type AdminEventModule struct {
	Handler *handlers.AdminEventHandler
	Tokens  middleware.TokenVerifier
}

func NewAdminEventModule(h *handlers.AdminEventHandler, tokens middleware.TokenVerifier) *AdminEventModule {
	return &AdminEventModule{Handler: h, Tokens: tokens}
}

func (m *AdminEventModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin/events")
	admin.Use(middleware.Authenticate(m.Tokens, middleware.AuthRequired), middleware.RequireAdmin())
	{
		admin.GET("", m.Handler.List)
		admin.GET("/search", m.Handler.Search)
		admin.POST("", m.Handler.Create)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
		admin.POST("/:id/image", m.Handler.UploadImage)
	}
}
