package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-event-registration/internal/interface/http"
	"github.com/oksasatya/go-event-registration/internal/interface/middleware"
)

// UserModule wires admin user management under /admin/users.
type UserModule struct {
	Handler *handlers.UserHandler
	Tokens  middleware.TokenVerifier
}

func NewUserModule(h *handlers.UserHandler, tokens middleware.TokenVerifier) *UserModule {
	return &UserModule{Handler: h, Tokens: tokens}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin/users")
	admin.Use(middleware.Authenticate(m.Tokens, middleware.AuthRequired), middleware.RequireAdmin())
	{
		admin.GET("", m.Handler.List)
		admin.POST("", m.Handler.Create)
		admin.GET("/:id", m.Handler.Get)
		admin.PUT("/:id", m.Handler.Update)
		admin.DELETE("/:id", m.Handler.Delete)
	}
}
