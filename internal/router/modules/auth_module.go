package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-event-registration/internal/interface/http"
	"github.com/oksasatya/go-event-registration/internal/interface/middleware"
)

// AuthModule mounts POST /auth/register, POST /auth/login and GET /auth/me.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Tokens  middleware.TokenVerifier
}

func NewAuthModule(h *handlers.AuthHandler, tokens middleware.TokenVerifier) *AuthModule {
	return &AuthModule{Handler: h, Tokens: tokens}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.POST("/register", m.Handler.Register)
	g.POST("/login", m.Handler.Login)
	g.GET("/me", middleware.Authenticate(m.Tokens, middleware.AuthRequired), m.Handler.Me)
}
