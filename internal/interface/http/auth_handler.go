package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-event-registration/internal/application"
	"github.com/oksasatya/go-event-registration/internal/interface/middleware"
	"github.com/oksasatya/go-event-registration/pkg/response"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger logrus.FieldLogger
}

func NewAuthHandler(svc *application.AuthService, logger logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusCreated, toAuthResponse(res))
}

// Login POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, toAuthResponse(res))
}

// Me GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	id, _ := middleware.IdentityFrom(c)
	u, err := h.Svc.Me(c.Request.Context(), id)
	if err != nil {
		// token outlived its account
		if errors.Is(err, application.ErrUserNotFound) {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		writeError(c, h.Logger, err)
		return
	}
	response.JSON(c, http.StatusOK, toUserResponse(u))
}

func toAuthResponse(res *application.AuthResult) AuthResponse {
	return AuthResponse{User: toUserResponse(res.User), Token: res.Token, ExpiresAt: res.ExpiresAt}
}
