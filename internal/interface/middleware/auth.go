package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-event-registration/internal/domain/entity"
	"github.com/oksasatya/go-event-registration/pkg/helpers"
	"github.com/oksasatya/go-event-registration/pkg/response"
)

const (
	CtxIdentityKey = "identity"
	CtxUserIDKey   = "userID"
)

// TokenVerifier is satisfied by helpers.JWTManager.
type TokenVerifier interface {
	ParseToken(token string) (*helpers.Claims, error)
}

// AuthPolicy decides what happens when a request carries no valid token.
type AuthPolicy int

const (
	// AuthRequired rejects the request with 401.
	AuthRequired AuthPolicy = iota
	// AuthOptional lets it through anonymously.
	AuthOptional
)

// Authenticate reads "Authorization: Bearer <token>", verifies it and stores the
// caller identity in the Gin context.
func Authenticate(v TokenVerifier, policy AuthPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := helpers.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			if policy == AuthOptional {
				c.Next()
				return
			}
			response.Error(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		claims, err := v.ParseToken(raw)
		if err != nil {
			if policy == AuthOptional {
				c.Next()
				return
			}
			msg := "Invalid or expired token"
			if errors.Is(err, helpers.ErrMissingToken) {
				msg = "Authentication required"
			}
			response.Error(c, http.StatusUnauthorized, msg)
			return
		}

		c.Set(CtxIdentityKey, &entity.Identity{
			ID:    claims.ID,
			Name:  claims.Name,
			Email: claims.Email,
			Role:  entity.Role(claims.Role),
		})
		c.Set(CtxUserIDKey, claims.ID)
		c.Next()
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok || !id.IsAdmin() {
			response.Error(c, http.StatusForbidden, "Admin access required")
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the authenticated caller, if any.
func IdentityFrom(c *gin.Context) (*entity.Identity, bool) {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*entity.Identity)
	return id, ok && id != nil
}
