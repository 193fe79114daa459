package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-event-registration/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(jm *helpers.JWTManager, policy AuthPolicy, admin bool) *gin.Engine {
	r := gin.New()
	handlers := []gin.HandlerFunc{Authenticate(jm, policy)}
	if admin {
		handlers = append(handlers, RequireAdmin())
	}
	handlers = append(handlers, func(c *gin.Context) {
		id, ok := IdentityFrom(c)
		if !ok {
			c.JSON(http.StatusOK, gin.H{"anonymous": true})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id.ID, "role": string(id.Role)})
	})
	r.GET("/", handlers...)
	return r
}

func doGet(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestAuthenticate_Required(t *testing.T) {
	jm := helpers.NewJWTManager("secret", time.Hour)
	token, _, err := jm.GenerateToken(helpers.TokenSubject{ID: "u-1", Role: "user", Email: "u@example.com"})
	require.NoError(t, err)
	r := newAuthRouter(jm, AuthRequired, false)

	w := doGet(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u-1", decode(t, w)["id"])

	w = doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Authentication required", decode(t, w)["error"])

	w = doGet(r, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid or expired token", decode(t, w)["error"])
}

func TestAuthenticate_Optional(t *testing.T) {
	jm := helpers.NewJWTManager("secret", time.Hour)
	r := newAuthRouter(jm, AuthOptional, false)

	w := doGet(r, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["anonymous"])

	w = doGet(r, "Bearer garbage")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["anonymous"])
}

func TestRequireAdmin(t *testing.T) {
	jm := helpers.NewJWTManager("secret", time.Hour)
	r := newAuthRouter(jm, AuthRequired, true)

	userToken, _, err := jm.GenerateToken(helpers.TokenSubject{ID: "u-1", Role: "user"})
	require.NoError(t, err)
	adminToken, _, err := jm.GenerateToken(helpers.TokenSubject{ID: "a-1", Role: "admin"})
	require.NoError(t, err)

	w := doGet(r, "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Admin access required", decode(t, w)["error"])

	w = doGet(r, "Bearer "+adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", decode(t, w)["role"])

	w = doGet(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
