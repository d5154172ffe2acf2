package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/expense_tracker_app/internal/core/domain"
	"github.com/SscSPs/expense_tracker_app/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-test-secret"

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))))
	r.GET("/whoami", AuthMiddleware(secret), func(c *gin.Context) {
		actor, ok := GetActorFromContext(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": actor.UserID, "role": actor.Role})
	})
	r.GET("/elevated", AuthMiddleware(secret), RequireElevated(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func bearer(t *testing.T, userID string, role string, expiry time.Duration) string {
	tok, _, err := utils.GenerateJWT(userID, role, secret, expiry, "test", time.Now())
	require.NoError(t, err)
	return "Bearer " + tok
}

func serve(r *gin.Engine, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()

	w := serve(r, "/whoami", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	assert.Equal(t, http.StatusUnauthorized, serve(r, "/whoami", "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "/whoami", "Bearer not.a.jwt").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(r, "/whoami", bearer(t, "dir-1", "stagiaire", time.Hour)).Code)

	w = serve(r, "/whoami", bearer(t, "dir-1", string(domain.RoleDirecteur), time.Hour))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":"dir-1","role":"directeur"}`, w.Body.String())
}

func TestRequireElevated(t *testing.T) {
	r := newRouter()
	assert.Equal(t, http.StatusForbidden, serve(r, "/elevated", bearer(t, "dir-1", string(domain.RoleDirecteur), time.Hour)).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, "/elevated", bearer(t, "pca-1", string(domain.RolePCA), time.Hour)).Code)
	assert.Equal(t, http.StatusNoContent, serve(r, "/elevated", bearer(t, "dg-1", string(domain.RoleDirecteurGeneral), time.Hour)).Code)
}

func TestRateLimit(t *testing.T) {
	lim, err := NewIPRateLimiter("1-H")
	require.NoError(t, err)
	_, err = NewIPRateLimiter("lots")
	assert.Error(t, err)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/login", RateLimit(lim), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, "/login", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, "/login", "").Code)
}
