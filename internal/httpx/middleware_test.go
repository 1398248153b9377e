package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/foodorders/internal/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newRouter(iss *auth.Issuer) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger())
	authed := r.Group("/", Auth(iss))
	authed.GET("/me", func(c *gin.Context) {
		p, _ := Principal(c)
		c.JSON(http.StatusOK, gin.H{"id": p.UserID, "role": p.Role})
	})
	r.GET("/public", func(c *gin.Context) {
		_, ok := Principal(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})
	authed.GET("/admin", RequireRole(auth.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	r := newRouter(auth.NewIssuer("s", time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("X-Request-ID", "rid-1")
	r.ServeHTTP(w, req)
	assert.Equal(t, "rid-1", w.Header().Get("X-Request-ID"))
}

func TestAuth(t *testing.T) {
	iss := auth.NewIssuer("s", time.Hour)
	r := newRouter(iss)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	tok, err := iss.Issue("u-1", auth.RoleUser)
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"id":"u-1","role":"user"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	iss := auth.NewIssuer("s", time.Hour)
	r := newRouter(iss)

	for role, want := range map[auth.Role]int{
		auth.RoleUser:  http.StatusForbidden,
		auth.RoleAdmin: http.StatusNoContent,
	} {
		tok, err := iss.Issue("u-1", role)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, role)
	}
}

func TestPrincipal_AbsentWithoutAuth(t *testing.T) {
	r := newRouter(auth.NewIssuer("s", time.Hour))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
}
