package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MikeMC777/foodorders/internal/auth"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("rid", rid)
		c.Writer.Header().Set("X-Request-ID", rid)
		c.Next()
	}
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		rid, _ := c.Get("rid")
		attrs := []any{
			"rid", rid,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"dur", time.Since(start),
		}
		if p, ok := Principal(c); ok {
			attrs = append(attrs, "user_id", p.UserID)
		}
		switch {
		case c.Writer.Status() >= 500:
			slog.Error("http request", attrs...)
		default:
			slog.Info("http request", attrs...)
		}
	}
}

// TokenParser turns a bearer token into the caller. *auth.Issuer implements it.
type TokenParser interface {
	Parse(token string) (auth.Principal, error)
}

// Auth rejects requests without a valid bearer token and stores the caller
// on the request context.
func Auth(tp TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, ok := auth.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		p, err := tp.Parse(tok)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), p))
		c.Next()
	}
}

// RequireRole must run after Auth.
func RequireRole(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, _ := Principal(c)
		if err := auth.RequireRole(p, roles...); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func Principal(c *gin.Context) (auth.Principal, bool) {
	return auth.FromContext(c.Request.Context())
}
