package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/common"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/metrics"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ctxKey string

const userKey ctxKey = "user"

// UserFromContext returns the user attached by the auth middleware. The
// second result reports whether the middleware ran; the user itself may be
// nil when the token owner no longer exists.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	u, ok := ctx.Value(userKey).(*models.User)
	return u, ok
}

// CurrentUser returns the user attached to c by the auth middleware.
func CurrentUser(c *gin.Context) *models.User {
	u, _ := UserFromContext(c.Request.Context())
	return u
}

func (s *HTTPServer) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeaderName)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(common.RequestIDHeaderName, id)
		c.Request = c.Request.WithContext(logging.ContextWithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func (s *HTTPServer) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.RecordHTTPRequest(c.Request.Method, route, strconv.Itoa(status), elapsed)

		if strings.HasPrefix(route, "/healthz") || route == "/metrics" {
			return
		}

		args := []any{"method", c.Request.Method, "path", c.Request.URL.Path, "status", status, "duration_ms", elapsed.Milliseconds()}
		switch {
		case status >= http.StatusInternalServerError:
			s.logger.Error(c.Request.Context(), "Request completed", args...)
		case status >= http.StatusBadRequest:
			s.logger.Warn(c.Request.Context(), "Request completed", args...)
		default:
			s.logger.Debug(c.Request.Context(), "Request completed", args...)
		}
	}
}

// recovery answers a panic with 500 and the panic value as text.
func (s *HTTPServer) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error(c.Request.Context(), "Panic recovered", "error", fmt.Sprint(r), "path", c.Request.URL.Path)
				c.Abort()
				c.String(http.StatusInternalServerError, fmt.Sprint(r))
			}
		}()
		c.Next()
	}
}

// authenticate verifies the Authorization header and attaches the token
// owner to the request. Token failures abort with 403, anything else that
// goes wrong while resolving the owner aborts with 401.
func (s *HTTPServer) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader(common.AuthorizationHeaderName), common.BearerScheme)

		user, err := s.resolveUser(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrInvalidToken) || errors.Is(err, common.ErrTokenExpired) {
				metrics.RecordAuth(opMiddleware, metrics.OutcomeForbidden)
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			s.logger.Warn(c.Request.Context(), "cannot resolve token owner", "error", err)
			metrics.RecordAuth(opMiddleware, metrics.OutcomeUnauthorized)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		metrics.RecordAuth(opMiddleware, metrics.OutcomeSuccess)
		c.Set(string(userKey), user)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), userKey, user))
		c.Next()
	}
}

func (s *HTTPServer) resolveUser(ctx context.Context, token string) (user *models.User, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", common.ErrorInternal, r)
		}
	}()
	return s.users.Authenticate(ctx, token)
}
