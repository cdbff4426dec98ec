package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const readinessTimeout = 2 * time.Second

func (s *HTTPServer) liveness(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

// readiness pings the credential store.
func (s *HTTPServer) readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
	defer cancel()

	if err := s.users.Ping(ctx); err != nil {
		s.logger.Warn(ctx, "readiness check failed", "error", err)
		c.String(http.StatusServiceUnavailable, err.Error())
		return
	}
	c.String(http.StatusOK, "ok")
}
