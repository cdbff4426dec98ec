// Package httpapi exposes the auth service over HTTP using gin.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AuthService is the business logic behind the auth endpoints.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) error
	Login(ctx context.Context, email, password string) (string, error)
	RequestPasswordReset(ctx context.Context, email string) (*models.PasswordResetToken, error)
	GoogleLogin(ctx context.Context, idToken string) (string, error)
	Authenticate(ctx context.Context, rawToken string) (*models.User, error)
	Ping(ctx context.Context) error
}

type HTTPServer struct {
	address         string
	shutdownTimeout time.Duration
	users           AuthService
	logger          logging.Logger
	engine          *gin.Engine
}

// NewHTTPServer builds the gin engine with middleware and routes. gatherer
// backs the /metrics endpoint and may be nil to leave it out.
func NewHTTPServer(address string, shutdownTimeout time.Duration, l logging.Logger, us AuthService, gatherer prometheus.Gatherer) *HTTPServer {
	registerValidators()

	s := &HTTPServer{
		address:         address,
		shutdownTimeout: shutdownTimeout,
		users:           us,
		logger:          l.With("module", "http_server"),
		engine:          gin.New(),
	}

	s.engine.Use(s.requestID(), s.accessLog(), s.recovery())

	api := s.engine.Group("/api/auth")
	api.POST("/registry", s.registry)
	api.POST("/login", s.login)
	api.POST("/passwordreset", s.passwordReset)
	api.POST("/glogin", s.googleLogin)
	api.GET("/me", s.authenticate(), s.me)

	s.engine.GET("/healthz/liveness", s.liveness)
	s.engine.GET("/healthz/readiness", s.readiness)
	if gatherer != nil {
		s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}

	return s
}

// Handler returns the routed engine.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
