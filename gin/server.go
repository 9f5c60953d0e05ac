// Package gin provides the HTTP API for storefront profile extraction
// using the Gin web framework.
package gin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Config holds server-related configuration.
type Config struct {
	Environment    string
	AllowedOrigins []string

	// RateLimit is the number of requests per second allowed for each
	// client IP. Zero disables rate limiting.
	RateLimit float64
	RateBurst int
}

// NewRouter creates the Gin router. Profile routes are registered only
// when the handler has storage.
func NewRouter(cfg Config, handler *Handler) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(CORSMiddleware(cfg.AllowedOrigins))
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = 1
		}
		router.Use(RateLimitMiddleware(cfg.RateLimit, burst))
	}

	router.GET("/", handler.Index)
	router.GET("/health", handler.HealthCheck)
	router.POST("/extract", handler.Extract)

	if handler.profiles != nil {
		profiles := router.Group("/profiles")
		{
			profiles.GET("", handler.ListProfiles)
			profiles.GET("/:id", handler.GetProfile)
			profiles.DELETE("/:id", handler.DeleteProfile)
		}
	}

	return router
}

// Server serves the API until its context is canceled.
type Server struct {
	server *http.Server
}

// NewServer creates a Server listening on addr.
func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Run listens until ctx is canceled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
