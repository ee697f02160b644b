package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nutritrack/backend/internal/middleware"
)

// Server wraps the HTTP server around the configured router. The outer error
// handler normalizes every error body to JSON.
type Server struct {
	http *http.Server
}

// NewServer creates a new server instance.
func NewServer(router *gin.Engine, host, port string) *Server {
	return &Server{
		http: &http.Server{
			Addr:              host + ":" + port,
			Handler:           middleware.ErrorHandler(router),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Start blocks serving requests until Shutdown is called.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
