package http

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/storefront-labs/storefront-core/internal/core/ports/driving"
)

// Pinger is a simple health check interface
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	router     *http.ServeMux
	version    string

	// Services
	authService    driving.AuthService
	productService driving.ProductService

	// Infrastructure
	db Pinger // PostgreSQL health check
}

// Config holds server configuration
type Config struct {
	Host    string
	Port    int
	Version string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Host:    "0.0.0.0",
		Port:    8080,
		Version: "dev",
	}
}

// NewServer creates a new HTTP server
func NewServer(
	cfg Config,
	authService driving.AuthService,
	productService driving.ProductService,
	db Pinger,
) *Server {
	s := &Server{
		router:         http.NewServeMux(),
		version:        cfg.Version,
		authService:    authService,
		productService: productService,
		db:             db,
	}

	// Outer middleware: recovery first, then logging and CORS
	handler := NewRecoveryMiddleware().Handler(
		NewLoggingMiddleware().Handler(
			NewCORSMiddleware([]string{"*"}).Handler(s.router)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	// Create middleware
	authMiddleware := NewAuthMiddleware(s.authService)

	// Health endpoints (no auth)
	s.router.HandleFunc("GET /health", s.handleHealth)
	s.router.HandleFunc("GET /ready", s.handleReady)
	s.router.HandleFunc("GET /version", s.handleVersion)

	// Auth endpoints (public)
	s.router.HandleFunc("POST /api/auth/signup", s.handleSignup)
	s.router.HandleFunc("POST /api/auth/login", s.handleLogin)

	// Auth endpoints (authenticated)
	s.router.Handle("PUT /api/auth/edit",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleUpdateProfile)))

	// Product endpoints (authenticated)
	s.router.Handle("GET /api/products",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleListProducts)))
	s.router.Handle("POST /api/products",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleCreateProduct)))
	s.router.Handle("PUT /api/products/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleUpdateProduct)))
	s.router.Handle("DELETE /api/products/{id}",
		authMiddleware.Authenticate(http.HandlerFunc(s.handleDeleteProduct)))
}

// Start starts the HTTP server with graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-stop
	log.Println("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Println("Server stopped")
	return nil
}

// Stop stops the server
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
