package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bankist/internal/config"
	"bankist/internal/handler"
	"bankist/internal/repository"
	"bankist/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router     *mux.Router
	server     *http.Server
	controller *service.Controller
	logger     *slog.Logger
	port       string
}

// NewServer seeds the account store and wires the session controller behind
// the router. clock is the wall clock for the whole demo; tests pass a fake.
func NewServer(cfg *config.Config, clock clockwork.Clock, logger *slog.Logger) (*Server, error) {
	// Initialize store (Unit of Work) with the demo accounts
	store := repository.NewStore(repository.NewDB(), logger)
	if err := repository.Seed(store, repository.DemoAccounts()); err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("Seeded demo accounts", "count", len(store.Account().ListAccounts()))
	}

	controller := service.NewController(store, clock, service.Options{
		SessionTimeout: cfg.SessionTimeout,
		LoanDelay:      cfg.LoanDelay,
	}, logger)

	// Initialize handlers
	sessionHandler := handler.NewSessionHandler(controller)
	transactionHandler := handler.NewTransactionHandler(controller)
	display := newDisplay(controller, logger)

	// Setup router
	router := mux.NewRouter()

	router.Use(requestIDMiddleware)
	router.Use(loggingMiddleware(logger))
	router.Use(metricsMiddleware)
	router.Use(rateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst))

	// Display surface
	router.HandleFunc("/", display.ServeHTTP).Methods("GET")

	// Session routes
	router.HandleFunc("/accounts", sessionHandler.ListAccounts).Methods("GET")
	router.HandleFunc("/session", sessionHandler.Login).Methods("POST")
	router.HandleFunc("/session", sessionHandler.GetDashboard).Methods("GET")
	router.HandleFunc("/session", sessionHandler.Logout).Methods("DELETE")
	router.HandleFunc("/session/sort", sessionHandler.ToggleSort).Methods("POST")
	router.HandleFunc("/session/close", sessionHandler.CloseAccount).Methods("POST")

	// Transaction routes
	router.HandleFunc("/transfers", transactionHandler.Transfer).Methods("POST")
	router.HandleFunc("/loans", transactionHandler.RequestLoan).Methods("POST")

	// Health check
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"status":    "healthy",
			"timestamp": clock.Now().UTC().Format(time.RFC3339),
		})
	}).Methods("GET")

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return &Server{
		router:     router,
		controller: controller,
		logger:     logger,
	}, nil
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port string) (string, error) {
	// Create listener first to get actual port
	listener, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return "", err
	}

	// Get the actual port being used
	addr := listener.Addr().(*net.TCPAddr)
	s.port = strconv.Itoa(addr.Port)

	// Create HTTP server
	s.server = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if s.logger != nil {
		s.logger.Info("Starting server", "port", s.port)
	}

	// Start server in background
	go func() {
		if err := s.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			if s.logger != nil {
				s.logger.Error("Server failed to start", "error", err)
			}
		}
	}()

	return s.port, nil
}

// Stop ends the session and gracefully shuts down the server
func (s *Server) Stop(ctx context.Context) error {
	if s.logger != nil {
		s.logger.Info("Shutting down server")
	}

	// Cancels the countdown and any loan still waiting
	s.controller.Logout()

	// Shutdown HTTP server
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// GetPort returns the port the server is listening on
func (s *Server) GetPort() string {
	return s.port
}

// GetBaseURL returns the base URL for the server
func (s *Server) GetBaseURL() string {
	return "http://localhost:" + s.port
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *mux.Router {
	return s.router
}

// NewLogger builds the process logger from configuration.
func NewLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

// StartServer starts the server with the given configuration
func StartServer(cfg *config.Config) (*Server, string, error) {
	// Initialize logger - use io.Discard for tests to avoid noise
	var logger *slog.Logger
	if cfg.ServerPort == "0" {
		// Test environment - use discard logger
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	} else {
		logger = NewLogger(cfg)
	}

	server, err := NewServer(cfg, clockwork.NewRealClock(), logger)
	if err != nil {
		return nil, "", err
	}

	// Start the server and get the actual port
	port, err := server.Start(cfg.ServerPort)
	if err != nil {
		return nil, "", err
	}

	return server, port, nil
}
