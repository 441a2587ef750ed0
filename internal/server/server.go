// Package server provides the HTTP REST API for the talent portal.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jonathan/talent-portal/internal/config"
	"github.com/jonathan/talent-portal/internal/db"
	"github.com/jonathan/talent-portal/internal/server/middleware"
	"github.com/jonathan/talent-portal/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	logger      zerolog.Logger
	rateLimiter *ratelimit.Limiter
	redisClient *redis.Client

	jwtService         *JWTService
	accountService     *AccountService
	resumeService      *ResumeService
	applicationService *ApplicationService
	authHandler        *AuthHandler
}

// New creates a new server instance
func New(cfg *config.Config, logger zerolog.Logger) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db:     database,
		logger: logger,
	}

	// Rate limiting is optional: without redis the limiter is a no-op.
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		s.redisClient = redis.NewClient(opts)
	}
	s.rateLimiter = ratelimit.NewLimiter(s.redisClient, ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.accountService = NewAccountService(database, passwordConfig)
	s.resumeService = NewResumeService(database)
	s.applicationService = NewApplicationService(database)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.accountService, s.jwtService)

	// Public routes
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.HandleFunc("GET /postings", s.handleListPostings)
	mux.HandleFunc("GET /postings/{id}", s.handleGetPosting)

	// Authenticated routes
	authed := http.NewServeMux()
	authed.HandleFunc("GET /resume", s.handleGetResume)
	authed.HandleFunc("PUT /resume", s.handleUpdateResume)
	authed.HandleFunc("POST /postings", s.handleCreatePosting)
	authed.HandleFunc("PUT /postings/{id}", s.handleUpdatePosting)
	authed.HandleFunc("POST /postings/{id}/apply", s.handleSubmitApplication)
	authed.HandleFunc("GET /applications", s.handleListOwnApplications)
	authed.HandleFunc("POST /applications/{id}/withdraw", s.handleWithdrawApplication)

	// Reviewer routes; rank scoping happens in the services, the
	// middleware only guarantees an active authenticated principal.
	authed.HandleFunc("GET /admin/dashboard", s.handleReviewerDashboard)
	authed.HandleFunc("GET /admin/applications", s.handleListApplicationsForReview)
	authed.HandleFunc("GET /admin/applications/{id}", s.handleGetApplicationForReview)
	authed.HandleFunc("POST /admin/applications/{id}/review", s.handleReviewApplication)
	authed.HandleFunc("GET /admin/accounts", s.handleListAccounts)
	authed.HandleFunc("GET /admin/accounts/{id}", s.handleGetAccount)
	authed.HandleFunc("PUT /admin/accounts/{id}", s.handleUpdateAccount)
	authed.HandleFunc("POST /admin/accounts/{id}/suspend", s.handleSuspendAccount)
	authed.HandleFunc("DELETE /admin/accounts/{id}", s.handleDeleteAccount)

	authMiddleware := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	mux.Handle("/", authMiddleware(authed))

	handler := s.withCORS(s.withRateLimit(s.withLogging(mux)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		s.logger.Info().Str("addr", s.httpServer.Addr).Msg("server starting")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatal().Err(err).Msg("server error")
		}
	}()

	<-stop
	s.logger.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.redisClient != nil {
		_ = s.redisClient.Close()
	}
	s.db.Close()
	s.logger.Info().Msg("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		if !s.rateLimiter.Allow(r.Context(), clientID, r.URL.Path, r.Method) {
			s.errorResponse(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("remote", r.RemoteAddr).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// extractClientID identifies the client for rate limiting, preferring the
// forwarded address set by the reverse proxy.
func (s *Server) extractClientID(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response with the given status code
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

// errorResponse writes a JSON error response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps a service error onto the HTTP response.
func (s *Server) serviceError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("internal error")
		s.errorResponse(w, status, "Internal server error")
		return
	}
	s.errorResponse(w, status, err.Error())
}
