// Package server wires the backend API: database, services, handlers,
// routes, and the HTTP server lifecycle.
//
// This is the composition root for cmd/server — every dependency is
// assembled here (DB → repositories → services → handlers) so the other
// packages never construct each other.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/tutoring-admin/internal/auth"
	"github.com/sakif/tutoring-admin/internal/config"
	"github.com/sakif/tutoring-admin/internal/handler"
	"github.com/sakif/tutoring-admin/internal/middleware"
	sqliteRepo "github.com/sakif/tutoring-admin/internal/repository/sqlite"
	"github.com/sakif/tutoring-admin/internal/service"
)

// Server is the backend API process: router, config, and the database
// connection it owns (closed on shutdown).
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain and returns a ready Server.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures middleware, handlers, and the route table.
//
// ROUTE STRUCTURE:
//
//	GET    /                        → anonymous service banner
//	/api/auth/...                   → auth endpoints (see handler.AuthHandler)
//	GET    /me                      → current user              [session]
//	POST   /payments                → create payment entry      [session]
//	GET    /payments                → list unpaid entries       [session]
//	PATCH  /payments/{id}/paid      → mark entry paid           [session]
//	PATCH  /payments/{id}           → update entry              [session]
//	POST   /students                → create student            [session]
//	GET    /students                → list students             [session]
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(s.cors)

	// The OAuth callback URL points at the frontend origin; the edge
	// rewrites nothing, so the path here matches what Google calls.
	google := auth.NewGoogleProvider(
		s.cfg.GoogleClientID,
		s.cfg.GoogleClientSecret,
		s.cfg.FrontendURL+"/api/auth/callback/google",
	)

	authService := service.NewAuthService(s.db.Users(), s.db.Sessions(), auth.NewPasswordService(), s.logger)
	paymentService := service.NewPaymentService(s.db.Payments(), s.logger)
	studentService := service.NewStudentService(s.db.Students(), s.logger)

	authHandler := handler.NewAuthHandler(google, authService, s.cfg, s.logger)
	paymentHandler := handler.NewPaymentHandler(paymentService, s.logger)
	studentHandler := handler.NewStudentHandler(studentService, s.logger)

	s.router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Homework Helpers admin API"))
	})

	s.router.Route("/api/auth", func(r chi.Router) {
		r.Get("/sign-in/google", authHandler.HandleGoogleLogin)
		r.Get("/callback/google", authHandler.HandleGoogleCallback)
		r.Post("/sign-up/email", authHandler.HandleSignUpEmail)
		r.Post("/sign-in/email", authHandler.HandleSignInEmail)
		r.Post("/sign-out", authHandler.HandleSignOut)
		r.Get("/get-session", authHandler.HandleGetSession)
	})

	// Every data endpoint sits behind the authoritative session check.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireSession(authService))

		r.Get("/me", authHandler.HandleMe)

		r.Route("/payments", func(r chi.Router) {
			r.Post("/", paymentHandler.HandleCreate)
			r.Get("/", paymentHandler.HandleList)
			r.Patch("/{id}/paid", paymentHandler.HandleMarkPaid)
			r.Patch("/{id}", paymentHandler.HandleUpdate)
		})

		r.Route("/students", func(r chi.Router) {
			r.Post("/", studentHandler.HandleCreate)
			r.Get("/", studentHandler.HandleList)
		})
	})
}

// cors allows exactly the configured frontend origin, with credentials.
// A wildcard origin is off the table: the browser refuses to send cookies
// with Access-Control-Allow-Origin "*", and the dashboard authenticates
// every call with the session cookie.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == s.cfg.FrontendURL {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			w.Header().Set("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully:
// stop accepting connections, give in-flight requests 30 seconds, close
// the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.ServerPort),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("api server starting",
			slog.Int("port", s.cfg.ServerPort),
			slog.String("database", s.cfg.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("api server stopped gracefully")
	}

	return nil
}
