// Package edge wires the browser-facing process: the route guard, the
// auth proxy, the server-rendered dashboard shell, and static assets.
//
// The edge exists for one reason — cookie origin. The backend mints the
// session cookie, but the browser talks to THIS origin; proxying the
// /api/auth/* endpoints through the edge makes that cookie first-party.
// Everything else the edge does (guard, pages) is cheap routing on top.
package edge

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
	"github.com/sakif/tutoring-admin/internal/guard"
	"github.com/sakif/tutoring-admin/internal/middleware"
	"github.com/sakif/tutoring-admin/internal/proxy"
)

// Edge is the frontend-origin HTTP process.
type Edge struct {
	router *chi.Mux
	cfg    *config.Config
	logger *slog.Logger
}

// New assembles the edge: guard in front of everything, proxy under
// /api/auth, pages and static files behind the guard.
func New(cfg *config.Config, logger *slog.Logger) (*Edge, error) {
	e := &Edge{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
	}

	e.router.Use(chimiddleware.RequestID)
	e.router.Use(chimiddleware.RealIP)
	e.router.Use(chimiddleware.Recoverer)
	e.router.Use(middleware.Logger(logger))

	// The guard runs on every request. Only "/" and "/dashboard..." match
	// its rules; the proxy and static paths pass straight through.
	g := &guard.Guard{
		CookieName:      auth.SessionCookieName,
		LandingPath:     "/",
		ProtectedPrefix: "/dashboard",
	}
	e.router.Use(g.Middleware)

	authProxy, err := proxy.New(cfg.BackendURL, logger)
	if err != nil {
		return nil, fmt.Errorf("creating auth proxy: %w", err)
	}
	// All methods — the auth flow uses GETs (OAuth redirects) and POSTs
	// (sign-out, credential sign-in) on the same prefix.
	e.router.Handle("/api/auth/*", authProxy)

	pages, err := newPageHandler(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("creating page handler: %w", err)
	}
	e.router.Get("/", pages.HandleSignIn)
	e.router.Get("/dashboard", pages.HandleDashboard)
	e.router.Get("/dashboard/*", pages.HandleDashboard)

	fileServer := http.FileServer(http.Dir(cfg.StaticDir))
	e.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	return e, nil
}

// Handler exposes the router for tests.
func (e *Edge) Handler() http.Handler {
	return e.router
}

// Start runs the edge until SIGINT/SIGTERM with the same graceful
// shutdown dance as the API server.
func (e *Edge) Start() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", e.cfg.EdgePort),
		Handler:      e.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		e.logger.Info("edge starting",
			slog.Int("port", e.cfg.EdgePort),
			slog.String("backend", e.cfg.BackendURL),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("edge error: %w", err)
		}
	case sig := <-quit:
		e.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		e.logger.Info("edge stopped gracefully")
	}

	return nil
}
