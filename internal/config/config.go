// Package config loads the process configuration from environment variables.
//
// CONFIGURATION APPROACH:
// Everything is read ONCE, in Load(), into an explicit Config struct that
// main() passes down to whichever component needs it. No package-level
// globals, no os.Getenv calls scattered through the codebase — if a value
// isn't in the struct, the code can't depend on it.
//
// A .env file in the working directory is honoured for local development
// (via github.com/joho/godotenv); real environment variables always win.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every runtime setting for both binaries (server and edge).
// The two processes share one config shape — each simply ignores the fields
// it doesn't use.
type Config struct {
	// ServerPort is the backend API listen port (default 3001).
	ServerPort int
	// EdgePort is the edge process listen port (default 3000).
	EdgePort int

	// FrontendURL is the origin the browser talks to (the edge process).
	// OAuth callbacks redirect here, and CORS allows exactly this origin.
	FrontendURL string
	// BackendURL is the API origin the edge proxies auth requests to.
	BackendURL string

	// Google OAuth application credentials.
	GoogleClientID     string
	GoogleClientSecret string

	// Production toggles the cross-origin cookie policy:
	// dev    → SameSite=Lax, non-Secure (plain http://localhost)
	// prod   → SameSite=None; Secure (edge and backend on different origins,
	//          so the session cookie must survive cross-site requests)
	// HttpOnly is set in both modes.
	Production bool

	// DBPath is the SQLite database file ("" defaults to data/portal.db).
	DBPath string

	// Edge asset locations.
	TemplateDir string
	StaticDir   string
}

// Load builds a Config from the environment. It is called exactly once, at
// startup, and the result is passed by reference everywhere it is needed.
func Load() (*Config, error) {
	// Best effort: a missing .env file is not an error, a malformed one is.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("config: loading .env: %w", err)
	}

	cfg := &Config{
		FrontendURL:        getenv("FRONTEND_URL", "http://localhost:3000"),
		BackendURL:         getenv("BACKEND_URL", "http://localhost:3001"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		Production:         os.Getenv("APP_ENV") == "production",
		DBPath:             getenv("DB_PATH", "data/portal.db"),
		TemplateDir:        getenv("TEMPLATE_DIR", "web/templates"),
		StaticDir:          getenv("STATIC_DIR", "web/static"),
	}

	var err error
	if cfg.ServerPort, err = getenvInt("PORT", 3001); err != nil {
		return nil, err
	}
	if cfg.EdgePort, err = getenvInt("EDGE_PORT", 3000); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getenv returns the variable's value, or fallback when it is unset or empty.
func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getenvInt parses an integer variable, with a fallback for unset/empty.
// A set-but-unparseable value is a startup error, not a silent default —
// a typo'd port should fail loudly.
func getenvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer, got %q", key, v)
	}
	return n, nil
}
