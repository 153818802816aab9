package edge

import (
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/sakif/tutoring-admin/internal/config"
	"github.com/sakif/tutoring-admin/internal/model"
	"github.com/sakif/tutoring-admin/internal/nav"
)

// pageHandler renders the sign-in page and the dashboard shell.
// Templates are parsed once at startup and reused.
type pageHandler struct {
	templates *template.Template
	cfg       *config.Config
	client    *http.Client
	logger    *slog.Logger
}

func newPageHandler(cfg *config.Config, logger *slog.Logger) (*pageHandler, error) {
	tmpl, err := template.ParseFiles(
		filepath.Join(cfg.TemplateDir, "signin.html"),
		filepath.Join(cfg.TemplateDir, "dashboard.html"),
		filepath.Join(cfg.TemplateDir, "autherror.html"),
	)
	if err != nil {
		return nil, err
	}

	return &pageHandler{
		templates: tmpl,
		cfg:       cfg,
		client:    &http.Client{},
		logger:    logger,
	}, nil
}

// HandleSignIn serves the landing page. The guard has already bounced
// signed-in browsers to /dashboard, so whoever lands here is anonymous.
//
// HTTP: GET /
func (h *pageHandler) HandleSignIn(w http.ResponseWriter, r *http.Request) {
	h.render(w, "signin", map[string]any{
		"Title": "Homework Helpers — Sign In",
	})
}

// sessionInfo is the slice of the get-session response the shell needs.
type sessionInfo struct {
	User struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Role  string `json:"role"`
	} `json:"user"`
}

// HandleDashboard serves the dashboard shell for every /dashboard path.
//
// The guard only proved a cookie EXISTS; before rendering anything the
// shell asks the backend's get-session endpoint whether it is actually
// valid (one server-side call, forwarding the browser's Cookie header).
// Invalid → back to the sign-in page. Valid → render the layout with the
// sidebar filtered to the user's role.
//
// A ?error=... query (the OAuth callback's failure redirect) renders the
// auth-error screen instead.
func (h *pageHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if errCode := r.URL.Query().Get("error"); errCode != "" {
		h.render(w, "autherror", map[string]any{
			"Title":       "Authentication Error",
			"Error":       errCode,
			"Description": r.URL.Query().Get("error_description"),
		})
		return
	}

	session, err := h.fetchSession(r)
	if err != nil {
		h.logger.Info("dashboard: session invalid, redirecting",
			slog.String("error", err.Error()),
		)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	// The dashboard root is just a springboard into the first section.
	if r.URL.Path == "/dashboard" {
		http.Redirect(w, r, "/dashboard/students", http.StatusSeeOther)
		return
	}

	role := model.ParseRole(session.User.Role)
	displayName := session.User.Name
	if displayName == "" {
		displayName = session.User.Email
	}

	h.render(w, "dashboard", map[string]any{
		"Title":      "Admin Dashboard",
		"UserName":   displayName,
		"Nav":        nav.VisibleTo(role),
		"ActivePath": r.URL.Path,
		"Section":    sectionTitle(r.URL.Path),
		"APIURL":     h.cfg.BackendURL,
	})
}

// fetchSession validates the browser's cookie against the backend.
// Any non-200 answer means "not signed in" — the shell doesn't care why.
func (h *pageHandler) fetchSession(r *http.Request) (*sessionInfo, error) {
	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet,
		h.cfg.BackendURL+"/api/auth/get-session", nil)
	if err != nil {
		return nil, fmt.Errorf("edge: building session request: %w", err)
	}
	if cookie := r.Header.Get("Cookie"); cookie != "" {
		req.Header.Set("Cookie", cookie)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("edge: fetching session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("edge: session check returned %d", resp.StatusCode)
	}

	var info sessionInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("edge: decoding session: %w", err)
	}
	return &info, nil
}

// sectionTitle maps a dashboard path to its page heading, falling back to
// the raw section slug for paths the nav doesn't declare.
func sectionTitle(path string) string {
	for _, e := range nav.Entries {
		if e.Href == path {
			return e.Title
		}
	}
	return strings.TrimPrefix(path, "/dashboard/")
}

func (h *pageHandler) render(w http.ResponseWriter, name string, data map[string]any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("failed to render template",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
