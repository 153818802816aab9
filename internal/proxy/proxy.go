// Package proxy relays authentication requests from the edge origin to the
// backend, so session cookies are minted first-party to the browser.
//
// WHY A HAND-WRITTEN RELAY AND NOT httputil.ReverseProxy?
// Cookie semantics differ between the redirect and non-redirect cases, and
// that branch is the one piece of protocol logic this component owns.
// ReverseProxy follows the hop-by-hop RFC wholesale and rewrites headers
// this relay must pass through verbatim. Everything else about the proxy
// is intentionally dumb: one outbound call per inbound call, no caching,
// no retries, no interpretation of the bytes.
package proxy

import (
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// forwardedHeaders is the allow-list of request headers passed through to
// the backend. Cookie carries the session/state cookies; User-Agent feeds
// the backend's logs; everything else from the browser stays at the edge.
var forwardedHeaders = []string{"Content-Type", "Cookie", "User-Agent"}

// AuthProxy forwards every request it serves (all methods) to the same
// path and query on the backend origin.
type AuthProxy struct {
	backend *url.URL
	client  *http.Client
	logger  *slog.Logger
}

// New creates an AuthProxy targeting backendURL (scheme + host, no path).
func New(backendURL string, logger *slog.Logger) (*AuthProxy, error) {
	u, err := url.Parse(backendURL)
	if err != nil {
		return nil, err
	}
	return &AuthProxy{
		backend: u,
		client: &http.Client{
			// The browser, not this proxy, must follow redirects: a 3xx
			// from the backend is part of the OAuth dance and carries
			// Set-Cookie headers the browser has to see.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger: logger,
	}, nil
}

// ServeHTTP relays one request and writes the backend's answer.
//
// Two response cases:
//
//  1. Redirect (3xx with a Location): re-issue the same redirect to the
//     browser and copy every Set-Cookie from the backend onto it,
//     unmodified — this is how the session cookie set during the OAuth
//     callback reaches the browser.
//
//  2. Anything else: relay status, body, and all headers except
//     Transfer-Encoding (hop-by-hop; the edge's own server re-frames the
//     body).
//
// If the backend is unreachable the proxy answers 502 and does not retry.
func (p *AuthProxy) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	target := *p.backend
	target.Path = r.URL.Path
	target.RawQuery = r.URL.RawQuery

	var body io.Reader
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		body = r.Body
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target.String(), body)
	if err != nil {
		p.logger.Error("proxy: building request", slog.String("error", err.Error()))
		http.Error(w, "bad gateway", http.StatusBadGateway)
		return
	}

	for _, name := range forwardedHeaders {
		for _, v := range r.Header.Values(name) {
			req.Header.Add(name, v)
		}
	}
	if req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Error("proxy: backend unreachable",
			slog.String("target", target.String()),
			slog.String("error", err.Error()),
		)
		http.Error(w, "bad gateway", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	// Case 1: redirect + cookie propagation.
	if location := resp.Header.Get("Location"); resp.StatusCode >= 300 && resp.StatusCode < 400 && location != "" {
		for _, c := range resp.Header.Values("Set-Cookie") {
			w.Header().Add("Set-Cookie", c)
		}
		w.Header().Set("Location", location)
		w.WriteHeader(resp.StatusCode)
		return
	}

	// Case 2: byte-transparent relay.
	for name, values := range resp.Header {
		if strings.EqualFold(name, "Transfer-Encoding") {
			continue
		}
		for _, v := range values {
			w.Header().Add(name, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		// Headers and status are already out; nothing to do but log.
		p.logger.Warn("proxy: copying response body", slog.String("error", err.Error()))
	}
}
