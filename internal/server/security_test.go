package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"testing"

	"github.com/agbru/orbitcalc/internal/orbit"
)

var securityHeaders = []struct {
	header string
	want   string
}{
	{"X-Content-Type-Options", "nosniff"},
	{"X-Frame-Options", "DENY"},
	{"X-XSS-Protection", "1; mode=block"},
	{"Referrer-Policy", "strict-origin-when-cross-origin"},
	{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
}

// serve sends a request with an optional Origin through the full handler stack.
func serve(s *Server, method, target, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, http.NoBody)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func newSecuredServer(config SecurityConfig) *Server {
	return New("127.0.0.1:0", orbit.NewDefaultFactory(), WithLogger(newTestLogger()), WithSecurityConfig(config))
}

func TestDefaultSecurityConfig(t *testing.T) {
	config := DefaultSecurityConfig()
	if !config.EnableCORS {
		t.Error("EnableCORS should be true by default")
	}
	if !slices.Equal(config.AllowedOrigins, []string{"*"}) {
		t.Errorf("AllowedOrigins = %v, want [*]", config.AllowedOrigins)
	}
	if !slices.Equal(config.AllowedMethods, []string{http.MethodGet, http.MethodOptions}) {
		t.Errorf("AllowedMethods = %v, want [GET OPTIONS]", config.AllowedMethods)
	}
	if config.MaxN != DefaultMaxN {
		t.Errorf("MaxN = %d, want %d", config.MaxN, DefaultMaxN)
	}
}

func TestClassify_SecurityHeaders(t *testing.T) {
	s := newTestServer()
	tests := []struct {
		name   string
		target string
		status int
	}{
		{"success", "/classify?n=7", http.StatusOK},
		{"rejected", "/classify?n=99", http.StatusBadRequest},
		{"orbit", "/orbit?bits=0010110", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(s, http.MethodGet, tt.target, "")
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			for _, h := range securityHeaders {
				if got := rec.Header().Get(h.header); got != h.want {
					t.Errorf("%s = %q, want %q", h.header, got, h.want)
				}
			}
		})
	}
}

func TestClassify_Preflight(t *testing.T) {
	s := newTestServer()
	rec := serve(s, http.MethodOptions, "/classify?n=7", "https://orbits.example")

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("preflight body = %q, want empty", rec.Body.String())
	}
	wantHeaders := map[string]string{
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "GET, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type",
		"Access-Control-Max-Age":       "86400",
	}
	for header, want := range wantHeaders {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}

	metrics := serve(s, http.MethodGet, "/metrics", "").Body.String()
	if !strings.Contains(metrics, "orbitcalc_orbits_discovered_total 0") {
		t.Error("preflight request should not run a classification")
	}
}

func TestClassify_RestrictedOrigins(t *testing.T) {
	config := DefaultSecurityConfig()
	config.AllowedOrigins = []string{"https://orbits.example"}
	s := newSecuredServer(config)

	rec := serve(s, http.MethodGet, "/classify?n=3", "https://orbits.example")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://orbits.example" {
		t.Errorf("allowed origin: Access-Control-Allow-Origin = %q", got)
	}

	rec = serve(s, http.MethodGet, "/classify?n=3", "https://elsewhere.example")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin: Access-Control-Allow-Origin = %q, want empty", got)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("foreign origin status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestClassify_CORSDisabled(t *testing.T) {
	config := DefaultSecurityConfig()
	config.EnableCORS = false
	s := newSecuredServer(config)

	rec := serve(s, http.MethodOptions, "/classify", "https://orbits.example")
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q, want empty", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
}

func TestClassify_MaxNLimit(t *testing.T) {
	tests := []struct {
		name    string
		maxN    int
		target  string
		status  int
		message string
	}{
		{"at configured limit", 5, "/classify?n=5", http.StatusOK, ""},
		{"above configured limit", 5, "/classify?n=6", http.StatusBadRequest, "n must be between 1 and 5"},
		{"limit above engine bound", orbit.MaxN + 8, "/classify?n=25", http.StatusBadRequest, "n must be between 1 and 24"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultSecurityConfig()
			config.MaxN = tt.maxN
			rec := serve(newSecuredServer(config), http.MethodGet, tt.target, "")
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			if tt.message == "" {
				return
			}
			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decoding error body: %v", err)
			}
			if body.Error != tt.message {
				t.Errorf("error = %q, want %q", body.Error, tt.message)
			}
		})
	}
}
