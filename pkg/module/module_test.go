package module_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/monotile/pkg/module"
)

func TestNew(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	tests := []struct {
		prefix string
		root   bool
	}{
		{"/", true},
		{"/app", false},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			m := module.New(tt.prefix, handler)

			if m.Prefix() != tt.prefix {
				t.Errorf("Prefix() = %q, want %q", m.Prefix(), tt.prefix)
			}
			if m.Root() != tt.root {
				t.Errorf("Root() = %v, want %v", m.Root(), tt.root)
			}
		})
	}
}

func TestNew_InvalidPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"empty", ""},
		{"no leading slash", "app"},
		{"multi level", "/app/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Errorf("New(%q) did not panic", tt.prefix)
				}
			}()

			module.New(tt.prefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		})
	}
}

func TestModule_Use(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("handler"))
	})

	m := module.New("/", handler)

	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Middleware", "applied")
			next.ServeHTTP(w, r)
		})
	})

	req := httptest.NewRequest(http.MethodGet, "/continuum", nil)
	w := httptest.NewRecorder()

	m.Handler().ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.Header.Get("X-Middleware") != "applied" {
		t.Error("middleware was not applied")
	}
}

func TestModule_Serve(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	})

	tests := []struct {
		name     string
		prefix   string
		path     string
		wantPath string
	}{
		{"prefixed root", "/app", "/app", "/"},
		{"prefixed sub path", "/app", "/app/single", "/single"},
		{"root module keeps path", "/", "/single-tile", "/single-tile"},
		{"root module root", "/", "/", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := module.New(tt.prefix, handler)

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			m.Serve(w, req)

			resp := w.Result()
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			if string(body) != tt.wantPath {
				t.Errorf("path = %q, want %q", string(body), tt.wantPath)
			}
		})
	}
}
