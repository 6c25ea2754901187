package module_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JaimeStill/monotile/pkg/module"
)

func writeBody(s string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(s))
	}
}

func TestRouter_Dispatch(t *testing.T) {
	r := module.NewRouter()

	r.HandleNative("GET /healthz", writeBody("healthy"))
	r.Mount(module.New("/docs", writeBody("docs")))
	r.Mount(module.New("/", writeBody("app")))

	tests := []struct {
		path string
		want string
	}{
		{"/healthz", "healthy"},
		{"/docs", "docs"},
		{"/docs/intro", "docs"},
		{"/", "app"},
		{"/single-tile", "app"},
		{"/docsx", "app"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			resp := w.Result()
			defer resp.Body.Close()

			body, _ := io.ReadAll(resp.Body)
			if string(body) != tt.want {
				t.Errorf("body = %q, want %q", string(body), tt.want)
			}
		})
	}
}

func TestRouter_NoRootModule(t *testing.T) {
	r := module.NewRouter()
	r.Mount(module.New("/docs", writeBody("docs")))

	req := httptest.NewRequest(http.MethodGet, "/other", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestRouter_ModuleMiddleware(t *testing.T) {
	r := module.NewRouter()

	m := module.New("/", writeBody("app"))
	m.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("X-Module", "root")
			next.ServeHTTP(w, req)
		})
	})
	r.Mount(m)
	r.HandleNative("GET /healthz", writeBody("healthy"))

	tests := []struct {
		path       string
		wantHeader string
	}{
		{"/", "root"},
		{"/healthz", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			if got := w.Header().Get("X-Module"); got != tt.wantHeader {
				t.Errorf("X-Module = %q, want %q", got, tt.wantHeader)
			}
		})
	}
}
