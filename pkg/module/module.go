// Package module provides mountable HTTP handler units with their own
// middleware, and a router that dispatches between native routes and modules.
package module

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/JaimeStill/monotile/pkg/middleware"
)

// Module is a handler mounted under a single-level path prefix.
// The root prefix "/" mounts the module as the catch-all for the router.
type Module struct {
	prefix     string
	handler    http.Handler
	middleware middleware.System
}

// New creates a module. It panics if prefix is not "/" or a single path
// segment such as "/app".
func New(prefix string, handler http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:     prefix,
		handler:    handler,
		middleware: middleware.New(),
	}
}

// Prefix returns the mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Root reports whether the module is mounted at "/".
func (m *Module) Root() bool {
	return m.prefix == "/"
}

// Use appends middleware to the module's stack.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

// Handler returns the module handler wrapped in its middleware.
func (m *Module) Handler() http.Handler {
	return m.middleware.Apply(m.handler)
}

// Serve strips the module prefix from the request path and serves it.
func (m *Module) Serve(w http.ResponseWriter, req *http.Request) {
	if m.Root() {
		m.Handler().ServeHTTP(w, req)
		return
	}

	path := strings.TrimPrefix(req.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	r2 := req.Clone(req.Context())
	r2.URL.Path = path
	r2.URL.RawPath = ""
	m.Handler().ServeHTTP(w, r2)
}

func validatePrefix(prefix string) error {
	if prefix == "/" {
		return nil
	}
	if prefix == "" {
		return fmt.Errorf("module prefix must not be empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		return fmt.Errorf("module prefix must start with /: %q", prefix)
	}
	if strings.Contains(prefix[1:], "/") {
		return fmt.Errorf("module prefix must be a single path segment: %q", prefix)
	}
	return nil
}
