package module

import (
	"net/http"
	"strings"
)

// Router dispatches requests to native routes first, then to the module
// mounted under the first path segment, then to the root module.
type Router struct {
	native  *http.ServeMux
	modules map[string]*Module
	root    *Module
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{
		native:  http.NewServeMux(),
		modules: make(map[string]*Module),
	}
}

// HandleNative registers a ServeMux pattern that bypasses all modules.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount registers a module under its prefix. Mounting a second module with
// the same prefix replaces the first.
func (r *Router) Mount(m *Module) {
	if m.Root() {
		r.root = m
		return
	}
	r.modules[m.prefix] = m
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if _, pattern := r.native.Handler(req); pattern != "" {
		r.native.ServeHTTP(w, req)
		return
	}

	if m, ok := r.modules[firstSegment(req.URL.Path)]; ok {
		m.Serve(w, req)
		return
	}

	if r.root != nil {
		r.root.Serve(w, req)
		return
	}

	http.NotFound(w, req)
}

func firstSegment(path string) string {
	if path == "" || path == "/" {
		return "/"
	}
	if i := strings.Index(path[1:], "/"); i >= 0 {
		return path[:i+1]
	}
	return path
}
