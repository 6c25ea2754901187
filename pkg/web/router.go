package web

import "net/http"

// Router is a ServeMux with a configurable not-found handler.
type Router struct {
	mux      *http.ServeMux
	fallback http.HandlerFunc
}

// NewRouter creates a router with no fallback; unmatched requests get the
// ServeMux default 404.
func NewRouter() *Router {
	return &Router{mux: http.NewServeMux()}
}

// Handle registers handler for pattern.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// HandleFunc registers handler for pattern.
func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.mux.HandleFunc(pattern, handler)
}

// SetFallback sets the handler for requests no pattern matches.
// Requests whose path matches under GET but whose method does not still
// receive the ServeMux 405.
func (r *Router) SetFallback(handler http.HandlerFunc) {
	r.fallback = handler
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.fallback == nil || r.matches(req) {
		r.mux.ServeHTTP(w, req)
		return
	}
	r.fallback(w, req)
}

func (r *Router) matches(req *http.Request) bool {
	if _, pattern := r.mux.Handler(req); pattern != "" {
		return true
	}
	if req.Method == http.MethodGet {
		return false
	}

	probe := req.Clone(req.Context())
	probe.Method = http.MethodGet
	_, pattern := r.mux.Handler(probe)
	return pattern != ""
}
