// Package web provides infrastructure for serving web pages with Go templates.
// It supports pre-parsed templates for zero per-request overhead, a reload mode
// that re-reads templates on every render, and declarative view definitions
// for simplified route generation.
package web

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
)

var (
	// ErrTemplateNotFound is returned when rendering a template that was not
	// part of the set.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidRoute is returned for a view route that is not an exact path.
	ErrInvalidRoute = errors.New("invalid route")

	// ErrDuplicateRoute is returned when two views share a route.
	ErrDuplicateRoute = errors.New("duplicate route")
)

// ViewDef associates an exact URL path with the template that renders it.
// Error views leave Route empty.
type ViewDef struct {
	Route    string
	Template string
	Title    string
}

// Name returns the template identifier without its file extension.
func (v ViewDef) Name() string {
	return strings.TrimSuffix(v.Template, ".html")
}

// Pattern returns the ServeMux pattern matching exactly the view's route.
func (v ViewDef) Pattern() string {
	if v.Route == "/" {
		return "GET /{$}"
	}
	return "GET " + v.Route
}

// ValidateViews checks that every route is an exact path starting with "/",
// names a template, and is not registered twice.
func ValidateViews(views []ViewDef) error {
	seen := make(map[string]struct{}, len(views))
	for _, v := range views {
		if !strings.HasPrefix(v.Route, "/") {
			return fmt.Errorf("%w: %q must start with /", ErrInvalidRoute, v.Route)
		}
		if len(v.Route) > 1 && strings.HasSuffix(v.Route, "/") {
			return fmt.Errorf("%w: %q must not end with /", ErrInvalidRoute, v.Route)
		}
		if strings.ContainsAny(v.Route, "{} ") {
			return fmt.Errorf("%w: %q must be a literal path", ErrInvalidRoute, v.Route)
		}
		if v.Template == "" {
			return fmt.Errorf("%w: %q has no template", ErrInvalidRoute, v.Route)
		}
		if _, ok := seen[v.Route]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateRoute, v.Route)
		}
		seen[v.Route] = struct{}{}
	}
	return nil
}

// ViewData contains the data passed to view templates during rendering.
// BasePath enables portable URL generation in templates via {{ .BasePath }}.
type ViewData struct {
	Title    string
	Template string
	BasePath string
	Data     any
}

// Option configures a TemplateSet.
type Option func(*TemplateSet)

// WithBasePath sets the base path exposed to templates as .BasePath.
func WithBasePath(basePath string) Option {
	return func(ts *TemplateSet) {
		ts.basePath = basePath
	}
}

// WithReload makes the set re-parse templates from its file systems on every
// render instead of using the copies parsed at construction.
func WithReload(reload bool) Option {
	return func(ts *TemplateSet) {
		ts.reload = reload
	}
}

// WithLogger sets the logger used to report render failures.
func WithLogger(logger *slog.Logger) Option {
	return func(ts *TemplateSet) {
		ts.logger = logger
	}
}

// TemplateSet holds parsed templates keyed by template file name.
// Without reload the map is built once and only read afterwards, so a
// TemplateSet is safe for concurrent use.
type TemplateSet struct {
	layoutFS   fs.FS
	viewFS     fs.FS
	layoutGlob string
	views      map[string]*template.Template
	basePath   string
	reload     bool
	logger     *slog.Logger
}

// NewTemplateSet creates a TemplateSet by parsing layout templates and cloning them
// for each view. Every template is parsed here, even in reload mode, so a
// missing or malformed template fails at startup.
func NewTemplateSet(layoutFS, viewFS fs.FS, layoutGlob, viewSubdir string, views []ViewDef, opts ...Option) (*TemplateSet, error) {
	viewSub, err := fs.Sub(viewFS, viewSubdir)
	if err != nil {
		return nil, err
	}

	ts := &TemplateSet{
		layoutFS:   layoutFS,
		viewFS:     viewSub,
		layoutGlob: layoutGlob,
		views:      make(map[string]*template.Template, len(views)),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(ts)
	}

	layouts, err := template.ParseFS(layoutFS, layoutGlob)
	if err != nil {
		return nil, err
	}

	for _, v := range views {
		if _, ok := ts.views[v.Template]; ok {
			continue
		}
		t, err := parseView(layouts, ts.viewFS, v.Template)
		if err != nil {
			return nil, err
		}
		ts.views[v.Template] = t
	}

	return ts, nil
}

func parseView(layouts *template.Template, viewFS fs.FS, name string) (*template.Template, error) {
	t, err := layouts.Clone()
	if err != nil {
		return nil, fmt.Errorf("clone layouts for %s: %w", name, err)
	}
	if _, err := t.ParseFS(viewFS, name); err != nil {
		return nil, fmt.Errorf("parse template: %s: %w", name, err)
	}
	return t, nil
}

func (ts *TemplateSet) lookup(name string) (*template.Template, error) {
	if _, ok := ts.views[name]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	if !ts.reload {
		return ts.views[name], nil
	}

	layouts, err := template.ParseFS(ts.layoutFS, ts.layoutGlob)
	if err != nil {
		return nil, err
	}
	return parseView(layouts, ts.viewFS, name)
}

// Templates returns the names of all parsed templates.
func (ts *TemplateSet) Templates() []string {
	names := make([]string, 0, len(ts.views))
	for name := range ts.views {
		names = append(names, name)
	}
	return names
}

// ErrorHandler returns an HTTP handler that renders an error view with the
// given status code. If the view cannot be rendered, the plain status text is
// written instead.
func (ts *TemplateSet) ErrorHandler(layout string, view ViewDef, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := ViewData{Title: view.Title, Template: view.Name(), BasePath: ts.basePath}
		if err := ts.RenderStatus(w, status, layout, view.Template, data); err != nil {
			ts.logger.Error("render error view", "template", view.Template, "error", err)
			http.Error(w, http.StatusText(status), status)
		}
	}
}

// PageHandler returns an HTTP handler that renders the given view.
// A render failure responds 500 with the default status text.
func (ts *TemplateSet) PageHandler(layout string, view ViewDef) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := ViewData{
			Title:    view.Title,
			Template: view.Name(),
			BasePath: ts.basePath,
		}
		if err := ts.Render(w, layout, view.Template, data); err != nil {
			ts.logger.Error("render view", "route", view.Route, "template", view.Template, "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// Render executes the named layout template with the given view data and
// responds 200. It sets the Content-Type header to text/html.
func (ts *TemplateSet) Render(w http.ResponseWriter, layoutName, viewPath string, data ViewData) error {
	return ts.RenderStatus(w, http.StatusOK, layoutName, viewPath, data)
}

// RenderStatus is Render with an explicit status code. Output is buffered so
// nothing is written to w when execution fails.
func (ts *TemplateSet) RenderStatus(w http.ResponseWriter, status int, layoutName, viewPath string, data ViewData) error {
	t, err := ts.lookup(viewPath)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, layoutName, data); err != nil {
		return fmt.Errorf("execute %s: %w", viewPath, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}
