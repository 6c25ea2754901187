// Package app provides the monotile web module: a fixed route table per
// variant, each route rendering one embedded template.
package app

import (
	"embed"
	"log/slog"
	"net/http"
	"os"
	"slices"

	"github.com/JaimeStill/monotile/internal/config"
	"github.com/JaimeStill/monotile/pkg/module"
	"github.com/JaimeStill/monotile/pkg/web"
)

//go:embed server/layouts/*
var layoutFS embed.FS

//go:embed server/views/*
var viewFS embed.FS

// Layout is the template every view renders through.
const Layout = "app.html"

// NewModule creates the app module, mounted at the root, serving the route
// table of the configured variant.
func NewModule(cfg *config.AppConfig, logger *slog.Logger) (*module.Module, error) {
	views, err := Views(cfg.Variant)
	if err != nil {
		return nil, err
	}
	if err := web.ValidateViews(views); err != nil {
		return nil, err
	}

	ts, err := newTemplateSet(cfg, logger, views)
	if err != nil {
		return nil, err
	}

	logger.Debug("app module ready",
		"variant", cfg.Variant,
		"routes", len(views),
		"debug", cfg.Debug,
	)

	return module.New("/", buildRouter(ts, views)), nil
}

func newTemplateSet(cfg *config.AppConfig, logger *slog.Logger, views []web.ViewDef) (*web.TemplateSet, error) {
	allViews := append(slices.Clone(views), notFoundView)
	opts := []web.Option{web.WithLogger(logger)}

	if cfg.Debug {
		dir := os.DirFS(cfg.TemplatesDir)
		opts = append(opts, web.WithReload(true))
		logger.Debug("reloading templates from disk", "dir", cfg.TemplatesDir)
		return web.NewTemplateSet(dir, dir, "layouts/*.html", "views", allViews, opts...)
	}

	return web.NewTemplateSet(
		layoutFS,
		viewFS,
		"server/layouts/*.html",
		"server/views",
		allViews,
		opts...,
	)
}

func buildRouter(ts *web.TemplateSet, views []web.ViewDef) http.Handler {
	r := web.NewRouter()
	r.SetFallback(ts.ErrorHandler(Layout, notFoundView, http.StatusNotFound))

	for _, view := range views {
		r.HandleFunc(view.Pattern(), ts.PageHandler(Layout, view))
	}

	return r
}
