package main

import (
	"net/http"

	"github.com/JaimeStill/monotile/internal/config"
	"github.com/JaimeStill/monotile/internal/infrastructure"
	"github.com/JaimeStill/monotile/pkg/middleware"
	"github.com/JaimeStill/monotile/pkg/module"
	"github.com/JaimeStill/monotile/web/app"
)

type Modules struct {
	App *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	appModule, err := app.NewModule(&cfg.App, infra.Logger)
	if err != nil {
		return nil, err
	}
	appModule.Use(middleware.RequestID())
	appModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		App: appModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.App)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	return router
}
