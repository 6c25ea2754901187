package main

import (
	"net/http"
	"time"

	"github.com/JaimeStill/monotile/internal/config"
	"github.com/JaimeStill/monotile/internal/infrastructure"
	"github.com/JaimeStill/monotile/internal/server"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	infra   *infrastructure.Infrastructure
	modules *Modules
	router  http.Handler
	http    server.System
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config) (*Server, error) {
	return newServer(cfg, infrastructure.New(cfg))
}

func newServer(cfg *config.Config, infra *infrastructure.Infrastructure) (*Server, error) {
	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"variant", cfg.App.Variant,
		"debug", cfg.App.Debug,
	)

	return &Server{
		infra:   infra,
		modules: modules,
		router:  router,
		http:    server.New(&cfg.Server, router, infra.Logger),
	}, nil
}

// Addr returns the address the HTTP server is bound to.
func (s *Server) Addr() string {
	return s.http.Addr()
}

// Start begins all subsystems and returns once the listener is bound.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready", "addr", s.http.Addr())
	}()

	return nil
}

// Shutdown gracefully stops all subsystems within the provided timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
