// Package infrastructure assembles the systems every module depends on.
package infrastructure

import (
	"io"
	"log/slog"

	"github.com/JaimeStill/monotile/internal/config"
	"github.com/JaimeStill/monotile/pkg/lifecycle"
	"github.com/JaimeStill/monotile/pkg/logging"
)

// Infrastructure holds lifecycle coordination and logging for the process.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
}

// New creates an Infrastructure from finalized configuration, logging to the
// configured output.
func New(cfg *config.Config) *Infrastructure {
	return NewWithWriter(cfg, logging.Output(&cfg.Logging))
}

// NewWithWriter creates an Infrastructure that logs to w.
func NewWithWriter(cfg *config.Config, w io.Writer) *Infrastructure {
	return &Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    logging.NewWithWriter(&cfg.Logging, w).With("version", cfg.Version),
	}
}
