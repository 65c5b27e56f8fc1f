// Package commands implements the sqlscore subcommands.
package commands

import (
	"context"
	"log/slog"

	"github.com/eri-adepoju/sqlscore/internal/config"
	"github.com/eri-adepoju/sqlscore/pkg/score"
)

type configKey struct{}

type cmdContext struct {
	cfg *config.Config
	log *slog.Logger
}

// WithConfig stores the resolved configuration and logger on the context
// for subcommands.
func WithConfig(ctx context.Context, cfg *config.Config, log *slog.Logger) context.Context {
	return context.WithValue(ctx, configKey{}, &cmdContext{cfg: cfg, log: log})
}

// fromContext returns the stored configuration, falling back to defaults
// when the preamble did not run (tests constructing commands directly).
func fromContext(ctx context.Context) (*config.Config, *slog.Logger) {
	if c, ok := ctx.Value(configKey{}).(*cmdContext); ok {
		return c.cfg, c.log
	}
	return &config.Config{
		Format:     config.FormatTable,
		Thresholds: score.DefaultThresholds(),
	}, slog.Default()
}
