// Package narrative implements the optional LLM-backed summary context.
package narrative

import (
	"context"

	"github.com/fd1az/aptos-arbitrage/business/narrative/app"
	narrDI "github.com/fd1az/aptos-arbitrage/business/narrative/di"
	"github.com/fd1az/aptos-arbitrage/internal/config"
	"github.com/fd1az/aptos-arbitrage/internal/di"
	"github.com/fd1az/aptos-arbitrage/internal/logger"
	"github.com/fd1az/aptos-arbitrage/internal/monolith"
)

// Module implements the narrative bounded context.
type Module struct{}

// RegisterServices registers the narrator with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, narrDI.Narrator, func(sr di.ServiceRegistry) *app.Narrator {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		return app.NewNarrator(cfg.OpenAI.APIKey, cfg.OpenAI.Model, log)
	})
	return nil
}

// Startup initializes the narrative module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "narrative module started", "llm_enabled", mono.Config().OpenAI.Enabled())
	return nil
}
