// Package arbitrage implements the profitability-estimation bounded context:
// charge breakdowns, route evaluation, opportunity search and investment
// sizing.
package arbitrage

import (
	"context"

	"github.com/fd1az/aptos-arbitrage/business/arbitrage/app"
	arbDI "github.com/fd1az/aptos-arbitrage/business/arbitrage/di"
	"github.com/fd1az/aptos-arbitrage/internal/config"
	"github.com/fd1az/aptos-arbitrage/internal/di"
	"github.com/fd1az/aptos-arbitrage/internal/logger"
	"github.com/fd1az/aptos-arbitrage/internal/monolith"
)

// Module implements the arbitrage bounded context.
type Module struct{}

// RegisterServices registers all arbitrage services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, arbDI.ArbitrageService, func(sr di.ServiceRegistry) *app.Service {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		return app.NewService(log, cfg.Market.CacheTTL)
	})

	return nil
}

// Startup initializes the arbitrage module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "arbitrage module started")
	return nil
}
