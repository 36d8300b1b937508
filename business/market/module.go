// Package market implements the market-data bounded context: live token
// prices and gas estimates with layered fallbacks.
package market

import (
	"context"

	"github.com/fd1az/aptos-arbitrage/business/market/app"
	marketDI "github.com/fd1az/aptos-arbitrage/business/market/di"
	"github.com/fd1az/aptos-arbitrage/business/market/infra/aptos"
	"github.com/fd1az/aptos-arbitrage/business/market/infra/binance"
	"github.com/fd1az/aptos-arbitrage/business/market/infra/coingecko"
	"github.com/fd1az/aptos-arbitrage/internal/config"
	"github.com/fd1az/aptos-arbitrage/internal/di"
	"github.com/fd1az/aptos-arbitrage/internal/logger"
	"github.com/fd1az/aptos-arbitrage/internal/monolith"
)

// Module implements the market bounded context.
type Module struct{}

// RegisterServices registers all market services with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	// Price providers, fastest first - private dependency
	di.RegisterToken(c, marketDI.PriceProviders, func(sr di.ServiceRegistry) []app.PriceProvider {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		var providers []app.PriceProvider
		if cfg.Binance.Enabled {
			providers = append(providers, binance.NewProvider(binance.ProviderConfig{
				WebSocketURL: cfg.Binance.WebSocketURL,
				Symbols:      cfg.Binance.Symbols,
				StaleTimeout: cfg.Binance.StaleTimeout,
			}, log))
		}

		gecko, err := coingecko.NewProvider(cfg.CoinGecko.BaseURL, cfg.CoinGecko.RequestsPerSecond, log)
		if err != nil {
			panic("failed to create coingecko provider: " + err.Error())
		}
		return append(providers, gecko)
	})

	// Gas providers - private dependency
	di.RegisterToken(c, marketDI.GasProviders, func(sr di.ServiceRegistry) []app.GasProvider {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		provider, err := aptos.NewProvider(cfg.Aptos.FullnodeURL, log)
		if err != nil {
			panic("failed to create aptos gas provider: " + err.Error())
		}
		return []app.GasProvider{provider}
	})

	// MarketService (public - exposed to other modules)
	di.RegisterToken(c, marketDI.MarketService, func(sr di.ServiceRegistry) *app.MarketService {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		return app.NewMarketService(
			marketDI.GetPriceProviders(sr),
			marketDI.GetGasProviders(sr),
			cfg.Market.FetchTimeout,
			log,
		)
	})

	return nil
}

// Startup initializes the market module.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()
	cfg := mono.Config()

	if cfg.Binance.Enabled {
		// Connect the websocket ticker without blocking startup; CoinGecko
		// covers quotes until the stream is up.
		for _, provider := range marketDI.GetPriceProviders(mono.Services()) {
			connector, ok := provider.(interface{ Connect(context.Context) error })
			if !ok {
				continue
			}
			if err := connector.Connect(ctx); err != nil {
				log.Warn(ctx, "binance connection failed, quotes fall back to coingecko", "error", err)
			}
		}
	}

	log.Info(ctx, "market module started")
	return nil
}
