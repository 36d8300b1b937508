// Package di contains dependency injection tokens for the market context.
package di

import (
	"github.com/fd1az/aptos-arbitrage/business/market/app"
	"github.com/fd1az/aptos-arbitrage/internal/di"
)

// Public service tokens - exposed to other modules
var (
	MarketService = di.NewToken[*app.MarketService]("market.MarketService")
)

// Private dependency tokens - internal to the market module
var (
	PriceProviders = di.NewToken[[]app.PriceProvider]("market:priceProviders")
	GasProviders   = di.NewToken[[]app.GasProvider]("market:gasProviders")
)

// Helper functions for type-safe access
func GetMarketService(c di.ServiceRegistry) *app.MarketService {
	return di.GetToken(c, MarketService)
}

func GetPriceProviders(c di.ServiceRegistry) []app.PriceProvider {
	return di.GetToken(c, PriceProviders)
}

func GetGasProviders(c di.ServiceRegistry) []app.GasProvider {
	return di.GetToken(c, GasProviders)
}
