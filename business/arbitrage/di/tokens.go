// Package di contains dependency injection tokens for the arbitrage context.
package di

import (
	"github.com/fd1az/aptos-arbitrage/business/arbitrage/app"
	"github.com/fd1az/aptos-arbitrage/internal/di"
)

// Public service tokens - exposed to other modules
var (
	ArbitrageService = di.NewToken[*app.Service]("arbitrage.Service")
)

// Helper functions for type-safe access
func GetArbitrageService(c di.ServiceRegistry) *app.Service {
	return di.GetToken(c, ArbitrageService)
}
