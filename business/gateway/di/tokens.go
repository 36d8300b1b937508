// Package di contains dependency injection tokens for the gateway context.
package di

import (
	"github.com/fd1az/aptos-arbitrage/business/gateway/app"
	"github.com/fd1az/aptos-arbitrage/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Handler = di.NewToken[*app.Handler]("gateway.Handler")
)

// Helper functions for type-safe access
func GetHandler(c di.ServiceRegistry) *app.Handler {
	return di.GetToken(c, Handler)
}
