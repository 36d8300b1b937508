// Package di contains dependency injection tokens for the narrative context.
package di

import (
	"github.com/fd1az/aptos-arbitrage/business/narrative/app"
	"github.com/fd1az/aptos-arbitrage/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Narrator = di.NewToken[*app.Narrator]("narrative.Narrator")
)

// Helper functions for type-safe access
func GetNarrator(c di.ServiceRegistry) *app.Narrator {
	return di.GetToken(c, Narrator)
}
