// Package app orchestrates market-data collection: live-first fetch across
// providers with stored and hard-coded fallbacks.
package app

import (
	"context"

	"github.com/fd1az/aptos-arbitrage/business/market/domain"
)

// PriceProvider supplies token quotes. Providers may return a partial map;
// the service merges what it gets over the fallback quotes.
type PriceProvider interface {
	Name() string
	Quotes(ctx context.Context) (map[string]domain.TokenQuote, error)
}

// GasProvider supplies the current gas unit price in octas.
type GasProvider interface {
	Name() string
	GasUnitPrice(ctx context.Context) (int64, error)
}
