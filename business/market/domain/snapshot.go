// Package domain holds the market-data model: token quotes, gas estimates
// and the provenance-tagged snapshot every evaluation prices against.
package domain

import (
	"time"

	"github.com/shopspring/decimal"

	arbitrage "github.com/fd1az/aptos-arbitrage/business/arbitrage/domain"
)

// Source tags where a snapshot's data came from.
type Source string

const (
	SourceLive     Source = "live"
	SourceCached   Source = "cached"
	SourceFallback Source = "fallback"
)

// TokenQuote is one token's market view.
type TokenQuote struct {
	PriceUSD     decimal.Decimal
	MarketCapUSD decimal.Decimal
	Volume24hUSD decimal.Decimal
	Change24hPct decimal.Decimal
}

// Snapshot is a coherent market view: token quotes plus the gas unit price,
// each tagged with its provenance.
type Snapshot struct {
	Quotes            map[string]TokenQuote
	GasUnitPriceOctas int64
	PriceSource       Source
	GasSource         Source
	FetchedAt         time.Time
	FetchDuration     time.Duration
}

// PriceSet projects the snapshot onto the price map evaluations consume.
func (s Snapshot) PriceSet() arbitrage.PriceSet {
	prices := make(arbitrage.PriceSet, len(s.Quotes))
	for token, quote := range s.Quotes {
		prices[token] = quote.PriceUSD
	}
	return prices
}

// APTPrice returns the APT quote price, zero when absent.
func (s Snapshot) APTPrice() decimal.Decimal {
	return s.Quotes["apt"].PriceUSD
}

// FallbackSnapshot returns the hard-coded market view used when no provider
// has ever answered.
func FallbackSnapshot() Snapshot {
	return Snapshot{
		Quotes: map[string]TokenQuote{
			"apt": {
				PriceUSD:     decimal.RequireFromString("12.45"),
				MarketCapUSD: decimal.RequireFromString("5800000000"),
				Volume24hUSD: decimal.RequireFromString("180000000"),
				Change24hPct: decimal.RequireFromString("2.5"),
			},
			"usdc": {
				PriceUSD:     decimal.RequireFromString("1.00"),
				MarketCapUSD: decimal.RequireFromString("32000000000"),
				Volume24hUSD: decimal.RequireFromString("4500000000"),
				Change24hPct: decimal.RequireFromString("0.01"),
			},
			"usdt": {
				PriceUSD:     decimal.RequireFromString("0.999"),
				MarketCapUSD: decimal.RequireFromString("95000000000"),
				Volume24hUSD: decimal.RequireFromString("28000000000"),
				Change24hPct: decimal.RequireFromString("-0.02"),
			},
		},
		GasUnitPriceOctas: arbitrage.FallbackGasUnitPrice,
		PriceSource:       SourceFallback,
		GasSource:         SourceFallback,
		FetchedAt:         time.Now(),
	}
}
