package app

import (
	"context"
	"sync"
	"time"

	"github.com/fd1az/aptos-arbitrage/business/market/domain"
	"github.com/fd1az/aptos-arbitrage/internal/logger"
)

// MarketService assembles snapshots live-first: every call tries the
// providers under a deadline and falls back to the last good snapshot, then
// to the hard-coded fallback, so callers always get a usable view.
type MarketService struct {
	prices  []PriceProvider
	gas     []GasProvider
	timeout time.Duration
	log     logger.LoggerInterface

	mu     sync.RWMutex
	stored *domain.Snapshot
}

// NewMarketService creates the service. Price and gas providers are tried
// in order until one answers.
func NewMarketService(prices []PriceProvider, gas []GasProvider, timeout time.Duration, log logger.LoggerInterface) *MarketService {
	return &MarketService{
		prices:  prices,
		gas:     gas,
		timeout: timeout,
		log:     log,
	}
}

// Snapshot fetches a fresh market view. On provider failure the previous
// snapshot is served, labeled "cached" when its values came from a live
// fetch; with no history at all the hard-coded fallback is served.
func (s *MarketService) Snapshot(ctx context.Context) domain.Snapshot {
	start := time.Now()
	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type priceResult struct {
		quotes map[string]domain.TokenQuote
		ok     bool
	}
	type gasResult struct {
		price int64
		ok    bool
	}

	priceCh := make(chan priceResult, 1)
	gasCh := make(chan gasResult, 1)

	go func() {
		quotes, ok := s.fetchQuotes(fetchCtx)
		priceCh <- priceResult{quotes: quotes, ok: ok}
	}()
	go func() {
		price, ok := s.fetchGas(fetchCtx)
		gasCh <- gasResult{price: price, ok: ok}
	}()

	prices := <-priceCh
	gas := <-gasCh

	snapshot := domain.FallbackSnapshot()
	snapshot.FetchedAt = time.Now()
	snapshot.FetchDuration = time.Since(start)

	if prices.ok {
		for token, quote := range prices.quotes {
			snapshot.Quotes[token] = quote
		}
		snapshot.PriceSource = domain.SourceLive
	}
	if gas.ok {
		snapshot.GasUnitPriceOctas = gas.price
		snapshot.GasSource = domain.SourceLive
	}

	if !prices.ok || !gas.ok {
		s.mu.RLock()
		stored := s.stored
		s.mu.RUnlock()

		if stored != nil {
			if !prices.ok {
				snapshot.Quotes = stored.Quotes
				snapshot.PriceSource = demote(stored.PriceSource)
			}
			if !gas.ok {
				snapshot.GasUnitPriceOctas = stored.GasUnitPriceOctas
				snapshot.GasSource = demote(stored.GasSource)
			}
		}
	}

	s.mu.Lock()
	s.stored = &snapshot
	s.mu.Unlock()

	return snapshot
}

// demote labels re-served data. Only values a provider once produced count
// as cached; fallback data stays labeled fallback however often it is
// re-served.
func demote(source domain.Source) domain.Source {
	if source == domain.SourceLive {
		return domain.SourceCached
	}
	return source
}

// Stored returns the last assembled snapshot without fetching.
func (s *MarketService) Stored() (domain.Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stored == nil {
		return domain.Snapshot{}, false
	}
	return *s.stored, true
}

// Fresh reports whether a snapshot was assembled within maxAge.
func (s *MarketService) Fresh(maxAge time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stored != nil && time.Since(s.stored.FetchedAt) <= maxAge
}

func (s *MarketService) fetchQuotes(ctx context.Context) (map[string]domain.TokenQuote, bool) {
	for _, provider := range s.prices {
		quotes, err := provider.Quotes(ctx)
		if err != nil {
			if s.log != nil {
				s.log.Warn(ctx, "price provider failed", "provider", provider.Name(), "error", err)
			}
			continue
		}
		if len(quotes) > 0 {
			return quotes, true
		}
	}
	return nil, false
}

func (s *MarketService) fetchGas(ctx context.Context) (int64, bool) {
	for _, provider := range s.gas {
		price, err := provider.GasUnitPrice(ctx)
		if err != nil {
			if s.log != nil {
				s.log.Warn(ctx, "gas provider failed", "provider", provider.Name(), "error", err)
			}
			continue
		}
		if price > 0 {
			return price, true
		}
	}
	return 0, false
}
