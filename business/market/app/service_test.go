package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fd1az/aptos-arbitrage/business/market/domain"
)

type stubPriceProvider struct {
	quotes map[string]domain.TokenQuote
	err    error
	calls  int
}

func (s *stubPriceProvider) Name() string { return "stub-prices" }

func (s *stubPriceProvider) Quotes(ctx context.Context) (map[string]domain.TokenQuote, error) {
	s.calls++
	return s.quotes, s.err
}

type stubGasProvider struct {
	price int64
	err   error
}

func (s *stubGasProvider) Name() string { return "stub-gas" }

func (s *stubGasProvider) GasUnitPrice(ctx context.Context) (int64, error) {
	return s.price, s.err
}

func liveQuotes() map[string]domain.TokenQuote {
	return map[string]domain.TokenQuote{
		"apt":  {PriceUSD: decimal.RequireFromString("13.10")},
		"usdc": {PriceUSD: decimal.RequireFromString("1.001")},
		"usdt": {PriceUSD: decimal.RequireFromString("0.998")},
	}
}

func TestSnapshotLive(t *testing.T) {
	prices := &stubPriceProvider{quotes: liveQuotes()}
	gas := &stubGasProvider{price: 120}
	svc := NewMarketService([]PriceProvider{prices}, []GasProvider{gas}, time.Second, nil)

	snap := svc.Snapshot(context.Background())

	if snap.PriceSource != domain.SourceLive {
		t.Errorf("PriceSource = %s, want live", snap.PriceSource)
	}
	if snap.GasSource != domain.SourceLive {
		t.Errorf("GasSource = %s, want live", snap.GasSource)
	}
	if !snap.APTPrice().Equal(decimal.RequireFromString("13.10")) {
		t.Errorf("APTPrice = %s, want 13.10", snap.APTPrice())
	}
	if snap.GasUnitPriceOctas != 120 {
		t.Errorf("GasUnitPriceOctas = %d, want 120", snap.GasUnitPriceOctas)
	}
}

func TestSnapshotFallbackWithoutHistory(t *testing.T) {
	prices := &stubPriceProvider{err: errors.New("down")}
	gas := &stubGasProvider{err: errors.New("down")}
	svc := NewMarketService([]PriceProvider{prices}, []GasProvider{gas}, time.Second, nil)

	snap := svc.Snapshot(context.Background())

	if snap.PriceSource != domain.SourceFallback {
		t.Errorf("PriceSource = %s, want fallback", snap.PriceSource)
	}
	if !snap.APTPrice().Equal(decimal.RequireFromString("12.45")) {
		t.Errorf("APTPrice = %s, want fallback 12.45", snap.APTPrice())
	}
	if snap.GasUnitPriceOctas != 100 {
		t.Errorf("GasUnitPriceOctas = %d, want fallback 100", snap.GasUnitPriceOctas)
	}
}

func TestSnapshotServesCachedAfterFailure(t *testing.T) {
	prices := &stubPriceProvider{quotes: liveQuotes()}
	gas := &stubGasProvider{price: 120}
	svc := NewMarketService([]PriceProvider{prices}, []GasProvider{gas}, time.Second, nil)

	if snap := svc.Snapshot(context.Background()); snap.PriceSource != domain.SourceLive {
		t.Fatalf("warmup snapshot not live: %s", snap.PriceSource)
	}

	prices.err = errors.New("down")
	prices.quotes = nil
	gas.err = errors.New("down")
	gas.price = 0

	snap := svc.Snapshot(context.Background())
	if snap.PriceSource != domain.SourceCached {
		t.Errorf("PriceSource = %s, want cached", snap.PriceSource)
	}
	if snap.GasSource != domain.SourceCached {
		t.Errorf("GasSource = %s, want cached", snap.GasSource)
	}
	if !snap.APTPrice().Equal(decimal.RequireFromString("13.10")) {
		t.Errorf("APTPrice = %s, want cached 13.10", snap.APTPrice())
	}
	if snap.GasUnitPriceOctas != 120 {
		t.Errorf("GasUnitPriceOctas = %d, want cached 120", snap.GasUnitPriceOctas)
	}
}

func TestSnapshotFallbackStaysFallback(t *testing.T) {
	// Re-serving hard-coded data must not relabel it as cached; only values
	// a provider once produced earn that tag.
	prices := &stubPriceProvider{err: errors.New("down")}
	gas := &stubGasProvider{err: errors.New("down")}
	svc := NewMarketService([]PriceProvider{prices}, []GasProvider{gas}, time.Second, nil)

	first := svc.Snapshot(context.Background())
	second := svc.Snapshot(context.Background())

	if first.PriceSource != domain.SourceFallback || first.GasSource != domain.SourceFallback {
		t.Fatalf("first snapshot sources = %s/%s, want fallback/fallback", first.PriceSource, first.GasSource)
	}
	if second.PriceSource != domain.SourceFallback {
		t.Errorf("second PriceSource = %s, want fallback", second.PriceSource)
	}
	if second.GasSource != domain.SourceFallback {
		t.Errorf("second GasSource = %s, want fallback", second.GasSource)
	}
}

func TestSnapshotPartialFailureDemotesOnlyLive(t *testing.T) {
	prices := &stubPriceProvider{quotes: liveQuotes()}
	gas := &stubGasProvider{err: errors.New("down")}
	svc := NewMarketService([]PriceProvider{prices}, []GasProvider{gas}, time.Second, nil)

	if snap := svc.Snapshot(context.Background()); snap.GasSource != domain.SourceFallback {
		t.Fatalf("warmup GasSource = %s, want fallback", snap.GasSource)
	}

	prices.err = errors.New("down")
	prices.quotes = nil

	snap := svc.Snapshot(context.Background())
	if snap.PriceSource != domain.SourceCached {
		t.Errorf("PriceSource = %s, want cached (was live)", snap.PriceSource)
	}
	if snap.GasSource != domain.SourceFallback {
		t.Errorf("GasSource = %s, want fallback (never live)", snap.GasSource)
	}
}

func TestSnapshotProviderChain(t *testing.T) {
	failing := &stubPriceProvider{err: errors.New("down")}
	working := &stubPriceProvider{quotes: liveQuotes()}
	gas := &stubGasProvider{price: 100}
	svc := NewMarketService([]PriceProvider{failing, working}, []GasProvider{gas}, time.Second, nil)

	snap := svc.Snapshot(context.Background())

	if failing.calls != 1 || working.calls != 1 {
		t.Errorf("provider calls = %d/%d, want 1/1", failing.calls, working.calls)
	}
	if snap.PriceSource != domain.SourceLive {
		t.Errorf("PriceSource = %s, want live from second provider", snap.PriceSource)
	}
}
