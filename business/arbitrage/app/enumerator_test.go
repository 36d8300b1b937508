package app

import (
	"context"
	"testing"

	"github.com/fd1az/aptos-arbitrage/business/arbitrage/domain"
)

func TestEnumeratorNoVenues(t *testing.T) {
	en := NewEnumerator(nil)

	report, err := en.Find(context.Background(), SearchInput{
		AmountUSD: d("1000"),
		Fees:      domain.FeeSchedule{},
		Prices:    testPrices(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Message != NoVenuesMessage {
		t.Errorf("Message = %q, want guidance", report.Message)
	}
	if report.PairsChecked != 0 || report.TotalFound != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
}

func TestEnumeratorTwoVenues(t *testing.T) {
	en := NewEnumerator(nil)

	report, err := en.Find(context.Background(), SearchInput{
		AmountUSD: d("5000"),
		Fees: domain.FeeSchedule{
			"dex_x": d("0.25"),
			"dex_y": d("0.30"),
		},
		GasUnitPriceOct: 100,
		Prices:          testPrices(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 4 pair combinations x 2 ordered venue pairs
	if report.PairsChecked != 8 {
		t.Errorf("PairsChecked = %d, want 8", report.PairsChecked)
	}
	if report.TotalFound != 8 {
		t.Errorf("TotalFound = %d, want 8", report.TotalFound)
	}
	// At $5000 the modeled spreads never outrun 0.55% fees + 0.15% slippage.
	if report.ProfitableCount != 0 {
		t.Errorf("ProfitableCount = %d, want 0", report.ProfitableCount)
	}
	if len(report.Top) != 0 {
		t.Errorf("Top has %d entries, want 0", len(report.Top))
	}
}

func TestEnumeratorFindsProfitableRoutes(t *testing.T) {
	en := NewEnumerator(nil)

	// A depegged USDT widens the stable-to-stable spread enough to clear
	// the cost of a small trade on the contract-wide fee.
	prices := domain.PriceSet{
		"apt":  d("12.45"),
		"usdc": d("1.00"),
		"usdt": d("0.98"),
	}

	report, err := en.Find(context.Background(), SearchInput{
		AmountUSD:       d("1000"),
		Fees:            domain.FeeSchedule{domain.KeySmartContract: d("0.30")},
		GasUnitPriceOct: 100,
		Prices:          prices,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := report.Venues; len(got) != 2 || got[0] != domain.GenericDEXA || got[1] != domain.GenericDEXB {
		t.Fatalf("Venues = %v, want placeholder pair", got)
	}
	if report.ProfitableCount == 0 {
		t.Fatal("expected at least one profitable route")
	}
	for i := 1; i < len(report.Top); i++ {
		if report.Top[i].Result.MarginPct.GreaterThan(report.Top[i-1].Result.MarginPct) {
			t.Errorf("Top not sorted by margin at %d", i)
		}
	}
	if !report.BestMarginPct.Equal(report.Top[0].Result.MarginPct) {
		t.Errorf("BestMarginPct = %s, want %s", report.BestMarginPct, report.Top[0].Result.MarginPct)
	}
	if report.AverageMarginPct.IsZero() {
		t.Error("AverageMarginPct should be set")
	}
}
