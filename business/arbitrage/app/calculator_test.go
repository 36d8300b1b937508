package app

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fd1az/aptos-arbitrage/business/arbitrage/domain"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testPrices() domain.PriceSet {
	return domain.PriceSet{
		"apt":  d("12.45"),
		"usdc": d("1.00"),
		"usdt": d("0.999"),
	}
}

func assertNear(t *testing.T, got, want decimal.Decimal) {
	t.Helper()
	tolerance := d("0.000001")
	if got.Sub(want).Abs().GreaterThan(tolerance) {
		t.Errorf("got %s, want %s (±%s)", got, want, tolerance)
	}
}

func TestChargeCalculator(t *testing.T) {
	var calc ChargeCalculator

	in := ChargeInput{
		Route: domain.Route{
			FromPair:  domain.PairUSDCAPT,
			ToPair:    domain.PairUSDTAPT,
			FromDEX:   "pancakeswap",
			ToDEX:     "liquidswap",
			AmountUSD: d("1000"),
		},
		Fees: domain.FeeSchedule{
			"pancakeswap": d("0.25"),
			"liquidswap":  d("0.30"),
		},
		GasUnitPriceOct: 100,
		GasSource:       "fallback",
		Prices:          testPrices(),
	}

	got, err := calc.Calculate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !got.FromFeeUSD.Equal(d("2.5")) {
		t.Errorf("FromFeeUSD = %s, want 2.5", got.FromFeeUSD)
	}
	if !got.ToFeeUSD.Equal(d("3")) {
		t.Errorf("ToFeeUSD = %s, want 3", got.ToFeeUSD)
	}
	if !got.TradingFeesUSD.Equal(d("5.5")) {
		t.Errorf("TradingFeesUSD = %s, want 5.5", got.TradingFeesUSD)
	}
	if !got.Gas.TotalAPT.Equal(d("0.002")) {
		t.Errorf("Gas.TotalAPT = %s, want 0.002", got.Gas.TotalAPT)
	}
	// $1000 sits in the 0.05% band; the 0.02% band stops strictly below it.
	if !got.SlippageUSD.Equal(d("0.5")) {
		t.Errorf("SlippageUSD = %s, want 0.5", got.SlippageUSD)
	}
	// 5.5 + 0.0249 + 0.5
	if !got.TotalUSD.Equal(d("6.0249")) {
		t.Errorf("TotalUSD = %s, want 6.0249", got.TotalUSD)
	}
	assertNear(t, got.TotalPct, d("0.60249"))
	if got.GasSource != "fallback" {
		t.Errorf("GasSource = %q, want fallback", got.GasSource)
	}
}

func TestChargeCalculatorZeroGasPriceUsesFallback(t *testing.T) {
	var calc ChargeCalculator

	in := ChargeInput{
		Route: domain.Route{
			FromPair:  domain.PairUSDCAPT,
			ToPair:    domain.PairUSDTAPT,
			FromDEX:   domain.GenericDEXA,
			ToDEX:     domain.GenericDEXB,
			AmountUSD: d("1000"),
		},
		Prices: testPrices(),
	}

	got, err := calc.Calculate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Gas.UnitPriceOctas != domain.FallbackGasUnitPrice {
		t.Errorf("UnitPriceOctas = %d, want %d", got.Gas.UnitPriceOctas, domain.FallbackGasUnitPrice)
	}
	// Empty schedule charges no trading fees.
	if !got.TradingFeesUSD.IsZero() {
		t.Errorf("TradingFeesUSD = %s, want 0", got.TradingFeesUSD)
	}
}

func TestChargeCalculatorRejectsBadInput(t *testing.T) {
	var calc ChargeCalculator

	t.Run("non-positive amount", func(t *testing.T) {
		in := ChargeInput{
			Route:  domain.Route{AmountUSD: decimal.Zero},
			Prices: testPrices(),
		}
		_, err := calc.Calculate(in)
		var sizeErr *domain.InvalidTradeSizeError
		if !errors.As(err, &sizeErr) {
			t.Fatalf("expected InvalidTradeSizeError, got %v", err)
		}
	})

	t.Run("invalid price", func(t *testing.T) {
		in := ChargeInput{
			Route:  domain.Route{AmountUSD: d("1000")},
			Prices: domain.PriceSet{"apt": decimal.Zero, "usdc": d("1"), "usdt": d("1")},
		}
		_, err := calc.Calculate(in)
		var priceErr *domain.InvalidPriceError
		if !errors.As(err, &priceErr) {
			t.Fatalf("expected InvalidPriceError, got %v", err)
		}
	})
}
