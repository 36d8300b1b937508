package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func testPrices() PriceSet {
	return PriceSet{
		"apt":  d("12.45"),
		"usdc": d("1.00"),
		"usdt": d("0.999"),
	}
}

// assertNear compares decimals within a small tolerance for values derived
// through division.
func assertNear(t *testing.T, got, want decimal.Decimal) {
	t.Helper()
	tolerance := d("0.000001")
	if got.Sub(want).Abs().GreaterThan(tolerance) {
		t.Errorf("got %s, want %s (±%s)", got, want, tolerance)
	}
}

func TestAssumedSpreadInvalidPrice(t *testing.T) {
	tests := []struct {
		name   string
		prices PriceSet
		token  string
	}{
		{"missing apt", PriceSet{"usdc": d("1"), "usdt": d("1")}, "apt"},
		{"zero usdc", PriceSet{"apt": d("12.45"), "usdc": decimal.Zero, "usdt": d("1")}, "usdc"},
		{"negative usdt", PriceSet{"apt": d("12.45"), "usdc": d("1"), "usdt": d("-0.5")}, "usdt"},
	}

	route := Route{FromPair: PairUSDCAPT, ToPair: PairUSDTAPT, FromDEX: GenericDEXA, ToDEX: GenericDEXB}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AssumedSpread(route, tt.prices)
			var invalid *InvalidPriceError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidPriceError, got %v", err)
			}
			if invalid.Token != tt.token {
				t.Errorf("offending token = %s, want %s", invalid.Token, tt.token)
			}
		})
	}
}

func TestAssumedSpreadImpossibleRoute(t *testing.T) {
	tests := []struct {
		name  string
		route Route
	}{
		{
			name:  "round trip on placeholder venues",
			route: Route{FromPair: PairUSDCAPT, ToPair: PairAPTUSDC, FromDEX: GenericDEXA, ToDEX: GenericDEXB},
		},
		{
			name:  "round trip on the same venue",
			route: Route{FromPair: PairAPTUSDT, ToPair: PairUSDTAPT, FromDEX: "pancakeswap", ToDEX: "pancakeswap"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AssumedSpread(tt.route, testPrices())
			var impossible *ImpossibleRouteError
			if !errors.As(err, &impossible) {
				t.Fatalf("expected ImpossibleRouteError, got %v", err)
			}
		})
	}
}

func TestAssumedSpreadRoundTripAcrossVenues(t *testing.T) {
	// Same token set is fine on two distinct real venues.
	route := Route{FromPair: PairUSDCAPT, ToPair: PairAPTUSDC, FromDEX: "pancakeswap", ToDEX: "thalaswap"}
	spread, err := AssumedSpread(route, testPrices())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Fallthrough route: 0.2 + |1.002-0.998|*100
	assertNear(t, spread, d("0.6"))
}

func TestAssumedSpreadStableRoutes(t *testing.T) {
	prices := testPrices()

	t.Run("usdc_apt to usdt_apt", func(t *testing.T) {
		route := Route{FromPair: PairUSDCAPT, ToPair: PairUSDTAPT, FromDEX: GenericDEXA, ToDEX: GenericDEXB}
		spread, err := AssumedSpread(route, prices)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// rate_diff = |12.45 - 12.462462...| / 12.45 * 100 = 0.1001...%
		// spread = 0.6 + 0.1*rate_diff + 0
		assertNear(t, spread, d("0.610010"))
	})

	t.Run("usdt_apt to usdc_apt", func(t *testing.T) {
		route := Route{FromPair: PairUSDTAPT, ToPair: PairUSDCAPT, FromDEX: GenericDEXA, ToDEX: GenericDEXB}
		spread, err := AssumedSpread(route, prices)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// rate_diff relative to the usdt rate is exactly 0.1%
		assertNear(t, spread, d("0.51"))
	})

	t.Run("cap at 3.0", func(t *testing.T) {
		skewed := PriceSet{"apt": d("12.45"), "usdc": d("1.00"), "usdt": d("0.80")}
		route := Route{FromPair: PairUSDCAPT, ToPair: PairUSDTAPT, FromDEX: GenericDEXA, ToDEX: GenericDEXB}
		spread, err := AssumedSpread(route, skewed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !spread.Equal(d("3.0")) {
			t.Errorf("spread = %s, want capped 3.0", spread)
		}
	})
}

func TestAssumedSpreadAPTRoutes(t *testing.T) {
	prices := testPrices()

	t.Run("apt_usdc to apt_usdt with venue spread", func(t *testing.T) {
		route := Route{FromPair: PairAPTUSDC, ToPair: PairAPTUSDT, FromDEX: "pancakeswap", ToDEX: "thalaswap"}
		spread, err := AssumedSpread(route, prices)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// 0.3 + |1.00-0.999|/1.00*100 + |1.002-0.998|*100 = 0.3 + 0.1 + 0.4
		assertNear(t, spread, d("0.8"))
	})

	t.Run("apt_usdt to apt_usdc with venue spread", func(t *testing.T) {
		route := Route{FromPair: PairAPTUSDT, ToPair: PairAPTUSDC, FromDEX: "pancakeswap", ToDEX: "thalaswap"}
		spread, err := AssumedSpread(route, prices)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// 0.4 + |0.999-1.00|/0.999*100 + |1.002-0.998|*100
		assertNear(t, spread, d("0.900100"))
	})

	t.Run("cap at 2.0", func(t *testing.T) {
		skewed := PriceSet{"apt": d("12.45"), "usdc": d("1.00"), "usdt": d("0.90")}
		route := Route{FromPair: PairAPTUSDC, ToPair: PairAPTUSDT, FromDEX: GenericDEXA, ToDEX: GenericDEXB}
		spread, err := AssumedSpread(route, skewed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !spread.Equal(d("2.0")) {
			t.Errorf("spread = %s, want capped 2.0", spread)
		}
	})
}

func TestAssumedSpreadFallthrough(t *testing.T) {
	t.Run("no venue spread gives minimal", func(t *testing.T) {
		route := Route{FromPair: PairUSDCAPT, ToPair: PairAPTUSDT, FromDEX: GenericDEXA, ToDEX: GenericDEXB}
		spread, err := AssumedSpread(route, testPrices())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !spread.Equal(d("0.05")) {
			t.Errorf("spread = %s, want 0.05", spread)
		}
	})

	t.Run("venue spread adds to base", func(t *testing.T) {
		route := Route{FromPair: PairUSDCAPT, ToPair: PairAPTUSDT, FromDEX: "pancakeswap", ToDEX: "liquidswap"}
		spread, err := AssumedSpread(route, testPrices())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// 0.2 + |1.002-1.000|*100
		assertNear(t, spread, d("0.4"))
	})
}
