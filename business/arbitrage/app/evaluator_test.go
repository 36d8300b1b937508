package app

import (
	"errors"
	"testing"

	"github.com/fd1az/aptos-arbitrage/business/arbitrage/domain"
)

func TestEvaluatorEvaluate(t *testing.T) {
	var eval Evaluator

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
		Prices:          testPrices(),
	}

	got, err := eval.Evaluate(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// spread = 0.6 + 0.1*rate_diff + |1.002-1.000|*100 = 0.810010...
	assertNear(t, got.Result.SpreadPct, d("0.810010"))
	assertNear(t, got.Result.GrossUSD, d("8.100100"))
	assertNear(t, got.Result.NetUSD, d("2.075200"))
	assertNear(t, got.Result.MarginPct, d("0.207520"))
	if !got.Result.IsProfitable {
		t.Error("expected profitable result")
	}
	if got.Result.Recommendation != domain.RecommendSkip {
		t.Errorf("Recommendation = %s, want SKIP below margin threshold", got.Result.Recommendation)
	}
	if got.Result.Risk != domain.RiskHigh {
		t.Errorf("Risk = %s, want HIGH", got.Result.Risk)
	}
}

func TestEvaluatorImpossibleRoute(t *testing.T) {
	var eval Evaluator

	in := ChargeInput{
		Route: domain.Route{
			FromPair:  domain.PairUSDCAPT,
			ToPair:    domain.PairAPTUSDC,
			FromDEX:   domain.GenericDEXA,
			ToDEX:     domain.GenericDEXB,
			AmountUSD: d("1000"),
		},
		Prices: testPrices(),
	}

	_, err := eval.Evaluate(in)
	var impossible *domain.ImpossibleRouteError
	if !errors.As(err, &impossible) {
		t.Fatalf("expected ImpossibleRouteError, got %v", err)
	}
}
