package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// investmentLadder holds the candidate APT amounts the optimizer sweeps,
// ascending.
var investmentLadder = []int64{
	1, 5, 10, 25, 50, 100, 250, 500, 750, 1000,
	1500, 2000, 3000, 5000, 7500, 10000, 15000, 20000, 30000, 50000,
}

// InvestmentLadder returns the candidate APT amounts at or below capAPT,
// deduplicated and ascending.
func InvestmentLadder(capAPT decimal.Decimal) []decimal.Decimal {
	seen := make(map[int64]bool, len(investmentLadder))
	out := make([]decimal.Decimal, 0, len(investmentLadder))
	for _, amount := range investmentLadder {
		if seen[amount] {
			continue
		}
		seen[amount] = true
		d := decimal.NewFromInt(amount)
		if d.LessThanOrEqual(capAPT) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LessThan(out[j]) })
	return out
}

// Optimizer leg-fee defaults applied when the schedule carries no per-leg
// entry.
var (
	DefaultFromLegFeePct = decimal.RequireFromString("0.25")
	DefaultToLegFeePct   = decimal.RequireFromString("0.30")
)

// Token-level spread assumptions the optimizer prices routes with.
var (
	tokenSpreadUSDCToUSDT = decimal.RequireFromString("1.2")
	tokenSpreadUSDTToUSDC = decimal.RequireFromString("1.1")
	tokenSpreadViaAPT     = decimal.RequireFromString("0.9")
	tokenSpreadOther      = decimal.RequireFromString("0.7")
)

// TokenSpread returns the assumed spread percentage for trading fromToken
// into toToken, before venue effects.
func TokenSpread(fromToken, toToken string) decimal.Decimal {
	switch {
	case fromToken == "usdc" && toToken == "usdt":
		return tokenSpreadUSDCToUSDT
	case fromToken == "usdt" && toToken == "usdc":
		return tokenSpreadUSDTToUSDC
	case fromToken == "apt" || toToken == "apt":
		return tokenSpreadViaAPT
	default:
		return tokenSpreadOther
	}
}

// SizeDescriptor labels an APT amount for generated rationale text.
func SizeDescriptor(amountAPT decimal.Decimal) string {
	switch {
	case amountAPT.LessThan(decimal.NewFromInt(100)):
		return "small"
	case amountAPT.LessThan(decimal.NewFromInt(1000)):
		return "medium"
	case amountAPT.LessThan(decimal.NewFromInt(5000)):
		return "large"
	default:
		return "very large"
	}
}

// InvestmentCandidate is one ladder amount priced by the optimizer.
type InvestmentCandidate struct {
	AmountAPT decimal.Decimal
	AmountUSD decimal.Decimal
	Result    ProfitabilityResult
	Score     decimal.Decimal
}

// ScoreCandidate weights margin by risk so safer candidates win ties.
func ScoreCandidate(result ProfitabilityResult) decimal.Decimal {
	return result.MarginPct.Div(RiskWeight(result.Risk))
}

// MarketConditions echoes the market view an optimization priced against.
type MarketConditions struct {
	APTPriceUSD         decimal.Decimal
	SpreadPct           decimal.Decimal
	GasCostAPT          decimal.Decimal
	GasCostUSD          decimal.Decimal
	MinimumSpreadNeeded decimal.Decimal
}

// OptimizationReport is the outcome of an investment ladder sweep.
type OptimizationReport struct {
	FromToken       string
	ToToken         string
	CapAPT          decimal.Decimal
	Evaluated       int
	ProfitableCount int
	Optimal         *InvestmentCandidate
	Reasoning       string
	Top             []InvestmentCandidate
	Recommendations []string
	Market          MarketConditions
}

// AmountAnalysis is the single-amount variant of an optimization.
type AmountAnalysis struct {
	Candidate InvestmentCandidate
	Reasoning string
	Market    MarketConditions
}

// BreakevenReport is the outcome of a break-even search.
type BreakevenReport struct {
	Found      bool
	AmountAPT  *decimal.Decimal
	AmountUSD  *decimal.Decimal
	NetUSD     decimal.Decimal
	Iterations int
	Market     MarketConditions
}
