package domain

import "github.com/shopspring/decimal"

// RiskTier grades how risky executing a trade is.
type RiskTier string

const (
	RiskLow      RiskTier = "LOW"
	RiskMedium   RiskTier = "MEDIUM"
	RiskHigh     RiskTier = "HIGH"
	RiskVeryHigh RiskTier = "VERY_HIGH"
)

// RiskWeight converts a tier to the divisor the optimizer scores with.
func RiskWeight(tier RiskTier) decimal.Decimal {
	switch tier {
	case RiskLow:
		return decimal.NewFromInt(1)
	case RiskMedium:
		return decimal.NewFromInt(2)
	case RiskHigh:
		return decimal.NewFromInt(3)
	default:
		return decimal.NewFromInt(4)
	}
}

// riskRule matches margins strictly above minMargin, optionally only for
// trades strictly below maxAmount.
type riskRule struct {
	minMarginPct decimal.Decimal
	maxAmountUSD decimal.Decimal // zero means no size bound
	tier         RiskTier
}

// RiskPolicy assigns a tier from margin and trade size. Rules are checked in
// order; the first match wins.
type RiskPolicy struct {
	name  string
	rules []riskRule
}

// Name returns the policy name.
func (p RiskPolicy) Name() string { return p.name }

// Assess returns the risk tier for a trade with the given margin and size.
func (p RiskPolicy) Assess(marginPct, amountUSD decimal.Decimal) RiskTier {
	for _, rule := range p.rules {
		if !marginPct.GreaterThan(rule.minMarginPct) {
			continue
		}
		if !rule.maxAmountUSD.IsZero() && !amountUSD.LessThan(rule.maxAmountUSD) {
			continue
		}
		return rule.tier
	}
	return RiskVeryHigh
}

func rule(minMargin, maxAmount string, tier RiskTier) riskRule {
	r := riskRule{minMarginPct: decimal.RequireFromString(minMargin), tier: tier}
	if maxAmount != "" {
		r.maxAmountUSD = decimal.RequireFromString(maxAmount)
	}
	return r
}

// EvaluatorRiskPolicy grades single-route evaluations.
var EvaluatorRiskPolicy = RiskPolicy{
	name: "evaluator",
	rules: []riskRule{
		rule("1.0", "10000", RiskLow),
		rule("0.5", "50000", RiskMedium),
		rule("0.2", "", RiskHigh),
	},
}

// OptimizerRiskPolicy grades optimizer candidates. Numerically it matches
// the evaluator policy today; it is a separate policy so either can move
// without touching the other call path.
var OptimizerRiskPolicy = RiskPolicy{
	name: "optimizer",
	rules: []riskRule{
		rule("1.0", "10000", RiskLow),
		rule("0.5", "50000", RiskMedium),
		rule("0.2", "", RiskHigh),
	},
}

// AnalysisRiskPolicy is the stricter grading the narrative analysis uses.
var AnalysisRiskPolicy = RiskPolicy{
	name: "analysis",
	rules: []riskRule{
		rule("2.0", "5000", RiskLow),
		rule("1.0", "20000", RiskMedium),
		rule("0.5", "", RiskHigh),
	},
}

// Recommendation is the verdict attached to an evaluation.
type Recommendation string

const (
	RecommendExecute  Recommendation = "EXECUTE"
	RecommendConsider Recommendation = "CONSIDER"
	RecommendSkip     Recommendation = "SKIP"
)

// MinExecuteMarginPct is the net margin a trade must clear to be recommended.
var MinExecuteMarginPct = decimal.RequireFromString("0.5")

// ProfitabilityResult is the outcome of evaluating one route at one size.
type ProfitabilityResult struct {
	SpreadPct      decimal.Decimal
	GrossUSD       decimal.Decimal
	TotalCostUSD   decimal.Decimal
	NetUSD         decimal.Decimal
	MarginPct      decimal.Decimal
	IsProfitable   bool
	Risk           RiskTier
	Recommendation Recommendation
}

// NewProfitabilityResult derives the full verdict from a spread, a trade
// size and total costs, grading risk with the given policy.
func NewProfitabilityResult(spreadPct, amountUSD, totalCostUSD decimal.Decimal, policy RiskPolicy) ProfitabilityResult {
	gross := amountUSD.Mul(spreadPct).Div(hundred)
	net := gross.Sub(totalCostUSD)
	margin := decimal.Zero
	if amountUSD.IsPositive() {
		margin = net.Div(amountUSD).Mul(hundred)
	}

	profitable := net.IsPositive()
	rec := RecommendSkip
	if profitable && margin.GreaterThan(MinExecuteMarginPct) {
		rec = RecommendExecute
	}

	return ProfitabilityResult{
		SpreadPct:      spreadPct,
		GrossUSD:       gross,
		TotalCostUSD:   totalCostUSD,
		NetUSD:         net,
		MarginPct:      margin,
		IsProfitable:   profitable,
		Risk:           policy.Assess(margin, amountUSD),
		Recommendation: rec,
	}
}
