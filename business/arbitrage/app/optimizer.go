package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fd1az/aptos-arbitrage/business/arbitrage/domain"
)

// OptimizeInput describes an investment optimization request.
type OptimizeInput struct {
	FromToken string
	ToToken   string
	Fees      domain.FeeSchedule
	CapAPT    decimal.Decimal
	Prices    domain.PriceSet
}

// Optimizer searches for the APT amount that maximizes margin weighted by
// risk, using a coarser cost model than the charge calculator: flat APT gas,
// the fine slippage policy and token-level spreads.
type Optimizer struct{}

var hundred = decimal.NewFromInt(100)

func legFee(fees domain.FeeSchedule, leg domain.Leg, fallback decimal.Decimal) decimal.Decimal {
	if fee, ok := fees[string(leg)]; ok {
		return fee
	}
	return fallback
}

// priceCandidate prices one APT amount under the optimizer cost model.
func (Optimizer) priceCandidate(amountAPT decimal.Decimal, in OptimizeInput) domain.InvestmentCandidate {
	aptPrice := in.Prices.APT()
	amountUSD := amountAPT.Mul(aptPrice)

	fromFee := legFee(in.Fees, domain.LegFrom, domain.DefaultFromLegFeePct)
	toFee := legFee(in.Fees, domain.LegTo, domain.DefaultToLegFeePct)
	trading := amountUSD.Mul(fromFee.Add(toFee)).Div(hundred)

	gasUSD := domain.FlatArbitrageGasAPT().Mul(aptPrice)
	slippage := amountUSD.Mul(domain.SlippageFine.Percent(amountUSD)).Div(hundred)

	totalCost := trading.Add(gasUSD).Add(slippage)
	spread := domain.TokenSpread(in.FromToken, in.ToToken)

	result := domain.NewProfitabilityResult(spread, amountUSD, totalCost, domain.OptimizerRiskPolicy)

	return domain.InvestmentCandidate{
		AmountAPT: amountAPT,
		AmountUSD: amountUSD,
		Result:    result,
		Score:     domain.ScoreCandidate(result),
	}
}

func (o Optimizer) marketConditions(in OptimizeInput) domain.MarketConditions {
	aptPrice := in.Prices.APT()
	gasAPT := domain.FlatArbitrageGasAPT()
	return domain.MarketConditions{
		APTPriceUSD:         aptPrice,
		SpreadPct:           domain.TokenSpread(in.FromToken, in.ToToken),
		GasCostAPT:          gasAPT,
		GasCostUSD:          gasAPT.Mul(aptPrice),
		MinimumSpreadNeeded: domain.MinimumSpreadNeeded,
	}
}

func normalizeTokens(in *OptimizeInput) {
	in.FromToken = strings.ToLower(in.FromToken)
	in.ToToken = strings.ToLower(in.ToToken)
}

// Optimize sweeps the investment ladder up to the cap and picks the
// candidate with the best margin-to-risk score.
func (o Optimizer) Optimize(in OptimizeInput) (domain.OptimizationReport, error) {
	normalizeTokens(&in)
	if err := in.Prices.Validate(); err != nil {
		return domain.OptimizationReport{}, err
	}
	if !in.CapAPT.IsPositive() {
		return domain.OptimizationReport{}, &domain.InvalidTradeSizeError{AmountUSD: in.CapAPT}
	}

	ladder := domain.InvestmentLadder(in.CapAPT)
	report := domain.OptimizationReport{
		FromToken: in.FromToken,
		ToToken:   in.ToToken,
		CapAPT:    in.CapAPT,
		Evaluated: len(ladder),
		Market:    o.marketConditions(in),
	}

	var profitable []domain.InvestmentCandidate
	for _, amount := range ladder {
		cand := o.priceCandidate(amount, in)
		if cand.Result.IsProfitable {
			profitable = append(profitable, cand)
		}
	}
	report.ProfitableCount = len(profitable)

	if len(profitable) == 0 {
		report.Reasoning = "No investment amount is profitable under current conditions."
		return report, nil
	}

	best := profitable[0]
	for _, cand := range profitable[1:] {
		if cand.Score.GreaterThan(best.Score) {
			best = cand
		}
	}
	report.Optimal = &best
	report.Reasoning = fmt.Sprintf(
		"Investing %s APT (a %s position worth $%s) offers the best margin-to-risk balance: %s%% margin at %s risk.",
		best.AmountAPT, domain.SizeDescriptor(best.AmountAPT), best.AmountUSD.StringFixed(2),
		best.Result.MarginPct.StringFixed(3), best.Result.Risk,
	)

	top := make([]domain.InvestmentCandidate, len(profitable))
	copy(top, profitable)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Result.MarginPct.GreaterThan(top[j].Result.MarginPct)
	})
	if len(top) > domain.MaxReportedOpportunities {
		top = top[:domain.MaxReportedOpportunities]
	}
	report.Top = top
	report.Recommendations = o.recommendations(profitable, top)

	return report, nil
}

func (Optimizer) recommendations(profitable, top []domain.InvestmentCandidate) []string {
	recs := []string{
		fmt.Sprintf("%d of the tested amounts are profitable.", len(profitable)),
	}

	sum := decimal.Zero
	lowRisk := 0
	for _, cand := range profitable {
		sum = sum.Add(cand.Result.MarginPct)
		if cand.Result.Risk == domain.RiskLow {
			lowRisk++
		}
	}
	avg := sum.Div(decimal.NewFromInt(int64(len(profitable))))
	recs = append(recs,
		fmt.Sprintf("Best margin %s%%, average margin %s%%.",
			top[0].Result.MarginPct.StringFixed(3), avg.StringFixed(3)),
		fmt.Sprintf("%d amounts carry LOW risk.", lowRisk),
	)

	var bestSmall, bestLarge *domain.InvestmentCandidate
	for i := range profitable {
		cand := &profitable[i]
		if cand.AmountAPT.LessThan(decimal.NewFromInt(100)) {
			if bestSmall == nil || cand.Result.MarginPct.GreaterThan(bestSmall.Result.MarginPct) {
				bestSmall = cand
			}
		}
		if cand.AmountAPT.GreaterThan(decimal.NewFromInt(1000)) {
			if bestLarge == nil || cand.Result.MarginPct.GreaterThan(bestLarge.Result.MarginPct) {
				bestLarge = cand
			}
		}
	}
	if bestSmall != nil {
		recs = append(recs, fmt.Sprintf("Best small position: %s APT at %s%% margin.",
			bestSmall.AmountAPT, bestSmall.Result.MarginPct.StringFixed(3)))
	}
	if bestLarge != nil {
		recs = append(recs, fmt.Sprintf("Best large position: %s APT at %s%% margin.",
			bestLarge.AmountAPT, bestLarge.Result.MarginPct.StringFixed(3)))
	}

	return recs
}

// AnalyzeAmount prices a single APT amount under the optimizer cost model.
func (o Optimizer) AnalyzeAmount(amountAPT decimal.Decimal, in OptimizeInput) (domain.AmountAnalysis, error) {
	normalizeTokens(&in)
	if err := in.Prices.Validate(); err != nil {
		return domain.AmountAnalysis{}, err
	}
	if !amountAPT.IsPositive() {
		return domain.AmountAnalysis{}, &domain.InvalidTradeSizeError{AmountUSD: amountAPT}
	}

	cand := o.priceCandidate(amountAPT, in)
	verdict := "is not profitable"
	if cand.Result.IsProfitable {
		verdict = fmt.Sprintf("nets $%s (%s%% margin) at %s risk",
			cand.Result.NetUSD.StringFixed(2), cand.Result.MarginPct.StringFixed(3), cand.Result.Risk)
	}

	return domain.AmountAnalysis{
		Candidate: cand,
		Reasoning: fmt.Sprintf("A %s position of %s APT %s.",
			domain.SizeDescriptor(amountAPT), amountAPT, verdict),
		Market: o.marketConditions(in),
	}, nil
}

// Break-even search bounds and convergence threshold.
var (
	breakevenMinAPT  = decimal.NewFromInt(1)
	breakevenMaxAPT  = decimal.NewFromInt(100000)
	breakevenEpsilon = decimal.RequireFromString("0.01")
)

const breakevenMaxIterations = 20

// Breakeven bisects for the APT amount whose net profit is within one cent
// of zero. Non-convergence after the iteration budget reports Found=false.
func (o Optimizer) Breakeven(in OptimizeInput) (domain.BreakevenReport, error) {
	normalizeTokens(&in)
	if err := in.Prices.Validate(); err != nil {
		return domain.BreakevenReport{}, err
	}

	report := domain.BreakevenReport{Market: o.marketConditions(in)}

	lo, hi := breakevenMinAPT, breakevenMaxAPT
	two := decimal.NewFromInt(2)
	for i := 0; i < breakevenMaxIterations; i++ {
		mid := lo.Add(hi).Div(two)
		cand := o.priceCandidate(mid, in)
		net := cand.Result.NetUSD
		report.Iterations = i + 1
		report.NetUSD = net

		if net.Abs().LessThan(breakevenEpsilon) {
			report.Found = true
			report.AmountAPT = &mid
			amountUSD := cand.AmountUSD
			report.AmountUSD = &amountUSD
			return report, nil
		}

		if net.IsNegative() {
			lo = mid
		} else {
			hi = mid
		}
	}

	return report, nil
}
