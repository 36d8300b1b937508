package app

import (
	"github.com/fd1az/aptos-arbitrage/business/arbitrage/domain"
)

// Evaluation is a fully judged route: its costs and its verdict.
type Evaluation struct {
	Route   domain.Route
	Charges domain.ChargeBreakdown
	Result  domain.ProfitabilityResult
}

// Evaluator turns a route plus market inputs into a profitability verdict.
type Evaluator struct {
	calc ChargeCalculator
}

// Evaluate estimates the spread the route captures, prices its costs and
// derives the verdict under the evaluator risk policy.
func (e Evaluator) Evaluate(in ChargeInput) (Evaluation, error) {
	spread, err := domain.AssumedSpread(in.Route, in.Prices)
	if err != nil {
		return Evaluation{}, err
	}

	charges, err := e.calc.Calculate(in)
	if err != nil {
		return Evaluation{}, err
	}

	result := domain.NewProfitabilityResult(
		spread, in.Route.AmountUSD, charges.TotalUSD, domain.EvaluatorRiskPolicy,
	)

	return Evaluation{Route: in.Route, Charges: charges, Result: result}, nil
}
