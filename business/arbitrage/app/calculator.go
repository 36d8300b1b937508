// Package app orchestrates the arbitrage domain model: charge breakdowns,
// route evaluation, opportunity enumeration and investment optimization.
package app

import (
	"github.com/fd1az/aptos-arbitrage/business/arbitrage/domain"
)

// ChargeInput carries everything a charge or profitability computation
// needs. Prices and gas arrive explicitly; nothing is read from shared
// state.
type ChargeInput struct {
	Route           domain.Route
	Fees            domain.FeeSchedule
	GasUnitPriceOct int64
	GasSource       string
	Prices          domain.PriceSet
}

func (in ChargeInput) gasUnitPrice() int64 {
	if in.GasUnitPriceOct > 0 {
		return in.GasUnitPriceOct
	}
	return domain.FallbackGasUnitPrice
}

// ChargeCalculator itemizes the costs of executing a route.
type ChargeCalculator struct{}

// Calculate builds the full charge breakdown for one route at its trade
// size. Both legs resolve their fee from the schedule; gas is two swaps at
// the given unit price; slippage follows the standard policy.
func (ChargeCalculator) Calculate(in ChargeInput) (domain.ChargeBreakdown, error) {
	if !in.Route.AmountUSD.IsPositive() {
		return domain.ChargeBreakdown{}, &domain.InvalidTradeSizeError{AmountUSD: in.Route.AmountUSD}
	}
	if err := in.Prices.Validate(); err != nil {
		return domain.ChargeBreakdown{}, err
	}

	fromFee := in.Fees.Resolve(in.Route.FromDEX, domain.LegFrom)
	toFee := in.Fees.Resolve(in.Route.ToDEX, domain.LegTo)

	gas := domain.NewGasCost(domain.OpSwap, in.gasUnitPrice(), domain.ArbitrageSwapCount, in.Prices.APT())

	breakdown := domain.NewChargeBreakdown(
		in.Route.AmountUSD, fromFee, toFee, gas, domain.SlippageStandard, in.Prices.APT(),
	)
	breakdown.GasSource = in.GasSource
	return breakdown, nil
}
