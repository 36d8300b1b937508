package domain

import "github.com/shopspring/decimal"

// ChargeBreakdown itemizes every cost of executing a route at a given size.
type ChargeBreakdown struct {
	AmountUSD decimal.Decimal

	FromFeePct     decimal.Decimal
	ToFeePct       decimal.Decimal
	FromFeeUSD     decimal.Decimal
	ToFeeUSD       decimal.Decimal
	TradingFeesUSD decimal.Decimal
	Gas            GasCost
	SlippagePct    decimal.Decimal
	SlippageUSD    decimal.Decimal
	TotalUSD       decimal.Decimal
	TotalPct       decimal.Decimal
	APTPriceUSD    decimal.Decimal
	GasSource      string
	SlippagePolicy string
}

// NewChargeBreakdown assembles the breakdown from per-leg fees, gas and a
// slippage policy. Costs are USD throughout.
func NewChargeBreakdown(amountUSD, fromFeePct, toFeePct decimal.Decimal, gas GasCost, slippage SlippagePolicy, aptPriceUSD decimal.Decimal) ChargeBreakdown {
	fromFee := amountUSD.Mul(fromFeePct).Div(hundred)
	toFee := amountUSD.Mul(toFeePct).Div(hundred)
	trading := fromFee.Add(toFee)

	slipPct := slippage.Percent(amountUSD)
	slipUSD := amountUSD.Mul(slipPct).Div(hundred)

	total := trading.Add(gas.TotalUSD).Add(slipUSD)
	totalPct := decimal.Zero
	if amountUSD.IsPositive() {
		totalPct = total.Div(amountUSD).Mul(hundred)
	}

	return ChargeBreakdown{
		AmountUSD:      amountUSD,
		FromFeePct:     fromFeePct,
		ToFeePct:       toFeePct,
		FromFeeUSD:     fromFee,
		ToFeeUSD:       toFee,
		TradingFeesUSD: trading,
		Gas:            gas,
		SlippagePct:    slipPct,
		SlippageUSD:    slipUSD,
		TotalUSD:       total,
		TotalPct:       totalPct,
		APTPriceUSD:    aptPriceUSD,
		SlippagePolicy: slippage.Name(),
	}
}
