package domain

import "github.com/shopspring/decimal"

// slippageBand applies pct to trade sizes strictly below the ceiling.
type slippageBand struct {
	belowUSD decimal.Decimal
	pct      decimal.Decimal
}

// SlippagePolicy estimates slippage as a percentage of trade size, stepping
// through size bands.
type SlippagePolicy struct {
	name      string
	bands     []slippageBand
	otherwise decimal.Decimal
}

// Name returns the policy name.
func (p SlippagePolicy) Name() string { return p.name }

// Percent returns the slippage percentage for a trade of amountUSD.
func (p SlippagePolicy) Percent(amountUSD decimal.Decimal) decimal.Decimal {
	for _, band := range p.bands {
		if amountUSD.LessThan(band.belowUSD) {
			return band.pct
		}
	}
	return p.otherwise
}

func band(below, pct string) slippageBand {
	return slippageBand{
		belowUSD: decimal.RequireFromString(below),
		pct:      decimal.RequireFromString(pct),
	}
}

// SlippageStandard is the coarse policy the charge calculator uses.
var SlippageStandard = SlippagePolicy{
	name: "standard",
	bands: []slippageBand{
		band("1000", "0.02"),
		band("5000", "0.05"),
		band("20000", "0.15"),
	},
	otherwise: decimal.RequireFromString("0.30"),
}

// SlippageFine is the finer-grained policy the investment optimizer uses;
// it keeps punishing size past the standard policy's last band.
var SlippageFine = SlippagePolicy{
	name: "fine",
	bands: []slippageBand{
		band("1000", "0.02"),
		band("5000", "0.05"),
		band("25000", "0.15"),
		band("100000", "0.35"),
	},
	otherwise: decimal.RequireFromString("0.75"),
}
