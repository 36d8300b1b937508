package app

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fd1az/aptos-arbitrage/business/arbitrage/domain"
)

// ArbitrageRequest is the shared request body for every arbitrage endpoint.
// Each handler reads the fields it needs; unknown fields are ignored.
type ArbitrageRequest struct {
	Action           string              `json:"action,omitempty"`
	FromToken        string              `json:"from_token,omitempty"`
	ToToken          string              `json:"to_token,omitempty"`
	AmountAPT        *float64            `json:"amount_apt,omitempty"`
	AmountUSD        *float64            `json:"amount_usd,omitempty"`
	TradeAmount      *float64            `json:"trade_amount,omitempty"`
	MaxInvestmentAPT *float64            `json:"max_investment_apt,omitempty"`
	DEXFees          map[string]float64  `json:"dex_fees,omitempty"`
	CurrentPrices    []map[string]string `json:"current_prices,omitempty"`
	APTPrice         string              `json:"apt_price,omitempty"`
}

// FeeSchedule converts the request fees. A missing dex_fees field yields an
// empty schedule, which resolves every leg to zero.
func (r *ArbitrageRequest) FeeSchedule() domain.FeeSchedule {
	fees := make(domain.FeeSchedule, len(r.DEXFees))
	for dex, pct := range r.DEXFees {
		fees[dex] = decimal.NewFromFloat(pct)
	}
	return fees
}

// customPrices flattens current_prices into token -> price overrides.
// Unparseable entries are skipped.
func (r *ArbitrageRequest) customPrices() map[string]decimal.Decimal {
	if len(r.CurrentPrices) == 0 {
		return nil
	}
	prices := make(map[string]decimal.Decimal)
	for _, entry := range r.CurrentPrices {
		for token, raw := range entry {
			price, err := decimal.NewFromString(raw)
			if err != nil {
				continue
			}
			prices[strings.ToLower(token)] = price
		}
	}
	return prices
}

// EffectivePrices overlays the request's price overrides on the market
// prices. The apt_price field wins over both.
func (r *ArbitrageRequest) EffectivePrices(market domain.PriceSet) domain.PriceSet {
	prices := make(domain.PriceSet, len(market))
	for token, price := range market {
		prices[token] = price
	}
	for token, price := range r.customPrices() {
		prices[token] = price
	}
	if r.APTPrice != "" {
		if override, err := decimal.NewFromString(r.APTPrice); err == nil {
			prices["apt"] = override
		}
	}
	return prices
}

// TradeAmountUSD resolves the trade size. Priority: trade_amount, then
// amount_apt converted at the APT price, then amount_usd, then the default.
func (r *ArbitrageRequest) TradeAmountUSD(aptPrice, defaultUSD decimal.Decimal) decimal.Decimal {
	switch {
	case r.TradeAmount != nil:
		return decimal.NewFromFloat(*r.TradeAmount)
	case r.AmountAPT != nil:
		return decimal.NewFromFloat(*r.AmountAPT).Mul(aptPrice)
	case r.AmountUSD != nil:
		return decimal.NewFromFloat(*r.AmountUSD)
	}
	return defaultUSD
}

// CapAPT resolves the optimization cap, defaulting when absent.
func (r *ArbitrageRequest) CapAPT(defaultCap decimal.Decimal) decimal.Decimal {
	if r.MaxInvestmentAPT != nil {
		return decimal.NewFromFloat(*r.MaxInvestmentAPT)
	}
	return defaultCap
}

// normalizedTokens lowercases the token fields in place.
func (r *ArbitrageRequest) normalizedTokens() (from, to string) {
	return strings.ToLower(r.FromToken), strings.ToLower(r.ToToken)
}

// parseAmountAPT reads amount_apt, falling back through trade_amount and
// amount_usd converted at the APT price. Used by the APT-denominated
// endpoints.
func (r *ArbitrageRequest) parseAmountAPT(aptPrice decimal.Decimal) (decimal.Decimal, bool) {
	if r.AmountAPT != nil {
		return decimal.NewFromFloat(*r.AmountAPT), true
	}
	usd := decimal.Zero
	if r.TradeAmount != nil {
		usd = decimal.NewFromFloat(*r.TradeAmount)
	} else if r.AmountUSD != nil {
		usd = decimal.NewFromFloat(*r.AmountUSD)
	}
	if usd.IsPositive() && aptPrice.IsPositive() {
		return usd.Div(aptPrice), true
	}
	return decimal.Zero, false
}
