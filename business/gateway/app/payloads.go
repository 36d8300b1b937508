package app

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fd1az/aptos-arbitrage/business/arbitrage/domain"
	marketdomain "github.com/fd1az/aptos-arbitrage/business/market/domain"
)

// Response payloads. Domain types stay tag-free; the wire shape is owned
// here so the API can stay stable while the domain evolves.

type routePayload struct {
	FromPair  string          `json:"from_pair"`
	ToPair    string          `json:"to_pair"`
	FromDEX   string          `json:"from_dex"`
	ToDEX     string          `json:"to_dex"`
	AmountUSD decimal.Decimal `json:"trade_amount_usd"`
}

func toRoutePayload(r domain.Route) routePayload {
	return routePayload{
		FromPair:  string(r.FromPair),
		ToPair:    string(r.ToPair),
		FromDEX:   r.FromDEX,
		ToDEX:     r.ToDEX,
		AmountUSD: r.AmountUSD,
	}
}

type gasPayload struct {
	UnitPriceOctas int64           `json:"gas_unit_price_octas"`
	UnitsPerOp     int64           `json:"gas_units_per_swap"`
	Operations     int64           `json:"operations"`
	TotalAPT       decimal.Decimal `json:"total_gas_cost_apt"`
	TotalUSD       decimal.Decimal `json:"total_gas_cost_usd"`
	Source         string          `json:"gas_source,omitempty"`
}

type chargesPayload struct {
	FromFeePct     decimal.Decimal `json:"from_dex_fee_percent"`
	ToFeePct       decimal.Decimal `json:"to_dex_fee_percent"`
	FromFeeUSD     decimal.Decimal `json:"from_fee_amount_usd"`
	ToFeeUSD       decimal.Decimal `json:"to_fee_amount_usd"`
	TradingFeesUSD decimal.Decimal `json:"total_trading_fees_usd"`
	Gas            gasPayload      `json:"gas_fees"`
	SlippagePct    decimal.Decimal `json:"estimated_slippage_percent"`
	SlippageUSD    decimal.Decimal `json:"estimated_slippage_cost_usd"`
	TotalUSD       decimal.Decimal `json:"total_fees_usd"`
	TotalPct       decimal.Decimal `json:"cost_percentage"`
	APTPriceUSD    decimal.Decimal `json:"apt_price_used"`
	SlippagePolicy string          `json:"slippage_policy"`
}

func toChargesPayload(c domain.ChargeBreakdown) chargesPayload {
	return chargesPayload{
		FromFeePct:     c.FromFeePct,
		ToFeePct:       c.ToFeePct,
		FromFeeUSD:     c.FromFeeUSD,
		ToFeeUSD:       c.ToFeeUSD,
		TradingFeesUSD: c.TradingFeesUSD,
		Gas: gasPayload{
			UnitPriceOctas: c.Gas.UnitPriceOctas,
			UnitsPerOp:     c.Gas.UnitsPerOp,
			Operations:     c.Gas.Operations,
			TotalAPT:       c.Gas.TotalAPT,
			TotalUSD:       c.Gas.TotalUSD,
			Source:         c.GasSource,
		},
		SlippagePct:    c.SlippagePct,
		SlippageUSD:    c.SlippageUSD,
		TotalUSD:       c.TotalUSD,
		TotalPct:       c.TotalPct,
		APTPriceUSD:    c.APTPriceUSD,
		SlippagePolicy: c.SlippagePolicy,
	}
}

type profitabilityPayload struct {
	SpreadPct      decimal.Decimal `json:"assumed_spread_percent"`
	GrossUSD       decimal.Decimal `json:"gross_profit_usd"`
	TotalCostUSD   decimal.Decimal `json:"total_costs_usd"`
	NetUSD         decimal.Decimal `json:"net_profit_usd"`
	MarginPct      decimal.Decimal `json:"profit_margin_percent"`
	IsProfitable   bool            `json:"is_profitable"`
	Risk           string          `json:"risk_level"`
	Recommendation string          `json:"recommendation"`
}

func toProfitabilityPayload(r domain.ProfitabilityResult) profitabilityPayload {
	return profitabilityPayload{
		SpreadPct:      r.SpreadPct,
		GrossUSD:       r.GrossUSD,
		TotalCostUSD:   r.TotalCostUSD,
		NetUSD:         r.NetUSD,
		MarginPct:      r.MarginPct,
		IsProfitable:   r.IsProfitable,
		Risk:           string(r.Risk),
		Recommendation: string(r.Recommendation),
	}
}

type opportunityPayload struct {
	Route         routePayload         `json:"route"`
	Charges       chargesPayload       `json:"charges"`
	Profitability profitabilityPayload `json:"profitability"`
}

type opportunitiesPayload struct {
	AmountUSD        decimal.Decimal      `json:"trade_amount_usd"`
	Venues           []string             `json:"venues"`
	PairsChecked     int                  `json:"pairs_checked"`
	TotalFound       int                  `json:"total_found"`
	ProfitableCount  int                  `json:"profitable_count"`
	Top              []opportunityPayload `json:"top_opportunities"`
	BestMarginPct    decimal.Decimal      `json:"best_margin_percent"`
	AverageMarginPct decimal.Decimal      `json:"average_margin_percent"`
	RecommendedCount int                  `json:"recommended_count"`
	Message          string               `json:"message,omitempty"`
}

func toOpportunitiesPayload(r domain.OpportunityReport) opportunitiesPayload {
	top := make([]opportunityPayload, 0, len(r.Top))
	for _, opp := range r.Top {
		top = append(top, opportunityPayload{
			Route:         toRoutePayload(opp.Route),
			Charges:       toChargesPayload(opp.Charges),
			Profitability: toProfitabilityPayload(opp.Result),
		})
	}
	return opportunitiesPayload{
		AmountUSD:        r.AmountUSD,
		Venues:           r.Venues,
		PairsChecked:     r.PairsChecked,
		TotalFound:       r.TotalFound,
		ProfitableCount:  r.ProfitableCount,
		Top:              top,
		BestMarginPct:    r.BestMarginPct,
		AverageMarginPct: r.AverageMarginPct,
		RecommendedCount: r.RecommendedCount,
		Message:          r.Message,
	}
}

type candidatePayload struct {
	AmountAPT     decimal.Decimal      `json:"amount_apt"`
	AmountUSD     decimal.Decimal      `json:"amount_usd"`
	Profitability profitabilityPayload `json:"profitability"`
	Score         decimal.Decimal      `json:"score"`
	SizeCategory  string               `json:"size_category"`
}

func toCandidatePayload(c domain.InvestmentCandidate) candidatePayload {
	return candidatePayload{
		AmountAPT:     c.AmountAPT,
		AmountUSD:     c.AmountUSD,
		Profitability: toProfitabilityPayload(c.Result),
		Score:         c.Score,
		SizeCategory:  domain.SizeDescriptor(c.AmountAPT),
	}
}

type marketConditionsPayload struct {
	APTPriceUSD         decimal.Decimal `json:"apt_price_usd"`
	SpreadPct           decimal.Decimal `json:"assumed_spread_percent"`
	GasCostAPT          decimal.Decimal `json:"gas_cost_apt"`
	GasCostUSD          decimal.Decimal `json:"gas_cost_usd"`
	MinimumSpreadNeeded decimal.Decimal `json:"minimum_spread_needed"`
}

func toMarketConditionsPayload(m domain.MarketConditions) marketConditionsPayload {
	return marketConditionsPayload{
		APTPriceUSD:         m.APTPriceUSD,
		SpreadPct:           m.SpreadPct,
		GasCostAPT:          m.GasCostAPT,
		GasCostUSD:          m.GasCostUSD,
		MinimumSpreadNeeded: m.MinimumSpreadNeeded,
	}
}

type optimizationPayload struct {
	FromToken       string                  `json:"from_token"`
	ToToken         string                  `json:"to_token"`
	CapAPT          decimal.Decimal         `json:"max_investment_apt"`
	Evaluated       int                     `json:"amounts_evaluated"`
	ProfitableCount int                     `json:"profitable_count"`
	Optimal         *candidatePayload       `json:"optimal,omitempty"`
	Reasoning       string                  `json:"reasoning"`
	Top             []candidatePayload      `json:"top_candidates,omitempty"`
	Recommendations []string                `json:"recommendations,omitempty"`
	Market          marketConditionsPayload `json:"market_conditions"`
}

func toOptimizationPayload(r domain.OptimizationReport) optimizationPayload {
	out := optimizationPayload{
		FromToken:       r.FromToken,
		ToToken:         r.ToToken,
		CapAPT:          r.CapAPT,
		Evaluated:       r.Evaluated,
		ProfitableCount: r.ProfitableCount,
		Reasoning:       r.Reasoning,
		Recommendations: r.Recommendations,
		Market:          toMarketConditionsPayload(r.Market),
	}
	if r.Optimal != nil {
		optimal := toCandidatePayload(*r.Optimal)
		out.Optimal = &optimal
	}
	for _, cand := range r.Top {
		out.Top = append(out.Top, toCandidatePayload(cand))
	}
	return out
}

type analysisPayload struct {
	Candidate candidatePayload        `json:"analysis"`
	Reasoning string                  `json:"reasoning"`
	Market    marketConditionsPayload `json:"market_conditions"`
}

type breakevenPayload struct {
	Found      bool                    `json:"found"`
	AmountAPT  *decimal.Decimal        `json:"breakeven_amount_apt,omitempty"`
	AmountUSD  *decimal.Decimal        `json:"breakeven_amount_usd,omitempty"`
	NetUSD     decimal.Decimal         `json:"net_at_last_probe_usd"`
	Iterations int                     `json:"iterations"`
	Market     marketConditionsPayload `json:"market_conditions"`
}

// marketMeta tags every computed response with the provenance of the market
// data it priced against.
type marketMeta struct {
	PriceSource string          `json:"price_source"`
	GasSource   string          `json:"gas_source"`
	APTPriceUSD decimal.Decimal `json:"apt_price_usd"`
	FetchedAt   time.Time       `json:"fetched_at"`
}

func toMarketMeta(s marketdomain.Snapshot, aptPrice decimal.Decimal) marketMeta {
	return marketMeta{
		PriceSource: string(s.PriceSource),
		GasSource:   string(s.GasSource),
		APTPriceUSD: aptPrice,
		FetchedAt:   s.FetchedAt,
	}
}

type investmentDetails struct {
	AmountAPT    *float64        `json:"amount_apt,omitempty"`
	AmountUSD    decimal.Decimal `json:"amount_usd"`
	APTPriceUsed decimal.Decimal `json:"apt_price_used"`
	FeesApplied  bool            `json:"dex_fees_applied"`
}

type tokenQuotePayload struct {
	PriceUSD     decimal.Decimal `json:"current_price"`
	MarketCapUSD decimal.Decimal `json:"market_cap,omitempty"`
	Volume24hUSD decimal.Decimal `json:"total_volume,omitempty"`
	Change24hPct decimal.Decimal `json:"price_change_percentage_24h,omitempty"`
}

type overviewPayload struct {
	Tokens        map[string]tokenQuotePayload `json:"tokens"`
	GasUnitPrice  int64                        `json:"gas_unit_price_octas"`
	PriceSource   string                       `json:"price_source"`
	GasSource     string                       `json:"gas_source"`
	FetchedAt     time.Time                    `json:"fetched_at"`
	FetchDuration string                       `json:"fetch_duration"`
}

func toOverviewPayload(s marketdomain.Snapshot) overviewPayload {
	tokens := make(map[string]tokenQuotePayload, len(s.Quotes))
	for token, quote := range s.Quotes {
		tokens[token] = tokenQuotePayload{
			PriceUSD:     quote.PriceUSD,
			MarketCapUSD: quote.MarketCapUSD,
			Volume24hUSD: quote.Volume24hUSD,
			Change24hPct: quote.Change24hPct,
		}
	}
	return overviewPayload{
		Tokens:        tokens,
		GasUnitPrice:  s.GasUnitPriceOctas,
		PriceSource:   string(s.PriceSource),
		GasSource:     string(s.GasSource),
		FetchedAt:     s.FetchedAt,
		FetchDuration: s.FetchDuration.String(),
	}
}
