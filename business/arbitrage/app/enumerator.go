package app

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/fd1az/aptos-arbitrage/business/arbitrage/domain"
	"github.com/fd1az/aptos-arbitrage/internal/logger"
)

// NoVenuesMessage is returned when the fee schedule names no venues to
// compare.
const NoVenuesMessage = "No DEXs provided in input. Add venue entries to dex_fees to search for opportunities."

// SearchInput carries the market view an enumeration runs against.
type SearchInput struct {
	AmountUSD       decimal.Decimal
	Fees            domain.FeeSchedule
	GasUnitPriceOct int64
	GasSource       string
	Prices          domain.PriceSet
}

// Enumerator sweeps every canonical pair combination across every ordered
// venue pair and collects the profitable routes.
type Enumerator struct {
	eval Evaluator
	log  logger.LoggerInterface
}

// NewEnumerator creates an enumerator.
func NewEnumerator(log logger.LoggerInterface) Enumerator {
	return Enumerator{log: log}
}

// Find evaluates all candidate routes and reports the best ones. An empty
// venue set is not an error; the report carries a guidance message instead.
func (en Enumerator) Find(ctx context.Context, in SearchInput) (domain.OpportunityReport, error) {
	if !in.AmountUSD.IsPositive() {
		return domain.OpportunityReport{}, &domain.InvalidTradeSizeError{AmountUSD: in.AmountUSD}
	}
	if err := in.Prices.Validate(); err != nil {
		return domain.OpportunityReport{}, err
	}

	venues := in.Fees.Venues()
	report := domain.OpportunityReport{
		AmountUSD: in.AmountUSD,
		Venues:    venues,
	}
	if len(venues) < 1 {
		report.Message = NoVenuesMessage
		return report, nil
	}

	report.PairsChecked = len(domain.CanonicalCombinations) * len(venues) * (len(venues) - 1)

	var profitable []domain.Opportunity
	for _, combo := range domain.CanonicalCombinations {
		for _, fromDEX := range venues {
			for _, toDEX := range venues {
				if fromDEX == toDEX {
					continue
				}

				route := domain.Route{
					FromPair:  combo[0],
					ToPair:    combo[1],
					FromDEX:   fromDEX,
					ToDEX:     toDEX,
					AmountUSD: in.AmountUSD,
				}
				ev, err := en.eval.Evaluate(ChargeInput{
					Route:           route,
					Fees:            in.Fees,
					GasUnitPriceOct: in.GasUnitPriceOct,
					GasSource:       in.GasSource,
					Prices:          in.Prices,
				})
				if err != nil {
					if en.log != nil {
						en.log.Debug(ctx, "route skipped",
							"from_pair", route.FromPair, "to_pair", route.ToPair,
							"from_dex", fromDEX, "to_dex", toDEX, "error", err)
					}
					continue
				}

				report.TotalFound++
				if ev.Result.IsProfitable {
					profitable = append(profitable, domain.Opportunity{
						Route:   route,
						Charges: ev.Charges,
						Result:  ev.Result,
					})
				}
			}
		}
	}

	report.ProfitableCount = len(profitable)
	sort.SliceStable(profitable, func(i, j int) bool {
		return profitable[i].Result.MarginPct.GreaterThan(profitable[j].Result.MarginPct)
	})
	if len(profitable) > domain.MaxReportedOpportunities {
		profitable = profitable[:domain.MaxReportedOpportunities]
	}
	report.Top = profitable

	if len(report.Top) > 0 {
		report.BestMarginPct = report.Top[0].Result.MarginPct

		sum := decimal.Zero
		for _, opp := range report.Top {
			sum = sum.Add(opp.Result.MarginPct)
			if opp.Result.Recommendation == domain.RecommendExecute {
				report.RecommendedCount++
			}
		}
		report.AverageMarginPct = sum.Div(decimal.NewFromInt(int64(len(report.Top))))
	}

	return report, nil
}
