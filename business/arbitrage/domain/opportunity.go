package domain

import "github.com/shopspring/decimal"

// Opportunity is one evaluated route with its verdict.
type Opportunity struct {
	Route   Route
	Charges ChargeBreakdown
	Result  ProfitabilityResult
}

// MaxReportedOpportunities bounds how many opportunities a report carries.
const MaxReportedOpportunities = 10

// OpportunityReport summarizes an enumeration run over all canonical pair
// combinations and venue pairs.
type OpportunityReport struct {
	AmountUSD        decimal.Decimal
	Venues           []string
	PairsChecked     int
	TotalFound       int
	ProfitableCount  int
	Top              []Opportunity
	BestMarginPct    decimal.Decimal
	AverageMarginPct decimal.Decimal
	RecommendedCount int
	Message          string
}
