package domain

import "github.com/shopspring/decimal"

// PriceSet maps lowercase token ids to their USD price.
type PriceSet map[string]decimal.Decimal

// SupportedTokens are the token ids every evaluation needs priced.
var SupportedTokens = []string{"apt", "usdc", "usdt"}

// Validate returns an InvalidPriceError for the first supported token whose
// price is missing or non-positive.
func (p PriceSet) Validate() error {
	for _, token := range SupportedTokens {
		price, ok := p[token]
		if !ok || !price.IsPositive() {
			return &InvalidPriceError{Token: token, Price: price}
		}
	}
	return nil
}

// APT returns the APT price.
func (p PriceSet) APT() decimal.Decimal { return p["apt"] }

// Fallback token prices used when no market data is available at all.
var FallbackPrices = PriceSet{
	"apt":  decimal.RequireFromString("12.45"),
	"usdc": decimal.RequireFromString("1.00"),
	"usdt": decimal.RequireFromString("0.999"),
}

// venuePriceFactors model how each venue's pricing deviates from mid.
var venuePriceFactors = map[string]decimal.Decimal{
	GenericDEXA:   decimal.RequireFromString("1.000"),
	GenericDEXB:   decimal.RequireFromString("1.000"),
	"liquidswap":  decimal.RequireFromString("1.000"),
	"pancakeswap": decimal.RequireFromString("1.002"),
	"thalaswap":   decimal.RequireFromString("0.998"),
	"hippo":       decimal.RequireFromString("1.001"),
}

// VenuePriceFactor returns the pricing factor for a venue, 1.0 when unknown.
func VenuePriceFactor(dex string) decimal.Decimal {
	if f, ok := venuePriceFactors[dex]; ok {
		return f
	}
	return decimal.NewFromInt(1)
}

// VenueSpread returns the spread percentage attributable to the two venues'
// pricing factors. Placeholder venues carry no venue spread.
func VenueSpread(fromDEX, toDEX string) decimal.Decimal {
	if IsGenericDEX(fromDEX) && IsGenericDEX(toDEX) {
		return decimal.Zero
	}
	return VenuePriceFactor(fromDEX).Sub(VenuePriceFactor(toDEX)).Abs().Mul(decimal.NewFromInt(100))
}

// Spread model constants.
var (
	hundred = decimal.NewFromInt(100)

	baseSpreadUSDCToUSDT = decimal.RequireFromString("0.6")
	baseSpreadUSDTToUSDC = decimal.RequireFromString("0.5")
	baseSpreadAPTViaUSDC = decimal.RequireFromString("0.3")
	baseSpreadAPTViaUSDT = decimal.RequireFromString("0.4")
	rateDiffWeight       = decimal.RequireFromString("0.1")
	stableRouteCap       = decimal.RequireFromString("3.0")
	aptRouteCap          = decimal.RequireFromString("2.0")
	minimalSpread        = decimal.RequireFromString("0.05")
	crossVenueBase       = decimal.RequireFromString("0.2")

	// MinimumSpreadNeeded is the smallest modeled spread a stable-to-stable
	// route starts from, reported in break-even market conditions.
	MinimumSpreadNeeded = decimal.RequireFromString("0.6")
)

// AssumedSpread estimates the spread percentage a route captures given
// current prices. It returns an InvalidPriceError when any supported token
// lacks a positive price and an ImpossibleRouteError when the route cannot
// produce a spread.
func AssumedSpread(route Route, prices PriceSet) (decimal.Decimal, error) {
	if err := prices.Validate(); err != nil {
		return decimal.Zero, err
	}
	if route.Impossible() {
		return decimal.Zero, &ImpossibleRouteError{Route: route}
	}

	venueSpread := VenueSpread(route.FromDEX, route.ToDEX)

	apt, usdc, usdt := prices["apt"], prices["usdc"], prices["usdt"]
	aptPerUSDC := apt.Div(usdc)
	aptPerUSDT := apt.Div(usdt)

	var spread decimal.Decimal
	switch {
	case route.FromPair == PairUSDCAPT && route.ToPair == PairUSDTAPT:
		rateDiff := aptPerUSDC.Sub(aptPerUSDT).Abs().Div(aptPerUSDC).Mul(hundred)
		spread = baseSpreadUSDCToUSDT.Add(rateDiffWeight.Mul(rateDiff)).Add(venueSpread)
		spread = decimal.Min(spread, stableRouteCap)

	case route.FromPair == PairUSDTAPT && route.ToPair == PairUSDCAPT:
		rateDiff := aptPerUSDT.Sub(aptPerUSDC).Abs().Div(aptPerUSDT).Mul(hundred)
		spread = baseSpreadUSDTToUSDC.Add(rateDiffWeight.Mul(rateDiff)).Add(venueSpread)
		spread = decimal.Min(spread, stableRouteCap)

	case route.FromPair == PairAPTUSDC && route.ToPair == PairAPTUSDT:
		stableDiff := usdc.Sub(usdt).Abs().Div(usdc).Mul(hundred)
		spread = baseSpreadAPTViaUSDC.Add(stableDiff).Add(venueSpread)
		spread = decimal.Min(spread, aptRouteCap)

	case route.FromPair == PairAPTUSDT && route.ToPair == PairAPTUSDC:
		stableDiff := usdt.Sub(usdc).Abs().Div(usdt).Mul(hundred)
		spread = baseSpreadAPTViaUSDT.Add(stableDiff).Add(venueSpread)
		spread = decimal.Min(spread, aptRouteCap)

	default:
		if venueSpread.IsZero() {
			spread = minimalSpread
		} else {
			spread = crossVenueBase.Add(venueSpread)
		}
	}

	return spread, nil
}
