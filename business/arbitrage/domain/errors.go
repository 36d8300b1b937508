package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InvalidPriceError reports a non-positive or missing token price.
type InvalidPriceError struct {
	Token string
	Price decimal.Decimal
}

func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("invalid price for %s: %s", e.Token, e.Price)
}

// ImpossibleRouteError reports a route that cannot produce a spread.
type ImpossibleRouteError struct {
	Route Route
}

func (e *ImpossibleRouteError) Error() string {
	return fmt.Sprintf("route %s@%s -> %s@%s cannot produce a spread",
		e.Route.FromPair, e.Route.FromDEX, e.Route.ToPair, e.Route.ToDEX)
}

// InvalidTradeSizeError reports a non-positive trade amount.
type InvalidTradeSizeError struct {
	AmountUSD decimal.Decimal
}

func (e *InvalidTradeSizeError) Error() string {
	return fmt.Sprintf("trade amount must be positive, got %s", e.AmountUSD)
}
