// Package domain contains the deterministic arbitrage estimation model:
// routes, fee schedules, gas, slippage, spreads and profitability verdicts.
// Everything here is pure; prices and fees arrive as explicit arguments.
package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Pair identifies a trading pair as base_quote, e.g. "usdc_apt" is buying
// APT with USDC.
type Pair string

// Canonical pairs over the supported tokens.
const (
	PairUSDCAPT Pair = "usdc_apt"
	PairUSDTAPT Pair = "usdt_apt"
	PairAPTUSDC Pair = "apt_usdc"
	PairAPTUSDT Pair = "apt_usdt"
)

// CanonicalCombinations are the pair-direction combinations the enumerator
// explores, in a fixed order.
var CanonicalCombinations = [][2]Pair{
	{PairUSDCAPT, PairUSDTAPT},
	{PairUSDTAPT, PairUSDCAPT},
	{PairAPTUSDC, PairAPTUSDT},
	{PairAPTUSDT, PairAPTUSDC},
}

// Tokens returns the token ids of the pair in order.
func (p Pair) Tokens() []string {
	return strings.Split(string(p), "_")
}

// sameTokenSet reports whether two pairs involve the identical unordered
// token set.
func sameTokenSet(a, b Pair) bool {
	at, bt := a.Tokens(), b.Tokens()
	if len(at) != len(bt) {
		return false
	}
	set := make(map[string]int, len(at))
	for _, t := range at {
		set[t]++
	}
	for _, t := range bt {
		set[t]--
	}
	for _, n := range set {
		if n != 0 {
			return false
		}
	}
	return true
}

// Generic placeholder venue ids used when a fee schedule names no real DEX.
const (
	GenericDEXA = "dex_a"
	GenericDEXB = "dex_b"
)

// IsGenericDEX reports whether the id is a placeholder rather than a venue.
func IsGenericDEX(id string) bool {
	return id == GenericDEXA || id == GenericDEXB
}

// Route is one candidate arbitrage: trade on FromDEX via FromPair, then
// back on ToDEX via ToPair, with AmountUSD committed.
type Route struct {
	FromPair  Pair
	ToPair    Pair
	FromDEX   string
	ToDEX     string
	AmountUSD decimal.Decimal
}

// RoundTrip reports whether the two legs move the same unordered token set,
// meaning the route only makes sense across different venues.
func (r Route) RoundTrip() bool {
	return sameTokenSet(r.FromPair, r.ToPair)
}

// Impossible reports whether the route cannot produce a spread: a round trip
// on the same venue, or on placeholder venues only.
func (r Route) Impossible() bool {
	if !r.RoundTrip() {
		return false
	}
	if r.FromDEX == r.ToDEX {
		return true
	}
	return IsGenericDEX(r.FromDEX) && IsGenericDEX(r.ToDEX)
}
