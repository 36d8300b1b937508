package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Leg names the side of a route a fee applies to. Fee schedules may carry
// per-leg entries under these keys.
type Leg string

const (
	LegFrom Leg = "from_dex"
	LegTo   Leg = "to_dex"
)

// Generic schedule keys that do not name a venue.
const (
	KeySmartContract = "Smart Contract"
	KeyDefault       = "default"
	KeyFee           = "fee"
)

// DefaultFeePercent is the fallback swap fee when a schedule names nothing
// applicable.
var DefaultFeePercent = decimal.RequireFromString("0.25")

// FeeSchedule maps venue ids (or generic keys) to swap fee percentages.
type FeeSchedule map[string]decimal.Decimal

func isGenericKey(key string) bool {
	switch key {
	case KeySmartContract, KeyDefault, KeyFee, string(LegFrom), string(LegTo):
		return true
	}
	return false
}

// Resolve returns the fee percentage for one leg of a route. Precedence:
// exact venue id, "Smart Contract", "default", "fee", the leg key, the sole
// entry of a single-entry schedule, and finally DefaultFeePercent. An empty
// schedule charges nothing.
func (s FeeSchedule) Resolve(dex string, leg Leg) decimal.Decimal {
	if len(s) == 0 {
		return decimal.Zero
	}

	for _, key := range []string{dex, KeySmartContract, KeyDefault, KeyFee, string(leg)} {
		if fee, ok := s[key]; ok {
			return fee
		}
	}

	if len(s) == 1 {
		for _, fee := range s {
			return fee
		}
	}
	return DefaultFeePercent
}

// Venues returns the venue ids usable for enumeration: every non-generic
// key, sorted. A schedule that only carries "Smart Contract" yields the
// generic placeholder venues so enumeration still has two sides to compare.
func (s FeeSchedule) Venues() []string {
	venues := make([]string, 0, len(s))
	for key := range s {
		if !isGenericKey(key) {
			venues = append(venues, key)
		}
	}
	sort.Strings(venues)

	if len(venues) == 0 {
		if _, ok := s[KeySmartContract]; ok {
			return []string{GenericDEXA, GenericDEXB}
		}
	}
	return venues
}
