// Package asset describes the Aptos tokens this service trades and the
// conversion constants between on-chain units and human amounts.
package asset

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OctasPerAPT is the number of octas (the smallest APT unit) in one APT.
const OctasPerAPT int64 = 100_000_000

// DecimalOctasPerAPT is OctasPerAPT as a decimal for money math.
var DecimalOctasPerAPT = decimal.NewFromInt(OctasPerAPT)

// Token describes a coin on Aptos. The address is the Move coin type,
// e.g. 0x1::aptos_coin::AptosCoin.
type Token struct {
	Symbol      string
	Name        string
	Address     string
	Decimals    uint8
	Native      bool
	CoingeckoID string
}

// ID returns the lowercase symbol used as the token key across the service.
func (t Token) ID() string {
	return strings.ToLower(t.Symbol)
}

func (t Token) String() string {
	return fmt.Sprintf("%s (%s)", t.Symbol, t.Address)
}

// OctasToAPT converts an octas amount to whole APT.
func OctasToAPT(octas int64) decimal.Decimal {
	return decimal.NewFromInt(octas).Div(DecimalOctasPerAPT)
}

// Registry holds the supported tokens keyed by lowercase symbol.
type Registry struct {
	tokens map[string]Token
}

// NewRegistry creates a registry with the given tokens.
func NewRegistry(tokens ...Token) *Registry {
	r := &Registry{tokens: make(map[string]Token, len(tokens))}
	for _, t := range tokens {
		r.tokens[t.ID()] = t
	}
	return r
}

// Get returns the token for the given symbol (case-insensitive).
func (r *Registry) Get(symbol string) (Token, bool) {
	t, ok := r.tokens[strings.ToLower(symbol)]
	return t, ok
}

// IDs returns the lowercase symbols of all registered tokens.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.tokens))
	for id := range r.tokens {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of registered tokens.
func (r *Registry) Len() int {
	return len(r.tokens)
}
