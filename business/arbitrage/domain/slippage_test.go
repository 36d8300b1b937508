package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSlippageStandard(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"100", "0.02"},
		{"999.99", "0.02"},
		{"1000", "0.05"}, // band ceilings are exclusive
		{"4999", "0.05"},
		{"5000", "0.15"},
		{"19999", "0.15"},
		{"20000", "0.30"},
		{"100000", "0.30"},
	}

	for _, tt := range tests {
		got := SlippageStandard.Percent(d(tt.amount))
		if !got.Equal(d(tt.want)) {
			t.Errorf("SlippageStandard.Percent(%s) = %s, want %s", tt.amount, got, tt.want)
		}
	}
}

func TestSlippageFine(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"500", "0.02"},
		{"1000", "0.05"},
		{"5000", "0.15"},
		{"24999", "0.15"},
		{"25000", "0.35"},
		{"99999", "0.35"},
		{"100000", "0.75"},
		{"500000", "0.75"},
	}

	for _, tt := range tests {
		got := SlippageFine.Percent(d(tt.amount))
		if !got.Equal(d(tt.want)) {
			t.Errorf("SlippageFine.Percent(%s) = %s, want %s", tt.amount, got, tt.want)
		}
	}
}

func TestSlippageMonotonic(t *testing.T) {
	amounts := []string{"1", "500", "1000", "3000", "5000", "15000", "25000", "50000", "100000", "200000"}

	for _, policy := range []SlippagePolicy{SlippageStandard, SlippageFine} {
		prev := decimal.Zero
		for _, a := range amounts {
			got := policy.Percent(d(a))
			if got.LessThan(prev) {
				t.Errorf("%s policy not monotonic at %s: %s < %s", policy.Name(), a, got, prev)
			}
			prev = got
		}
	}
}
