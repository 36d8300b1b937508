package domain

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestFeeScheduleResolve(t *testing.T) {
	tests := []struct {
		name     string
		schedule FeeSchedule
		dex      string
		leg      Leg
		want     decimal.Decimal
	}{
		{
			name:     "empty schedule charges nothing",
			schedule: FeeSchedule{},
			dex:      "pancakeswap",
			leg:      LegFrom,
			want:     decimal.Zero,
		},
		{
			name:     "exact venue id wins",
			schedule: FeeSchedule{"pancakeswap": d("0.25"), "default": d("0.10")},
			dex:      "pancakeswap",
			leg:      LegFrom,
			want:     d("0.25"),
		},
		{
			name:     "smart contract applies to both legs",
			schedule: FeeSchedule{KeySmartContract: d("0.30")},
			dex:      "liquidswap",
			leg:      LegTo,
			want:     d("0.30"),
		},
		{
			name:     "default key before fee key",
			schedule: FeeSchedule{"default": d("0.15"), "fee": d("0.40")},
			dex:      "unknown",
			leg:      LegFrom,
			want:     d("0.15"),
		},
		{
			name:     "fee key",
			schedule: FeeSchedule{"fee": d("0.40"), "other_dex": d("0.10"), "another": d("0.20")},
			dex:      "unknown",
			leg:      LegFrom,
			want:     d("0.40"),
		},
		{
			name:     "leg key",
			schedule: FeeSchedule{"from_dex": d("0.11"), "to_dex": d("0.22"), "x": d("1"), "y": d("2")},
			dex:      "unknown",
			leg:      LegTo,
			want:     d("0.22"),
		},
		{
			name:     "single entry value used for any venue",
			schedule: FeeSchedule{"somedex": d("0.18")},
			dex:      "otherdex",
			leg:      LegFrom,
			want:     d("0.18"),
		},
		{
			name:     "hard default for unknown venue",
			schedule: FeeSchedule{"a": d("0.1"), "b": d("0.2")},
			dex:      "mysterydex",
			leg:      LegFrom,
			want:     d("0.25"),
		},
		{
			name:     "named venue absent from the schedule gets the hard default",
			schedule: FeeSchedule{"a": d("0.1"), "b": d("0.2")},
			dex:      "thalaswap",
			leg:      LegFrom,
			want:     d("0.25"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.schedule.Resolve(tt.dex, tt.leg)
			if !got.Equal(tt.want) {
				t.Errorf("Resolve(%q, %q) = %s, want %s", tt.dex, tt.leg, got, tt.want)
			}
		})
	}
}

func TestFeeScheduleVenues(t *testing.T) {
	tests := []struct {
		name     string
		schedule FeeSchedule
		want     []string
	}{
		{
			name:     "named venues sorted",
			schedule: FeeSchedule{"pancakeswap": d("0.25"), "liquidswap": d("0.30"), "default": d("0.1")},
			want:     []string{"liquidswap", "pancakeswap"},
		},
		{
			name:     "smart contract only yields placeholders",
			schedule: FeeSchedule{KeySmartContract: d("0.30")},
			want:     []string{GenericDEXA, GenericDEXB},
		},
		{
			name:     "generic keys excluded",
			schedule: FeeSchedule{"default": d("0.1"), "fee": d("0.2"), "from_dex": d("0.3"), "to_dex": d("0.4")},
			want:     []string{},
		},
		{
			name:     "empty schedule",
			schedule: FeeSchedule{},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.schedule.Venues()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Venues() = %v, want %v", got, tt.want)
			}
		})
	}
}
