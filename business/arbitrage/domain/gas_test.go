package domain

import "testing"

func TestNewGasCost(t *testing.T) {
	aptPrice := d("12.45")

	tests := []struct {
		name       string
		op         GasOp
		unitPrice  int64
		operations int64
		wantAPT    string
		wantUSD    string
	}{
		{
			// 1000 units x 2 ops x 100 octas = 200000 octas = 0.002 APT
			name:       "two swaps at fallback price",
			op:         OpSwap,
			unitPrice:  100,
			operations: 2,
			wantAPT:    "0.002",
			wantUSD:    "0.0249",
		},
		{
			name:       "single swap",
			op:         OpSwap,
			unitPrice:  100,
			operations: 1,
			wantAPT:    "0.001",
			wantUSD:    "0.01245",
		},
		{
			name:       "add liquidity uses larger unit budget",
			op:         OpAddLiquidity,
			unitPrice:  100,
			operations: 1,
			wantAPT:    "0.002",
			wantUSD:    "0.0249",
		},
		{
			name:       "cost scales linearly with unit price",
			op:         OpSwap,
			unitPrice:  200,
			operations: 2,
			wantAPT:    "0.004",
			wantUSD:    "0.0498",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewGasCost(tt.op, tt.unitPrice, tt.operations, aptPrice)
			if !got.TotalAPT.Equal(d(tt.wantAPT)) {
				t.Errorf("TotalAPT = %s, want %s", got.TotalAPT, tt.wantAPT)
			}
			if !got.TotalUSD.Equal(d(tt.wantUSD)) {
				t.Errorf("TotalUSD = %s, want %s", got.TotalUSD, tt.wantUSD)
			}
			if got.UnitsPerOp != GasUnits[tt.op] {
				t.Errorf("UnitsPerOp = %d, want %d", got.UnitsPerOp, GasUnits[tt.op])
			}
		})
	}
}

func TestFlatArbitrageGasAPT(t *testing.T) {
	if got := FlatArbitrageGasAPT(); !got.Equal(d("0.002")) {
		t.Errorf("FlatArbitrageGasAPT() = %s, want 0.002", got)
	}
}
