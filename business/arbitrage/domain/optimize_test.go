package domain

import "testing"

func TestInvestmentLadder(t *testing.T) {
	t.Run("cap 100", func(t *testing.T) {
		got := InvestmentLadder(d("100"))
		want := []string{"1", "5", "10", "25", "50", "100"}
		if len(got) != len(want) {
			t.Fatalf("ladder length = %d, want %d", len(got), len(want))
		}
		for i, w := range want {
			if !got[i].Equal(d(w)) {
				t.Errorf("ladder[%d] = %s, want %s", i, got[i], w)
			}
		}
	})

	t.Run("cap below smallest rung", func(t *testing.T) {
		if got := InvestmentLadder(d("0.5")); len(got) != 0 {
			t.Errorf("ladder = %v, want empty", got)
		}
	})

	t.Run("ascending", func(t *testing.T) {
		got := InvestmentLadder(d("50000"))
		for i := 1; i < len(got); i++ {
			if !got[i].GreaterThan(got[i-1]) {
				t.Errorf("ladder not ascending at %d: %s <= %s", i, got[i], got[i-1])
			}
		}
	})
}

func TestTokenSpread(t *testing.T) {
	tests := []struct {
		from, to string
		want     string
	}{
		{"usdc", "usdt", "1.2"},
		{"usdt", "usdc", "1.1"},
		{"apt", "usdc", "0.9"},
		{"usdt", "apt", "0.9"},
		{"dai", "busd", "0.7"},
	}

	for _, tt := range tests {
		got := TokenSpread(tt.from, tt.to)
		if !got.Equal(d(tt.want)) {
			t.Errorf("TokenSpread(%s, %s) = %s, want %s", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestSizeDescriptor(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"50", "small"},
		{"100", "medium"},
		{"999", "medium"},
		{"1000", "large"},
		{"4999", "large"},
		{"5000", "very large"},
	}

	for _, tt := range tests {
		if got := SizeDescriptor(d(tt.amount)); got != tt.want {
			t.Errorf("SizeDescriptor(%s) = %s, want %s", tt.amount, got, tt.want)
		}
	}
}

func TestScoreCandidate(t *testing.T) {
	result := ProfitabilityResult{MarginPct: d("1.2"), Risk: RiskMedium}
	if got := ScoreCandidate(result); !got.Equal(d("0.6")) {
		t.Errorf("ScoreCandidate = %s, want 0.6", got)
	}
}
