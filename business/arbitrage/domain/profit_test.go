package domain

import "testing"

func TestRiskPolicyAssess(t *testing.T) {
	tests := []struct {
		name   string
		margin string
		amount string
		want   RiskTier
	}{
		{"high margin small trade", "1.5", "5000", RiskLow},
		{"margin exactly 1.0 falls through", "1.0", "5000", RiskMedium},
		{"amount at 10000 excludes low", "1.5", "10000", RiskMedium},
		{"medium band", "0.8", "20000", RiskMedium},
		{"margin exactly 0.5 falls through", "0.5", "1000", RiskHigh},
		{"amount at 50000 excludes medium", "0.8", "50000", RiskHigh},
		{"high band", "0.3", "100000", RiskHigh},
		{"margin exactly 0.2 falls through", "0.2", "100", RiskVeryHigh},
		{"negative margin", "-1", "100", RiskVeryHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluatorRiskPolicy.Assess(d(tt.margin), d(tt.amount))
			if got != tt.want {
				t.Errorf("Assess(%s, %s) = %s, want %s", tt.margin, tt.amount, got, tt.want)
			}
			// The optimizer policy matches the evaluator policy today.
			if opt := OptimizerRiskPolicy.Assess(d(tt.margin), d(tt.amount)); opt != got {
				t.Errorf("optimizer policy diverged: %s vs %s", opt, got)
			}
		})
	}
}

func TestAnalysisRiskPolicy(t *testing.T) {
	tests := []struct {
		margin string
		amount string
		want   RiskTier
	}{
		{"2.5", "1000", RiskLow},
		{"2.5", "5000", RiskMedium},
		{"1.5", "10000", RiskMedium},
		{"0.8", "50000", RiskHigh},
		{"0.4", "100", RiskVeryHigh},
	}

	for _, tt := range tests {
		got := AnalysisRiskPolicy.Assess(d(tt.margin), d(tt.amount))
		if got != tt.want {
			t.Errorf("Assess(%s, %s) = %s, want %s", tt.margin, tt.amount, got, tt.want)
		}
	}
}

func TestNewProfitabilityResult(t *testing.T) {
	tests := []struct {
		name        string
		spread      string
		amount      string
		totalCost   string
		wantGross   string
		wantNet     string
		wantMargin  string
		profitable  bool
		wantVerdict Recommendation
	}{
		{
			name:        "profitable above threshold executes",
			spread:      "1.2",
			amount:      "1000",
			totalCost:   "5",
			wantGross:   "12",
			wantNet:     "7",
			wantMargin:  "0.7",
			profitable:  true,
			wantVerdict: RecommendExecute,
		},
		{
			name:        "profitable at threshold skips",
			spread:      "1.0",
			amount:      "1000",
			totalCost:   "5",
			wantGross:   "10",
			wantNet:     "5",
			wantMargin:  "0.5",
			profitable:  true,
			wantVerdict: RecommendSkip,
		},
		{
			name:        "unprofitable skips",
			spread:      "0.3",
			amount:      "1000",
			totalCost:   "5",
			wantGross:   "3",
			wantNet:     "-2",
			wantMargin:  "-0.2",
			profitable:  false,
			wantVerdict: RecommendSkip,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewProfitabilityResult(d(tt.spread), d(tt.amount), d(tt.totalCost), EvaluatorRiskPolicy)
			if !got.GrossUSD.Equal(d(tt.wantGross)) {
				t.Errorf("GrossUSD = %s, want %s", got.GrossUSD, tt.wantGross)
			}
			if !got.NetUSD.Equal(d(tt.wantNet)) {
				t.Errorf("NetUSD = %s, want %s", got.NetUSD, tt.wantNet)
			}
			if !got.MarginPct.Equal(d(tt.wantMargin)) {
				t.Errorf("MarginPct = %s, want %s", got.MarginPct, tt.wantMargin)
			}
			if got.IsProfitable != tt.profitable {
				t.Errorf("IsProfitable = %v, want %v", got.IsProfitable, tt.profitable)
			}
			if got.Recommendation != tt.wantVerdict {
				t.Errorf("Recommendation = %s, want %s", got.Recommendation, tt.wantVerdict)
			}
		})
	}
}
