package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	arbapp "github.com/fd1az/aptos-arbitrage/business/arbitrage/app"
	marketapp "github.com/fd1az/aptos-arbitrage/business/market/app"
	narrapp "github.com/fd1az/aptos-arbitrage/business/narrative/app"
	"github.com/fd1az/aptos-arbitrage/internal/config"
)

func testHandler() *Handler {
	cfg := &config.Config{
		Arbitrage: config.ArbitrageConfig{
			DefaultTradeAmountUSD: 1000,
			MaxInvestmentAPT:      50000,
		},
	}
	// No providers: every snapshot is the hard-coded fallback, which keeps
	// the assertions deterministic.
	market := marketapp.NewMarketService(nil, nil, 50*time.Millisecond, nil)
	arb := arbapp.NewService(nil, 0)
	narrator := narrapp.NewNarrator("", "gpt-4o-mini", nil)
	return NewHandler(cfg, nil, "test", market, arb, narrator)
}

func postJSON(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRootMeta(t *testing.T) {
	routes := testHandler().Routes()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var meta struct {
		Name            string   `json:"name"`
		SupportedTokens []string `json:"supported_tokens"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &meta); err != nil {
		t.Fatalf("decoding meta: %v", err)
	}
	if meta.Name != "Aptos Arbitrage API" || len(meta.SupportedTokens) != 3 {
		t.Errorf("unexpected meta: %+v", meta)
	}
}

func TestMarketOverviewFallback(t *testing.T) {
	routes := testHandler().Routes()

	req := httptest.NewRequest(http.MethodGet, "/market/overview", nil)
	rec := httptest.NewRecorder()
	routes.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var overview struct {
		PriceSource  string `json:"price_source"`
		GasUnitPrice int64  `json:"gas_unit_price_octas"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &overview); err != nil {
		t.Fatalf("decoding overview: %v", err)
	}
	if overview.PriceSource != "fallback" {
		t.Errorf("price_source = %s, want fallback", overview.PriceSource)
	}
	if overview.GasUnitPrice != 100 {
		t.Errorf("gas_unit_price_octas = %d, want 100", overview.GasUnitPrice)
	}
}

func TestUnknownActionRejected(t *testing.T) {
	routes := testHandler().Routes()

	rec := postJSON(t, routes, "/arbitrage", `{"action":"teleport"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "UNKNOWN_ACTION") || !strings.Contains(body, "teleport") {
		t.Errorf("body does not name the offending action: %s", body)
	}
}

func TestGetChargesBreakdown(t *testing.T) {
	routes := testHandler().Routes()

	rec := postJSON(t, routes, "/arbitrage/getcharges", `{
		"from_token": "usdc",
		"to_token": "apt",
		"trade_amount": 1000,
		"apt_price": "10",
		"dex_fees": {"liquidswap": 0.3, "pancakeswap": 0.25}
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Route struct {
			FromDEX   string          `json:"from_dex"`
			ToDEX     string          `json:"to_dex"`
			AmountUSD decimal.Decimal `json:"trade_amount_usd"`
		} `json:"route"`
		Charges struct {
			TradingFeesUSD decimal.Decimal `json:"total_trading_fees_usd"`
			TotalUSD       decimal.Decimal `json:"total_fees_usd"`
			TotalPct       decimal.Decimal `json:"cost_percentage"`
			Gas            struct {
				TotalAPT decimal.Decimal `json:"total_gas_cost_apt"`
				TotalUSD decimal.Decimal `json:"total_gas_cost_usd"`
			} `json:"gas_fees"`
		} `json:"charges"`
		Market struct {
			PriceSource string `json:"price_source"`
		} `json:"market"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}

	// Venues come from the schedule in sorted order.
	if resp.Route.FromDEX != "liquidswap" || resp.Route.ToDEX != "pancakeswap" {
		t.Errorf("venues = %s/%s, want liquidswap/pancakeswap", resp.Route.FromDEX, resp.Route.ToDEX)
	}
	if !resp.Route.AmountUSD.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("trade_amount_usd = %s, want 1000", resp.Route.AmountUSD)
	}
	// 0.3% + 0.25% of $1000, gas 0.002 APT at the $10 override, 0.05% slippage.
	if !resp.Charges.TradingFeesUSD.Equal(decimal.RequireFromString("5.5")) {
		t.Errorf("trading fees = %s, want 5.5", resp.Charges.TradingFeesUSD)
	}
	if !resp.Charges.Gas.TotalAPT.Equal(decimal.RequireFromString("0.002")) {
		t.Errorf("gas apt = %s, want 0.002", resp.Charges.Gas.TotalAPT)
	}
	if !resp.Charges.Gas.TotalUSD.Equal(decimal.RequireFromString("0.02")) {
		t.Errorf("gas usd = %s, want 0.02", resp.Charges.Gas.TotalUSD)
	}
	if !resp.Charges.TotalUSD.Equal(decimal.RequireFromString("6.02")) {
		t.Errorf("total = %s, want 6.02", resp.Charges.TotalUSD)
	}
	if !resp.Charges.TotalPct.Equal(decimal.RequireFromString("0.602")) {
		t.Errorf("cost pct = %s, want 0.602", resp.Charges.TotalPct)
	}
	if resp.Market.PriceSource != "fallback" {
		t.Errorf("price_source = %s, want fallback", resp.Market.PriceSource)
	}
}

func TestTradeAmountPriority(t *testing.T) {
	routes := testHandler().Routes()

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			"trade_amount wins",
			`{"from_token":"usdc","to_token":"apt","apt_price":"10","trade_amount":500,"amount_apt":100,"amount_usd":250}`,
			"500",
		},
		{
			"amount_apt converts at apt price",
			`{"from_token":"usdc","to_token":"apt","apt_price":"10","amount_apt":100,"amount_usd":250}`,
			"1000",
		},
		{
			"amount_usd used directly",
			`{"from_token":"usdc","to_token":"apt","apt_price":"10","amount_usd":250}`,
			"250",
		},
		{
			"default applies",
			`{"from_token":"usdc","to_token":"apt","apt_price":"10"}`,
			"1000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, routes, "/arbitrage/getcharges", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
			}
			var resp struct {
				Route struct {
					AmountUSD decimal.Decimal `json:"trade_amount_usd"`
				} `json:"route"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if !resp.Route.AmountUSD.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("trade_amount_usd = %s, want %s", resp.Route.AmountUSD, tt.want)
			}
		})
	}
}

func TestIsProfitableChecksAlternatives(t *testing.T) {
	routes := testHandler().Routes()

	rec := postJSON(t, routes, "/arbitrage/isprofitable", `{"from_token":"usdc"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		AlternativesChecked int `json:"alternatives_checked"`
		OtherOptions        []struct {
			ToToken string `json:"to_token"`
		} `json:"other_options"`
		AllOptions []struct {
			ToToken string `json:"to_token"`
		} `json:"all_options"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.AlternativesChecked != 2 {
		t.Errorf("alternatives_checked = %d, want 2", resp.AlternativesChecked)
	}
	if len(resp.OtherOptions)+len(resp.AllOptions)+1 < 2 {
		t.Errorf("response carries no alternative detail: %s", rec.Body.String())
	}
}

func TestUnsupportedTokenRejected(t *testing.T) {
	routes := testHandler().Routes()

	rec := postJSON(t, routes, "/arbitrage/isprofitable", `{"from_token":"doge"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "doge") {
		t.Errorf("body does not name the token: %s", rec.Body.String())
	}
}

func TestOptimizeInvestmentEndpoint(t *testing.T) {
	routes := testHandler().Routes()

	rec := postJSON(t, routes, "/arbitrage/optimize-investment", `{
		"from_token": "usdc",
		"to_token": "usdt",
		"max_investment_apt": 100
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Optimization struct {
			Evaluated       int `json:"amounts_evaluated"`
			ProfitableCount int `json:"profitable_count"`
			Optimal         *struct {
				AmountAPT decimal.Decimal `json:"amount_apt"`
			} `json:"optimal"`
		} `json:"optimization"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Optimization.Evaluated != 6 {
		t.Errorf("amounts_evaluated = %d, want 6", resp.Optimization.Evaluated)
	}
	if resp.Optimization.Optimal == nil {
		t.Fatal("expected an optimal candidate")
	}
	if !resp.Optimization.Optimal.AmountAPT.Equal(decimal.NewFromInt(50)) {
		t.Errorf("optimal amount = %s, want 50", resp.Optimization.Optimal.AmountAPT)
	}
}

func TestBreakevenEndpoint(t *testing.T) {
	routes := testHandler().Routes()

	rec := postJSON(t, routes, "/arbitrage/breakeven", `{"from_token":"usdc","to_token":"usdt"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Breakeven struct {
			Found      bool `json:"found"`
			Iterations int  `json:"iterations"`
		} `json:"breakeven"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Breakeven.Iterations == 0 {
		t.Error("breakeven ran zero iterations")
	}
}

func TestDispatchMatchesDedicatedRoute(t *testing.T) {
	routes := testHandler().Routes()

	body := `{"action":"getcharges","from_token":"usdc","to_token":"apt","apt_price":"10","trade_amount":1000}`
	direct := postJSON(t, routes, "/arbitrage/getcharges",
		`{"from_token":"usdc","to_token":"apt","apt_price":"10","trade_amount":1000}`)
	dispatched := postJSON(t, routes, "/arbitrage", body)

	if dispatched.Code != http.StatusOK {
		t.Fatalf("dispatch status = %d, body = %s", dispatched.Code, dispatched.Body.String())
	}

	// The market meta carries fetch timestamps, so compare the computed
	// sections only.
	type computed struct {
		Route   json.RawMessage `json:"route"`
		Charges json.RawMessage `json:"charges"`
	}
	var fromDirect, fromDispatch computed
	if err := json.Unmarshal(direct.Body.Bytes(), &fromDirect); err != nil {
		t.Fatalf("decoding direct response: %v", err)
	}
	if err := json.Unmarshal(dispatched.Body.Bytes(), &fromDispatch); err != nil {
		t.Fatalf("decoding dispatched response: %v", err)
	}
	if string(fromDirect.Route) != string(fromDispatch.Route) {
		t.Errorf("route differs:\n%s\n%s", fromDirect.Route, fromDispatch.Route)
	}
	if string(fromDirect.Charges) != string(fromDispatch.Charges) {
		t.Errorf("charges differ:\n%s\n%s", fromDirect.Charges, fromDispatch.Charges)
	}
}
