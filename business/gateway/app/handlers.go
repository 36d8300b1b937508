// Package app implements the HTTP gateway: request parsing, route handlers
// and response shaping over the arbitrage and market services.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	arbapp "github.com/fd1az/aptos-arbitrage/business/arbitrage/app"
	"github.com/fd1az/aptos-arbitrage/business/arbitrage/domain"
	marketapp "github.com/fd1az/aptos-arbitrage/business/market/app"
	marketdomain "github.com/fd1az/aptos-arbitrage/business/market/domain"
	narrapp "github.com/fd1az/aptos-arbitrage/business/narrative/app"
	"github.com/fd1az/aptos-arbitrage/internal/apm"
	"github.com/fd1az/aptos-arbitrage/internal/apperror"
	"github.com/fd1az/aptos-arbitrage/internal/config"
	"github.com/fd1az/aptos-arbitrage/internal/logger"
)

// Handler serves the public API.
type Handler struct {
	cfg      *config.Config
	log      logger.LoggerInterface
	version  string
	market   *marketapp.MarketService
	arb      *arbapp.Service
	narrator *narrapp.Narrator
}

// NewHandler wires the gateway over its collaborating services. narrator may
// be nil.
func NewHandler(cfg *config.Config, log logger.LoggerInterface, version string,
	market *marketapp.MarketService, arb *arbapp.Service, narrator *narrapp.Narrator) *Handler {
	return &Handler{
		cfg:      cfg,
		log:      log,
		version:  version,
		market:   market,
		arb:      arb,
		narrator: narrator,
	}
}

// Routes builds the gateway's HTTP handler.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.handleRoot)
	mux.HandleFunc("GET /market/overview", h.handleOverview)
	mux.HandleFunc("POST /arbitrage/getcharges", h.handleGetCharges)
	mux.HandleFunc("POST /arbitrage/isprofitable", h.handleIsProfitable)
	mux.HandleFunc("POST /arbitrage/possibilities", h.handlePossibilities)
	mux.HandleFunc("POST /arbitrage/optimize-investment", h.handleOptimize)
	mux.HandleFunc("POST /arbitrage/analyze-amount", h.handleAnalyzeAmount)
	mux.HandleFunc("POST /arbitrage/breakeven", h.handleBreakeven)
	mux.HandleFunc("POST /arbitrage", h.handleDispatch)
	return corsMiddleware(tracingMiddleware(mux))
}

// tracingMiddleware opens a span per request. Spans are no-ops until a trace
// provider is installed.
func tracingMiddleware(next http.Handler) http.Handler {
	tracer := apm.NewTracer("gateway")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.StartSpanFromContext(r.Context(), "gateway.request",
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.path", r.URL.Path),
			),
		)
		defer span.End()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// corsMiddleware allows browser clients from any origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) handleRoot(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{
		"name":             "Aptos Arbitrage API",
		"version":          h.version,
		"ecosystem":        "aptos",
		"supported_tokens": []string{"APT", "USDC", "USDT"},
		"endpoints": []string{
			"GET /market/overview",
			"POST /arbitrage/getcharges",
			"POST /arbitrage/isprofitable",
			"POST /arbitrage/possibilities",
			"POST /arbitrage/optimize-investment",
			"POST /arbitrage/analyze-amount",
			"POST /arbitrage/breakeven",
		},
		"behavior":          "Fetches live market data first, falls back to cached then hard-coded values.",
		"narrative_enabled": h.narrator.Enabled(),
	})
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	snap := h.market.Snapshot(r.Context())
	h.writeJSON(w, http.StatusOK, toOverviewPayload(snap))
}

// decode parses the request body. An empty body is valid; every field has a
// default.
func (h *Handler) decode(r *http.Request, req *ArbitrageRequest) error {
	err := json.NewDecoder(r.Body).Decode(req)
	if err != nil && !errors.Is(err, io.EOF) {
		return apperror.Validation(apperror.CodeInvalidFormat, "request body is not valid JSON")
	}
	return nil
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && h.log != nil {
		h.log.Error(context.Background(), "response encoding failed", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := arbapp.AsAppError(err)
	if h.log != nil {
		h.log.Warn(r.Context(), "request failed", "path", r.URL.Path, "code", appErr.Code)
	}
	h.writeJSON(w, appErr.StatusCode, appErr.ToResponse())
}

// supportedToken rejects tokens outside the priced set.
func supportedToken(token string) error {
	for _, t := range domain.SupportedTokens {
		if token == t {
			return nil
		}
	}
	return apperror.Validation(apperror.CodeUnsupportedPair,
		fmt.Sprintf("unsupported token: %q", token))
}

// pairsFor builds the two legs of a route between tokens. Non-APT pairs
// route through APT.
func pairsFor(fromToken, toToken string) (domain.Pair, domain.Pair) {
	switch {
	case fromToken == "apt":
		return domain.Pair("apt_" + toToken), domain.Pair(toToken + "_apt")
	case toToken == "apt":
		return domain.Pair(fromToken + "_apt"), domain.Pair("apt_" + fromToken)
	default:
		return domain.Pair(fromToken + "_apt"), domain.Pair("apt_" + toToken)
	}
}

// routeVenues picks the venues a single-route request runs on: the first two
// schedule venues, placeholders when the schedule names fewer.
func routeVenues(fees domain.FeeSchedule) (fromDEX, toDEX string) {
	fromDEX, toDEX = domain.GenericDEXA, domain.GenericDEXB
	venues := fees.Venues()
	if len(venues) > 0 {
		fromDEX = venues[0]
	}
	if len(venues) > 1 {
		toDEX = venues[1]
	}
	return fromDEX, toDEX
}

// marketView resolves the prices and gas view a request evaluates against.
func (h *Handler) marketView(r *http.Request, req *ArbitrageRequest) (marketdomain.Snapshot, domain.PriceSet) {
	snap := h.market.Snapshot(r.Context())
	return snap, req.EffectivePrices(snap.PriceSet())
}

type chargesResponse struct {
	Route             routePayload      `json:"route"`
	Charges           chargesPayload    `json:"charges"`
	Market            marketMeta        `json:"market"`
	InvestmentDetails investmentDetails `json:"investment_details"`
}

func (h *Handler) handleGetCharges(w http.ResponseWriter, r *http.Request) {
	var req ArbitrageRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.getCharges(w, r, req)
}

func (h *Handler) getCharges(w http.ResponseWriter, r *http.Request, req ArbitrageRequest) {
	fromToken, toToken := req.normalizedTokens()
	if err := supportedToken(fromToken); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := supportedToken(toToken); err != nil {
		h.writeError(w, r, err)
		return
	}

	snap, prices := h.marketView(r, &req)
	amount := req.TradeAmountUSD(prices.APT(), h.cfg.Arbitrage.DefaultTradeAmountDecimal())
	fees := req.FeeSchedule()
	fromDEX, toDEX := routeVenues(fees)
	fromPair, toPair := pairsFor(fromToken, toToken)

	in := arbapp.ChargeInput{
		Route: domain.Route{
			FromPair:  fromPair,
			ToPair:    toPair,
			FromDEX:   fromDEX,
			ToDEX:     toDEX,
			AmountUSD: amount,
		},
		Fees:            fees,
		GasUnitPriceOct: snap.GasUnitPriceOctas,
		GasSource:       string(snap.GasSource),
		Prices:          prices,
	}

	breakdown, err := h.arb.Charges(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, chargesResponse{
		Route:   toRoutePayload(in.Route),
		Charges: toChargesPayload(breakdown),
		Market:  toMarketMeta(snap, prices.APT()),
		InvestmentDetails: investmentDetails{
			AmountAPT:    req.AmountAPT,
			AmountUSD:    amount,
			APTPriceUsed: prices.APT(),
			FeesApplied:  len(req.DEXFees) > 0,
		},
	})
}

type profitabilityResponse struct {
	ToToken           string               `json:"to_token"`
	Route             routePayload         `json:"route"`
	Charges           chargesPayload       `json:"charges"`
	Profitability     profitabilityPayload `json:"profitability"`
	Market            marketMeta           `json:"market"`
	InvestmentDetails investmentDetails    `json:"investment_details"`
	Narrative         string               `json:"narrative,omitempty"`

	AlternativesChecked int                   `json:"alternatives_checked,omitempty"`
	OtherOptions        []alternativeOption   `json:"other_options,omitempty"`
	AllOptions          []alternativeOption   `json:"all_options,omitempty"`
	Recommendation      domain.Recommendation `json:"recommendation,omitempty"`
}

type alternativeOption struct {
	ToToken      string          `json:"to_token"`
	IsProfitable bool            `json:"is_profitable"`
	MarginPct    decimal.Decimal `json:"profit_margin"`
}

func (h *Handler) handleIsProfitable(w http.ResponseWriter, r *http.Request) {
	var req ArbitrageRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.isProfitable(w, r, req)
}

func (h *Handler) isProfitable(w http.ResponseWriter, r *http.Request, req ArbitrageRequest) {
	fromToken, toToken := req.normalizedTokens()
	if err := supportedToken(fromToken); err != nil {
		h.writeError(w, r, err)
		return
	}

	// Without a destination, every other supported token is a candidate.
	var candidates []string
	if toToken != "" {
		if err := supportedToken(toToken); err != nil {
			h.writeError(w, r, err)
			return
		}
		candidates = []string{toToken}
	} else {
		for _, t := range domain.SupportedTokens {
			if t != fromToken {
				candidates = append(candidates, t)
			}
		}
	}

	snap, prices := h.marketView(r, &req)
	amount := req.TradeAmountUSD(prices.APT(), h.cfg.Arbitrage.DefaultTradeAmountDecimal())
	fees := req.FeeSchedule()
	fromDEX, toDEX := routeVenues(fees)

	var evaluated []profitabilityResponse
	var unevaluable []alternativeOption
	for _, candidate := range candidates {
		fromPair, toPair := pairsFor(fromToken, candidate)
		in := arbapp.ChargeInput{
			Route: domain.Route{
				FromPair:  fromPair,
				ToPair:    toPair,
				FromDEX:   fromDEX,
				ToDEX:     toDEX,
				AmountUSD: amount,
			},
			Fees:            fees,
			GasUnitPriceOct: snap.GasUnitPriceOctas,
			GasSource:       string(snap.GasSource),
			Prices:          prices,
		}

		ev, err := h.arb.Evaluate(r.Context(), in)
		if err != nil {
			// Single-candidate requests surface the error; multi-candidate
			// sweeps record the route as checked but not profitable.
			if len(candidates) == 1 {
				h.writeError(w, r, err)
				return
			}
			if h.log != nil {
				h.log.Debug(r.Context(), "candidate skipped", "to_token", candidate, "error", err)
			}
			unevaluable = append(unevaluable, alternativeOption{
				ToToken:      strings.ToUpper(candidate),
				IsProfitable: false,
				MarginPct:    decimal.Zero,
			})
			continue
		}

		evaluated = append(evaluated, profitabilityResponse{
			ToToken:       strings.ToUpper(candidate),
			Route:         toRoutePayload(ev.Route),
			Charges:       toChargesPayload(ev.Charges),
			Profitability: toProfitabilityPayload(ev.Result),
			Market:        toMarketMeta(snap, prices.APT()),
			InvestmentDetails: investmentDetails{
				AmountAPT:    req.AmountAPT,
				AmountUSD:    amount,
				APTPriceUsed: prices.APT(),
				FeesApplied:  len(req.DEXFees) > 0,
			},
			Narrative: h.narrator.Narrate(r.Context(), ev),
		})
	}

	checked := len(evaluated) + len(unevaluable)
	if len(evaluated) == 0 {
		h.writeError(w, r, apperror.New(apperror.CodeImpossibleRoute,
			apperror.WithContext("no evaluable route from "+fromToken)))
		return
	}
	if toToken != "" {
		h.writeJSON(w, http.StatusOK, evaluated[0])
		return
	}

	// Sweep: answer with the best profitable option, or a SKIP summary when
	// nothing pays.
	best := -1
	for i, resp := range evaluated {
		if !resp.Profitability.IsProfitable {
			continue
		}
		if best < 0 || resp.Profitability.MarginPct.GreaterThan(evaluated[best].Profitability.MarginPct) {
			best = i
		}
	}

	if best < 0 {
		options := make([]alternativeOption, 0, checked)
		for _, resp := range evaluated {
			options = append(options, alternativeOption{
				ToToken:      resp.ToToken,
				IsProfitable: false,
				MarginPct:    resp.Profitability.MarginPct,
			})
		}
		options = append(options, unevaluable...)
		h.writeJSON(w, http.StatusOK, profitabilityResponse{
			ToToken:             "",
			Market:              toMarketMeta(snap, prices.APT()),
			AlternativesChecked: checked,
			AllOptions:          options,
			Recommendation:      domain.RecommendSkip,
		})
		return
	}

	winner := evaluated[best]
	winner.AlternativesChecked = checked
	for i, resp := range evaluated {
		if i == best {
			continue
		}
		winner.OtherOptions = append(winner.OtherOptions, alternativeOption{
			ToToken:      resp.ToToken,
			IsProfitable: resp.Profitability.IsProfitable,
			MarginPct:    resp.Profitability.MarginPct,
		})
	}
	winner.OtherOptions = append(winner.OtherOptions, unevaluable...)
	h.writeJSON(w, http.StatusOK, winner)
}

type possibilitiesResponse struct {
	Opportunities     opportunitiesPayload `json:"opportunities"`
	Market            marketMeta           `json:"market"`
	InvestmentDetails investmentDetails    `json:"investment_details"`
}

func (h *Handler) handlePossibilities(w http.ResponseWriter, r *http.Request) {
	var req ArbitrageRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.possibilities(w, r, req)
}

func (h *Handler) possibilities(w http.ResponseWriter, r *http.Request, req ArbitrageRequest) {
	snap, prices := h.marketView(r, &req)
	amount := req.TradeAmountUSD(prices.APT(), h.cfg.Arbitrage.DefaultTradeAmountDecimal())

	report, err := h.arb.FindOpportunities(r.Context(), arbapp.SearchInput{
		AmountUSD:       amount,
		Fees:            req.FeeSchedule(),
		GasUnitPriceOct: snap.GasUnitPriceOctas,
		GasSource:       string(snap.GasSource),
		Prices:          prices,
	})
	if err != nil {
		// A stale result beats an empty answer, but only for server-side
		// failures. Client mistakes still get their 4xx.
		if cached, at, ok := h.arb.LastReport(); ok && arbapp.AsAppError(err).StatusCode >= 500 {
			if h.log != nil {
				h.log.Warn(r.Context(), "serving cached opportunity report", "cached_at", at, "error", err)
			}
			h.writeJSON(w, http.StatusOK, possibilitiesResponse{
				Opportunities: toOpportunitiesPayload(cached),
				Market:        toMarketMeta(snap, prices.APT()),
			})
			return
		}
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, possibilitiesResponse{
		Opportunities: toOpportunitiesPayload(report),
		Market:        toMarketMeta(snap, prices.APT()),
		InvestmentDetails: investmentDetails{
			AmountAPT:    req.AmountAPT,
			AmountUSD:    amount,
			APTPriceUsed: prices.APT(),
			FeesApplied:  len(req.DEXFees) > 0,
		},
	})
}

func (h *Handler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req ArbitrageRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.optimize(w, r, req)
}

func (h *Handler) optimize(w http.ResponseWriter, r *http.Request, req ArbitrageRequest) {
	fromToken, toToken := req.normalizedTokens()
	if err := supportedToken(fromToken); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := supportedToken(toToken); err != nil {
		h.writeError(w, r, err)
		return
	}

	snap, prices := h.marketView(r, &req)
	report, err := h.arb.Optimize(r.Context(), arbapp.OptimizeInput{
		FromToken: fromToken,
		ToToken:   toToken,
		Fees:      req.FeeSchedule(),
		CapAPT:    req.CapAPT(h.cfg.Arbitrage.MaxInvestmentDecimal()),
		Prices:    prices,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, struct {
		Optimization optimizationPayload `json:"optimization"`
		Market       marketMeta          `json:"market"`
	}{toOptimizationPayload(report), toMarketMeta(snap, prices.APT())})
}

func (h *Handler) handleAnalyzeAmount(w http.ResponseWriter, r *http.Request) {
	var req ArbitrageRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.analyzeAmount(w, r, req)
}

func (h *Handler) analyzeAmount(w http.ResponseWriter, r *http.Request, req ArbitrageRequest) {
	fromToken, toToken := req.normalizedTokens()
	if err := supportedToken(fromToken); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := supportedToken(toToken); err != nil {
		h.writeError(w, r, err)
		return
	}

	snap, prices := h.marketView(r, &req)
	amountAPT, ok := req.parseAmountAPT(prices.APT())
	if !ok {
		h.writeError(w, r, apperror.Validation(apperror.CodeRequiredField,
			"amount_apt (or a USD amount) is required"))
		return
	}

	analysis, err := h.arb.AnalyzeAmount(r.Context(), amountAPT, arbapp.OptimizeInput{
		FromToken: fromToken,
		ToToken:   toToken,
		Fees:      req.FeeSchedule(),
		Prices:    prices,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, struct {
		Analysis analysisPayload `json:"amount_analysis"`
		Market   marketMeta      `json:"market"`
	}{
		analysisPayload{
			Candidate: toCandidatePayload(analysis.Candidate),
			Reasoning: analysis.Reasoning,
			Market:    toMarketConditionsPayload(analysis.Market),
		},
		toMarketMeta(snap, prices.APT()),
	})
}

func (h *Handler) handleBreakeven(w http.ResponseWriter, r *http.Request) {
	var req ArbitrageRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.breakeven(w, r, req)
}

func (h *Handler) breakeven(w http.ResponseWriter, r *http.Request, req ArbitrageRequest) {
	fromToken, toToken := req.normalizedTokens()
	if err := supportedToken(fromToken); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := supportedToken(toToken); err != nil {
		h.writeError(w, r, err)
		return
	}

	snap, prices := h.marketView(r, &req)
	report, err := h.arb.Breakeven(r.Context(), arbapp.OptimizeInput{
		FromToken: fromToken,
		ToToken:   toToken,
		Fees:      req.FeeSchedule(),
		Prices:    prices,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, struct {
		Breakeven breakevenPayload `json:"breakeven"`
		Market    marketMeta       `json:"market"`
	}{
		breakevenPayload{
			Found:      report.Found,
			AmountAPT:  report.AmountAPT,
			AmountUSD:  report.AmountUSD,
			NetUSD:     report.NetUSD,
			Iterations: report.Iterations,
			Market:     toMarketConditionsPayload(report.Market),
		},
		toMarketMeta(snap, prices.APT()),
	})
}

// handleDispatch routes a generic request by its action field.
func (h *Handler) handleDispatch(w http.ResponseWriter, r *http.Request) {
	var req ArbitrageRequest
	if err := h.decode(r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	action, err := ParseAction(req.Action)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	switch action {
	case ActionGetCharges:
		h.getCharges(w, r, req)
	case ActionIsProfitable:
		h.isProfitable(w, r, req)
	case ActionPossibilities:
		h.possibilities(w, r, req)
	case ActionOptimizeInvestment:
		h.optimize(w, r, req)
	case ActionAnalyzeAmount:
		h.analyzeAmount(w, r, req)
	case ActionBreakeven:
		h.breakeven(w, r, req)
	}
}
