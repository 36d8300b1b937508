// Package coingecko fetches token quotes from the CoinGecko simple price
// API, guarded by a rate limiter and a circuit breaker.
package coingecko

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"

	"github.com/fd1az/aptos-arbitrage/business/market/domain"
	"github.com/fd1az/aptos-arbitrage/internal/apperror"
	"github.com/fd1az/aptos-arbitrage/internal/httpclient"
	"github.com/fd1az/aptos-arbitrage/internal/logger"
	"github.com/fd1az/aptos-arbitrage/internal/ratelimit"
)

// ids maps CoinGecko coin ids to the token ids this service uses.
var ids = map[string]string{
	"aptos":    "apt",
	"usd-coin": "usdc",
	"tether":   "usdt",
}

// simplePrice mirrors the /simple/price response shape.
type simplePrice map[string]struct {
	USD          float64 `json:"usd"`
	USDMarketCap float64 `json:"usd_market_cap"`
	USDVol24h    float64 `json:"usd_24h_vol"`
	USDChange24h float64 `json:"usd_24h_change"`
}

// Provider implements app.PriceProvider on the CoinGecko REST API.
type Provider struct {
	client  httpclient.Client
	limiter *ratelimit.Limiter
	breaker *gobreaker.CircuitBreaker[simplePrice]
	log     logger.LoggerInterface
}

// NewProvider creates the provider. requestsPerSecond throttles outbound
// calls; CoinGecko's free tier is unforgiving.
func NewProvider(baseURL string, requestsPerSecond float64, log logger.LoggerInterface) (*Provider, error) {
	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("coingecko"),
		httpclient.WithBaseURL(baseURL),
		httpclient.WithRequestTimeout(10*time.Second),
	)
	if err != nil {
		return nil, err
	}

	breaker := gobreaker.NewCircuitBreaker[simplePrice](gobreaker.Settings{
		Name:        "coingecko",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &Provider{
		client:  client,
		limiter: ratelimit.NewWithBurst(requestsPerSecond, 1),
		breaker: breaker,
		log:     log,
	}, nil
}

// Name identifies the provider in logs.
func (p *Provider) Name() string { return "coingecko" }

// Quotes fetches USD quotes for all supported tokens in one call.
func (p *Provider) Quotes(ctx context.Context) (map[string]domain.TokenQuote, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, apperror.External(apperror.CodePriceFetchFailed, "coingecko rate limit wait", err)
	}

	prices, err := p.breaker.Execute(func() (simplePrice, error) {
		var result simplePrice
		resp, err := p.client.NewRequest().
			SetQueryParams(map[string]string{
				"ids":                 "aptos,usd-coin,tether",
				"vs_currencies":       "usd",
				"include_market_cap":  "true",
				"include_24hr_vol":    "true",
				"include_24hr_change": "true",
			}).
			SetResult(&result).
			Get(ctx, "/simple/price")
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, fmt.Errorf("coingecko returned %s", resp.Status)
		}
		return result, nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState {
			return nil, apperror.New(apperror.CodeCircuitOpen, apperror.WithContext("coingecko"))
		}
		return nil, apperror.External(apperror.CodePriceFetchFailed, "coingecko simple price", err)
	}

	quotes := make(map[string]domain.TokenQuote, len(ids))
	for coinID, token := range ids {
		entry, ok := prices[coinID]
		if !ok || entry.USD <= 0 {
			continue
		}
		quotes[token] = domain.TokenQuote{
			PriceUSD:     decimal.NewFromFloat(entry.USD),
			MarketCapUSD: decimal.NewFromFloat(entry.USDMarketCap),
			Volume24hUSD: decimal.NewFromFloat(entry.USDVol24h),
			Change24hPct: decimal.NewFromFloat(entry.USDChange24h),
		}
	}
	if len(quotes) == 0 {
		return nil, apperror.New(apperror.CodePriceFetchFailed, apperror.WithContext("coingecko returned no usable quotes"))
	}
	return quotes, nil
}
