// Package binance streams spot mini-tickers over websocket and serves them
// as token quotes. It is a best-effort fast path in front of CoinGecko.
package binance

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fd1az/aptos-arbitrage/business/market/domain"
	"github.com/fd1az/aptos-arbitrage/internal/apperror"
	"github.com/fd1az/aptos-arbitrage/internal/logger"
	"github.com/fd1az/aptos-arbitrage/internal/wsconn"
)

// symbolTokens maps stream symbols to the token whose USD price the symbol
// approximates. USDT-quoted prices are close enough to USD for estimation.
var symbolTokens = map[string]string{
	"APTUSDT":  "apt",
	"USDCUSDT": "usdc",
}

// ProviderConfig holds the ticker stream configuration.
type ProviderConfig struct {
	WebSocketURL string
	Symbols      []string
	StaleTimeout time.Duration
}

// combinedEvent wraps a message from a combined stream endpoint.
type combinedEvent struct {
	Stream string     `json:"stream"`
	Data   miniTicker `json:"data"`
}

// miniTicker is the <symbol>@miniTicker payload.
type miniTicker struct {
	Symbol string `json:"s"`
	Close  string `json:"c"`
}

type quote struct {
	price decimal.Decimal
	at    time.Time
}

// Provider implements app.PriceProvider on Binance websocket mini-tickers.
// Quotes are partial: only tokens with a fresh ticker are returned.
type Provider struct {
	config ProviderConfig
	conn   *wsconn.Client
	log    logger.LoggerInterface

	mu     sync.RWMutex
	latest map[string]quote
}

// NewProvider creates the provider; Connect must be called before quotes
// flow.
func NewProvider(config ProviderConfig, log logger.LoggerInterface) *Provider {
	if config.StaleTimeout <= 0 {
		config.StaleTimeout = 10 * time.Second
	}
	return &Provider{
		config: config,
		log:    log,
		latest: make(map[string]quote),
	}
}

// Name identifies the provider in logs.
func (p *Provider) Name() string { return "binance-ws" }

// streamURL builds the combined stream URL for the configured symbols.
func (p *Provider) streamURL() string {
	streams := make([]string, 0, len(p.config.Symbols))
	for _, symbol := range p.config.Symbols {
		streams = append(streams, strings.ToLower(symbol)+"@miniTicker")
	}
	return strings.TrimSuffix(p.config.WebSocketURL, "/") + "/stream?streams=" + strings.Join(streams, "/")
}

// Connect dials the stream and starts consuming tickers until ctx ends.
func (p *Provider) Connect(ctx context.Context) error {
	p.conn = wsconn.New(wsconn.DefaultConfig(p.streamURL()))
	if err := p.conn.Connect(ctx); err != nil {
		return apperror.External(apperror.CodeWebSocketConnectionError, "binance ticker stream", err)
	}

	go p.consume(ctx)
	return nil
}

// Close tears the stream down.
func (p *Provider) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}

func (p *Provider) consume(ctx context.Context) {
	for msg := range p.conn.Messages() {
		var event combinedEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			if p.log != nil {
				p.log.Debug(ctx, "unparseable ticker message", "error", err)
			}
			continue
		}

		token, ok := symbolTokens[event.Data.Symbol]
		if !ok {
			continue
		}
		price, err := decimal.NewFromString(event.Data.Close)
		if err != nil || !price.IsPositive() {
			continue
		}

		p.mu.Lock()
		p.latest[token] = quote{price: price, at: time.Now()}
		p.mu.Unlock()
	}
}

// Quotes returns the fresh ticker prices. Tokens without a fresh ticker are
// omitted; with none at all an error lets the next provider take over.
func (p *Provider) Quotes(ctx context.Context) (map[string]domain.TokenQuote, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	quotes := make(map[string]domain.TokenQuote)
	now := time.Now()
	for token, q := range p.latest {
		if now.Sub(q.at) > p.config.StaleTimeout {
			continue
		}
		quotes[token] = domain.TokenQuote{PriceUSD: q.price}
	}
	if len(quotes) == 0 {
		return nil, apperror.New(apperror.CodeStaleMarketData, apperror.WithContext("no fresh binance tickers"))
	}
	return quotes, nil
}
