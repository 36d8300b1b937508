// Package gateway implements the HTTP API bounded context.
package gateway

import (
	"context"
	"fmt"
	"net/http"

	arbDI "github.com/fd1az/aptos-arbitrage/business/arbitrage/di"
	"github.com/fd1az/aptos-arbitrage/business/gateway/app"
	gwDI "github.com/fd1az/aptos-arbitrage/business/gateway/di"
	marketDI "github.com/fd1az/aptos-arbitrage/business/market/di"
	narrDI "github.com/fd1az/aptos-arbitrage/business/narrative/di"
	"github.com/fd1az/aptos-arbitrage/internal/config"
	"github.com/fd1az/aptos-arbitrage/internal/di"
	"github.com/fd1az/aptos-arbitrage/internal/logger"
	"github.com/fd1az/aptos-arbitrage/internal/monolith"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

// Module implements the gateway bounded context. It owns the HTTP server.
type Module struct {
	server *http.Server
}

// RegisterServices registers the gateway handler with the DI container.
func (m *Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, gwDI.Handler, func(sr di.ServiceRegistry) *app.Handler {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		return app.NewHandler(
			cfg,
			log,
			Version,
			marketDI.GetMarketService(sr),
			arbDI.GetArbitrageService(sr),
			narrDI.GetNarrator(sr),
		)
	})
	return nil
}

// Startup starts the HTTP server. It returns once the listener goroutine is
// running; ListenAndServe failures are fatal and logged.
func (m *Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	cfg := mono.Config()
	log := mono.Logger()

	handler := gwDI.GetHandler(mono.Services())
	m.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      handler.Routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info(ctx, "gateway listening", "addr", m.server.Addr)
		if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "gateway server failed", "error", err)
		}
	}()

	return nil
}

// Shutdown drains in-flight requests.
func (m *Module) Shutdown(ctx context.Context) error {
	if m.server == nil {
		return nil
	}
	return m.server.Shutdown(ctx)
}
