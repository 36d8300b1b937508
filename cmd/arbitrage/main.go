// Package main is the entry point for the Aptos arbitrage estimation service.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/fd1az/aptos-arbitrage/business/arbitrage"
	arbapp "github.com/fd1az/aptos-arbitrage/business/arbitrage/app"
	arbDI "github.com/fd1az/aptos-arbitrage/business/arbitrage/di"
	"github.com/fd1az/aptos-arbitrage/business/arbitrage/domain"
	"github.com/fd1az/aptos-arbitrage/business/gateway"
	"github.com/fd1az/aptos-arbitrage/business/market"
	marketDI "github.com/fd1az/aptos-arbitrage/business/market/di"
	marketdomain "github.com/fd1az/aptos-arbitrage/business/market/domain"
	"github.com/fd1az/aptos-arbitrage/business/narrative"
	"github.com/fd1az/aptos-arbitrage/internal/apm"
	"github.com/fd1az/aptos-arbitrage/internal/config"
	"github.com/fd1az/aptos-arbitrage/internal/health"
	"github.com/fd1az/aptos-arbitrage/internal/logger"
	"github.com/fd1az/aptos-arbitrage/internal/metrics"
	"github.com/fd1az/aptos-arbitrage/internal/monolith"
	"github.com/fd1az/aptos-arbitrage/pkg/ui"
)

var (
	version   = "dev"
	commit    = "none"
	buildDate = "unknown"
)

func main() {
	// Load .env file if present (ignore error if not found)
	_ = godotenv.Load()

	configPath := flag.String("config", "", "Path to configuration file")
	watchMode := flag.Bool("watch", false, "Run the TUI watch dashboard instead of the API server")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("aptos-arbitrage %s (commit: %s, built: %s)\n", version, commit, buildDate)
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		if !*watchMode {
			fmt.Fprintf(os.Stderr, "received shutdown signal: %v\n", sig)
		}
		cancel()
	}()

	if err := run(ctx, *configPath, *watchMode); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, watchMode bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg.Arbitrage.TUIMode = watchMode

	logLevel := logger.LevelInfo
	switch cfg.App.LogLevel {
	case "debug":
		logLevel = logger.LevelDebug
	case "warn":
		logLevel = logger.LevelWarn
	case "error":
		logLevel = logger.LevelError
	}

	var log *logger.Logger
	if watchMode {
		// The dashboard owns the terminal; logs would tear it apart.
		log = logger.New(io.Discard, logLevel, cfg.App.Name, nil)
	} else {
		log = logger.New(os.Stderr, logLevel, cfg.App.Name, nil)
		log.Info(ctx, "starting Aptos arbitrage estimation service",
			"version", version,
			"environment", cfg.App.Environment,
		)
	}

	gateway.Version = version

	var traceProvider apm.TraceProvider
	if cfg.Telemetry.Enabled {
		if cfg.Telemetry.ServiceName != "" {
			os.Setenv("OTEL_SERVICE_NAME", cfg.Telemetry.ServiceName)
		}
		if cfg.Telemetry.OTLPEndpoint != "" {
			os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Telemetry.OTLPEndpoint)
		}

		traceProvider = apm.NewTraceProvider(log, apm.WithProvider(apm.ZipkinProvider, log))
		log.Info(ctx, "tracing initialized", "provider", "zipkin")

		metrics.NewMetricProvider(
			metrics.WithServiceName(cfg.Telemetry.ServiceName),
			metrics.WithProviderConfig(metrics.ProviderCfg{
				Provider: metrics.PrometheusProvider,
			}),
		)

		port := cfg.Telemetry.PrometheusPort
		if port == 0 {
			port = 9090
		}
		go metrics.ServePrometheusMetrics(metrics.WithPort(strconv.Itoa(port)))
		log.Info(ctx, "prometheus metrics server started", "port", port)
	}
	defer func() {
		if traceProvider != nil {
			traceProvider.Stop()
		}
	}()

	mono, err := monolith.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create monolith: %w", err)
	}

	// Modules in dependency order; the gateway only runs in API mode.
	gatewayModule := &gateway.Module{}
	modules := []monolith.Module{
		&market.Module{},
		&arbitrage.Module{},
		&narrative.Module{},
	}
	if !watchMode {
		modules = append(modules, gatewayModule)
	}

	if err := mono.RegisterModules(modules...); err != nil {
		return fmt.Errorf("failed to register modules: %w", err)
	}
	if err := mono.StartModules(ctx, modules...); err != nil {
		return fmt.Errorf("failed to start modules: %w", err)
	}

	marketSvc := marketDI.GetMarketService(mono.Services())

	healthServer := health.NewServer(cfg.Server.HealthPort, version)
	healthServer.RegisterCheck("market_data", func(ctx context.Context) (bool, string) {
		snap, ok := marketSvc.Stored()
		if !ok {
			return true, "no snapshot assembled yet"
		}
		msg := fmt.Sprintf("prices %s, gas %s, age %s",
			snap.PriceSource, snap.GasSource, time.Since(snap.FetchedAt).Round(time.Second))
		return snap.PriceSource != marketdomain.SourceFallback, msg
	})
	if err := healthServer.Start(); err != nil {
		log.Warn(ctx, "failed to start health server", "error", err)
	} else {
		log.Info(ctx, "health server started", "port", cfg.Server.HealthPort)
	}
	defer healthServer.Stop(context.Background())

	if watchMode {
		return runWatch(ctx, cfg, mono)
	}

	<-ctx.Done()
	log.Info(ctx, "shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	return gatewayModule.Shutdown(shutdownCtx)
}

// watchFees is the venue schedule the dashboard enumerates over.
var watchFees = domain.FeeSchedule{
	"liquidswap":  decimal.RequireFromString("0.30"),
	"pancakeswap": decimal.RequireFromString("0.25"),
	"thalaswap":   decimal.RequireFromString("0.20"),
	"hippo":       decimal.RequireFromString("0.30"),
}

func runWatch(ctx context.Context, cfg *config.Config, mono monolith.Monolith) error {
	marketSvc := marketDI.GetMarketService(mono.Services())
	arbSvc := arbDI.GetArbitrageService(mono.Services())

	refresher := func(ctx context.Context) ui.RefreshResult {
		snap := marketSvc.Snapshot(ctx)
		report, err := arbSvc.FindOpportunities(ctx, arbapp.SearchInput{
			AmountUSD:       cfg.Arbitrage.DefaultTradeAmountDecimal(),
			Fees:            watchFees,
			GasUnitPriceOct: snap.GasUnitPriceOctas,
			GasSource:       string(snap.GasSource),
			Prices:          snap.PriceSet(),
		})
		if err != nil {
			if cached, _, ok := arbSvc.LastReport(); ok {
				return ui.RefreshResult{Snapshot: snap, Report: cached, Err: err}
			}
		}
		return ui.RefreshResult{Snapshot: snap, Report: report, Err: err}
	}

	return ui.Run(ctx, refresher, cfg.Arbitrage.WatchInterval)
}
