// Package config provides configuration loading and validation.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Market    MarketConfig    `mapstructure:"market"`
	Aptos     AptosConfig     `mapstructure:"aptos"`
	CoinGecko CoinGeckoConfig `mapstructure:"coingecko"`
	Binance   BinanceConfig   `mapstructure:"binance"`
	Arbitrage ArbitrageConfig `mapstructure:"arbitrage"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
}

// AppConfig holds general application settings.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// ServerConfig holds the HTTP gateway settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	HealthPort   int           `mapstructure:"health_port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// MarketConfig holds market-data fetch behavior.
type MarketConfig struct {
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

// AptosConfig holds Aptos fullnode configuration.
type AptosConfig struct {
	FullnodeURL          string `mapstructure:"fullnode_url"`
	FallbackGasUnitPrice int64  `mapstructure:"fallback_gas_unit_price"`
}

// CoinGeckoConfig holds the CoinGecko price provider configuration.
type CoinGeckoConfig struct {
	BaseURL           string  `mapstructure:"base_url"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

// BinanceConfig holds the Binance websocket ticker configuration.
type BinanceConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	WebSocketURL string        `mapstructure:"websocket_url"` // wss://stream.binance.com:9443
	Symbols      []string      `mapstructure:"symbols"`
	StaleTimeout time.Duration `mapstructure:"stale_timeout"`
}

// ArbitrageConfig holds evaluation defaults.
type ArbitrageConfig struct {
	DefaultTradeAmountUSD float64       `mapstructure:"default_trade_amount_usd"`
	MaxInvestmentAPT      float64       `mapstructure:"max_investment_apt"`
	WatchInterval         time.Duration `mapstructure:"watch_interval"`
	TUIMode               bool          `mapstructure:"-"` // Set at runtime, not from config file
}

// DefaultTradeAmountDecimal returns the default trade amount as decimal.Decimal.
func (c *ArbitrageConfig) DefaultTradeAmountDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.DefaultTradeAmountUSD)
}

// MaxInvestmentDecimal returns the max investment cap as decimal.Decimal.
func (c *ArbitrageConfig) MaxInvestmentDecimal() decimal.Decimal {
	return decimal.NewFromFloat(c.MaxInvestmentAPT)
}

// TelemetryConfig holds observability configuration.
type TelemetryConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	ServiceName    string `mapstructure:"service_name"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	PrometheusPort int    `mapstructure:"prometheus_port"`
}

// OpenAIConfig holds the optional narrative layer configuration.
type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// Enabled reports whether the narrative layer should run.
func (c *OpenAIConfig) Enabled() bool {
	return c.APIKey != ""
}

// Load loads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("ARB")
	v.AutomaticEnv()

	bindEnvVars(v)
	setDefaults(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func bindEnvVars(v *viper.Viper) {
	// App
	v.BindEnv("app.name", "ARB_APP_NAME", "SERVICE_NAME")
	v.BindEnv("app.environment", "ARB_ENVIRONMENT", "ENVIRONMENT")
	v.BindEnv("app.log_level", "ARB_LOG_LEVEL", "LOG_LEVEL")

	// Server
	v.BindEnv("server.port", "ARB_SERVER_PORT", "PORT")
	v.BindEnv("server.health_port", "ARB_HEALTH_PORT")

	// Market
	v.BindEnv("market.fetch_timeout", "ARB_MARKET_FETCH_TIMEOUT")
	v.BindEnv("market.cache_ttl", "ARB_MARKET_CACHE_TTL")

	// Aptos
	v.BindEnv("aptos.fullnode_url", "ARB_APTOS_FULLNODE_URL", "APTOS_FULLNODE_URL")
	v.BindEnv("aptos.fallback_gas_unit_price", "ARB_APTOS_FALLBACK_GAS_UNIT_PRICE")

	// CoinGecko
	v.BindEnv("coingecko.base_url", "ARB_COINGECKO_URL", "COINGECKO_URL")

	// Binance
	v.BindEnv("binance.enabled", "ARB_BINANCE_ENABLED")
	v.BindEnv("binance.websocket_url", "ARB_BINANCE_WS_URL", "BINANCE_WS_URL")
	v.BindEnv("binance.symbols", "ARB_BINANCE_SYMBOLS", "BINANCE_SYMBOLS")

	// Arbitrage
	v.BindEnv("arbitrage.default_trade_amount_usd", "ARB_DEFAULT_TRADE_AMOUNT_USD")
	v.BindEnv("arbitrage.max_investment_apt", "ARB_MAX_INVESTMENT_APT")
	v.BindEnv("arbitrage.watch_interval", "ARB_WATCH_INTERVAL")

	// Telemetry
	v.BindEnv("telemetry.enabled", "ARB_OTEL_ENABLED", "OTEL_ENABLED")
	v.BindEnv("telemetry.service_name", "ARB_OTEL_SERVICE_NAME", "OTEL_SERVICE_NAME")
	v.BindEnv("telemetry.otlp_endpoint", "ARB_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")

	// OpenAI
	v.BindEnv("openai.api_key", "ARB_OPENAI_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("openai.model", "ARB_OPENAI_MODEL", "OPENAI_MODEL")
}

func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "aptos-arbitrage")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	// Server defaults
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.health_port", 8081)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")

	// Market defaults
	v.SetDefault("market.fetch_timeout", "5s")
	v.SetDefault("market.cache_ttl", "30s")

	// Aptos mainnet defaults
	v.SetDefault("aptos.fullnode_url", "https://fullnode.mainnet.aptoslabs.com/v1")
	v.SetDefault("aptos.fallback_gas_unit_price", 100)

	// CoinGecko defaults
	v.SetDefault("coingecko.base_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("coingecko.requests_per_second", 0.5)

	// Binance defaults
	v.SetDefault("binance.enabled", false)
	v.SetDefault("binance.websocket_url", "wss://stream.binance.com:9443")
	v.SetDefault("binance.symbols", []string{"APTUSDT", "USDCUSDT"})
	v.SetDefault("binance.stale_timeout", "10s")

	// Arbitrage defaults
	v.SetDefault("arbitrage.default_trade_amount_usd", 1000)
	v.SetDefault("arbitrage.max_investment_apt", 50000)
	v.SetDefault("arbitrage.watch_interval", "10s")

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.service_name", "aptos-arbitrage")
	v.SetDefault("telemetry.prometheus_port", 9090)

	// OpenAI defaults
	v.SetDefault("openai.model", "gpt-4o-mini")
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Market.FetchTimeout <= 0 {
		return fmt.Errorf("market.fetch_timeout must be positive")
	}
	if c.Market.CacheTTL <= 0 {
		return fmt.Errorf("market.cache_ttl must be positive")
	}
	if !strings.HasPrefix(c.Aptos.FullnodeURL, "http") {
		return fmt.Errorf("invalid aptos.fullnode_url: %s", c.Aptos.FullnodeURL)
	}
	if c.Aptos.FallbackGasUnitPrice <= 0 {
		return fmt.Errorf("aptos.fallback_gas_unit_price must be positive")
	}
	if c.Binance.Enabled && len(c.Binance.Symbols) == 0 {
		return fmt.Errorf("binance.symbols cannot be empty when binance is enabled")
	}
	if c.Arbitrage.MaxInvestmentAPT <= 0 {
		return fmt.Errorf("arbitrage.max_investment_apt must be positive")
	}
	return nil
}
