package apperror

// Code represents a unique error code for the application
type Code string

// General error codes
const (
	// General validation
	CodeRequiredField   Code = "REQUIRED_FIELD"
	CodeInvalidInput    Code = "INVALID_INPUT"
	CodeInvalidFormat   Code = "INVALID_FORMAT"
	CodeNotFound        Code = "NOT_FOUND"
	CodeValidationError Code = "VALIDATION_ERROR"

	// Configuration
	CodeConfigurationError Code = "CONFIGURATION_ERROR"

	// External service errors
	CodeExternalServiceError Code = "EXTERNAL_SERVICE_ERROR"
	CodeServiceTimeout       Code = "SERVICE_TIMEOUT"
	CodeServiceUnavailable   Code = "SERVICE_UNAVAILABLE"
	CodeRateLimitExceeded    Code = "RATE_LIMIT_EXCEEDED"

	// System errors
	CodeInternalError Code = "INTERNAL_ERROR"
	CodeUnknownError  Code = "UNKNOWN_ERROR"
)

// Arbitrage estimation error codes
const (
	// Core evaluation errors
	CodeInvalidTradeSize Code = "INVALID_TRADE_SIZE"
	CodeInvalidPrice     Code = "INVALID_PRICE"
	CodeInvalidFee       Code = "INVALID_FEE"
	CodeImpossibleRoute  Code = "IMPOSSIBLE_ROUTE"
	CodeUnsupportedPair  Code = "UNSUPPORTED_PAIR"

	// Gateway errors
	CodeUnknownAction Code = "UNKNOWN_ACTION"

	// Market data errors
	CodePriceFetchFailed Code = "PRICE_FETCH_FAILED"
	CodeGasFetchFailed   Code = "GAS_FETCH_FAILED"
	CodeStaleMarketData  Code = "STALE_MARKET_DATA"

	// WebSocket errors
	CodeWebSocketConnectionError Code = "WEBSOCKET_CONNECTION_ERROR"
	CodeWebSocketReconnecting    Code = "WEBSOCKET_RECONNECTING"
	CodeWebSocketClosed          Code = "WEBSOCKET_CLOSED"

	// Narrative errors
	CodeNarrationFailed Code = "NARRATION_FAILED"

	// Cache errors
	CodeCacheMiss    Code = "CACHE_MISS"
	CodeCacheExpired Code = "CACHE_EXPIRED"

	// Circuit breaker errors
	CodeCircuitOpen Code = "CIRCUIT_OPEN"
)
