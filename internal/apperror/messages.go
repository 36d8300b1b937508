package apperror

// messages maps error codes to their default human-readable messages
var messages = map[Code]string{
	// General validation
	CodeRequiredField:   "Required field is missing",
	CodeInvalidInput:    "Invalid input provided",
	CodeInvalidFormat:   "Invalid format",
	CodeNotFound:        "Resource not found",
	CodeValidationError: "Validation failed",

	// Configuration
	CodeConfigurationError: "Configuration error",

	// External services
	CodeExternalServiceError: "External service error",
	CodeServiceTimeout:       "Service request timed out",
	CodeServiceUnavailable:   "Service unavailable",
	CodeRateLimitExceeded:    "Rate limit exceeded",

	// System
	CodeInternalError: "Internal error",
	CodeUnknownError:  "Unknown error",

	// Core evaluation
	CodeInvalidTradeSize: "Trade amount must be positive",
	CodeInvalidPrice:     "Token price must be positive",
	CodeInvalidFee:       "Fee percentage is invalid",
	CodeImpossibleRoute:  "Route cannot produce a spread",
	CodeUnsupportedPair:  "Trading pair is not supported",

	// Gateway
	CodeUnknownAction: "Unknown action requested",

	// Market data
	CodePriceFetchFailed: "Failed to fetch token prices",
	CodeGasFetchFailed:   "Failed to fetch gas unit price",
	CodeStaleMarketData:  "Market data is stale",

	// WebSocket
	CodeWebSocketConnectionError: "WebSocket connection error",
	CodeWebSocketReconnecting:    "WebSocket reconnecting",
	CodeWebSocketClosed:          "WebSocket closed",

	// Narrative
	CodeNarrationFailed: "Failed to generate analysis narrative",

	// Cache
	CodeCacheMiss:    "No cached result available",
	CodeCacheExpired: "Cached result has expired",

	// Circuit breaker
	CodeCircuitOpen: "Circuit breaker is open",
}
