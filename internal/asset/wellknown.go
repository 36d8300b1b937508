package asset

// Well-known tokens on Aptos mainnet.
var (
	APT = Token{
		Symbol:      "APT",
		Name:        "Aptos",
		Address:     "0x1::aptos_coin::AptosCoin",
		Decimals:    8,
		Native:      true,
		CoingeckoID: "aptos",
	}

	USDC = Token{
		Symbol:      "USDC",
		Name:        "USD Coin",
		Address:     "0xf22bede237a07e121b56d91a491eb7bcdfd1f5907926a9e58338f964a01b17fa::asset::USDC",
		Decimals:    6,
		CoingeckoID: "usd-coin",
	}

	USDT = Token{
		Symbol:      "USDT",
		Name:        "Tether USD",
		Address:     "0xf22bede237a07e121b56d91a491eb7bcdfd1f5907926a9e58338f964a01b17fa::asset::USDT",
		Decimals:    6,
		CoingeckoID: "tether",
	}
)

// DefaultRegistry returns the registry of tokens this service supports.
func DefaultRegistry() *Registry {
	return NewRegistry(APT, USDC, USDT)
}
