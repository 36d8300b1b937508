package domain

import (
	"github.com/shopspring/decimal"

	"github.com/fd1az/aptos-arbitrage/internal/asset"
)

// GasOp is an on-chain operation with a known gas-unit budget.
type GasOp string

const (
	OpSwap            GasOp = "swap"
	OpAddLiquidity    GasOp = "add_liquidity"
	OpRemoveLiquidity GasOp = "remove_liquidity"
)

// GasUnits is the gas-unit budget per operation on Aptos.
var GasUnits = map[GasOp]int64{
	OpSwap:            1000,
	OpAddLiquidity:    2000,
	OpRemoveLiquidity: 2000,
}

// FallbackGasUnitPrice is the octas-per-unit price assumed when no live
// estimate is available.
const FallbackGasUnitPrice int64 = 100

// ArbitrageSwapCount is the number of swaps a two-leg arbitrage performs.
const ArbitrageSwapCount int64 = 2

// GasCost is the fully resolved gas cost of a sequence of operations.
type GasCost struct {
	UnitPriceOctas int64
	UnitsPerOp     int64
	Operations     int64
	TotalAPT       decimal.Decimal
	TotalUSD       decimal.Decimal
}

// NewGasCost prices `operations` executions of op at unitPriceOctas,
// converting octas to APT and then to USD at aptPriceUSD.
func NewGasCost(op GasOp, unitPriceOctas, operations int64, aptPriceUSD decimal.Decimal) GasCost {
	units := GasUnits[op]
	totalOctas := units * operations * unitPriceOctas
	apt := asset.OctasToAPT(totalOctas)

	return GasCost{
		UnitPriceOctas: unitPriceOctas,
		UnitsPerOp:     units,
		Operations:     operations,
		TotalAPT:       apt,
		TotalUSD:       apt.Mul(aptPriceUSD),
	}
}

// Flat per-operation gas costs in APT, used by the investment optimizer's
// coarser cost model.
var (
	FlatSwapGasAPT            = decimal.RequireFromString("0.001")
	FlatAddLiquidityGasAPT    = decimal.RequireFromString("0.002")
	FlatRemoveLiquidityGasAPT = decimal.RequireFromString("0.002")
)

// FlatArbitrageGasAPT returns the flat APT gas cost of a two-swap arbitrage.
func FlatArbitrageGasAPT() decimal.Decimal {
	return FlatSwapGasAPT.Mul(decimal.NewFromInt(ArbitrageSwapCount))
}
