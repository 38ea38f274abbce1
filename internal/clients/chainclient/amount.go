package chainclient

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// amountDecimals is the fixed-point scale of on-chain amounts
const amountDecimals = 18

// ToAmount converts a raw 18-decimals integer into a decimal amount
func ToAmount(raw *big.Int) decimal.Decimal {
	if raw == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(raw, -amountDecimals)
}
