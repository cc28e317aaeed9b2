package shared

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

const LamportsPerSOL uint64 = 1_000_000_000

var lamportsPerSOLDecimal = decimal.NewFromInt(int64(LamportsPerSOL))

// LamportsToSOL converts exactly; nine decimal places are kept.
func LamportsToSOL(lamports uint64) decimal.Decimal {
	return fromUint64(lamports).Div(lamportsPerSOLDecimal)
}

// SOLToLamports rejects negative amounts, fractions of a lamport and values
// that do not fit in a uint64.
func SOLToLamports(sol decimal.Decimal) (uint64, error) {
	if sol.IsNegative() {
		return 0, fmt.Errorf("amount %s is negative", sol)
	}
	lamports := sol.Mul(lamportsPerSOLDecimal)
	if !lamports.Equal(lamports.Truncate(0)) {
		return 0, fmt.Errorf("amount %s has more than nine decimal places", sol)
	}
	if lamports.GreaterThan(fromUint64(math.MaxUint64)) {
		return 0, fmt.Errorf("amount %s overflows lamports", sol)
	}
	return lamports.BigInt().Uint64(), nil
}

// ParseSOL parses a decimal SOL amount such as "2.5".
func ParseSOL(raw string) (uint64, error) {
	sol, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid SOL amount %q: %w", raw, err)
	}
	return SOLToLamports(sol)
}

func FormatSOL(lamports uint64) string {
	return LamportsToSOL(lamports).StringFixed(9) + " SOL"
}

func fromUint64(value uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(value), 0)
}
