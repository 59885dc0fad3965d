package transform

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"

	"github.com/canopy-network/evmindexer/pkg/numeric"
)

// u128 converts a 128-bit field, naming the field on failure.
func u128(field string, v *uint256.Int) (decimal.Decimal, error) {
	d, err := numeric.FromUint128(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

// u256 converts a 256-bit field, naming the field on failure.
func u256(field string, v *uint256.Int) (decimal.Decimal, error) {
	d, err := numeric.FromUint256(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", field, err)
	}
	return d, nil
}

// optionalAddress returns nil for an absent address so it is stored as NULL.
func optionalAddress(addr *common.Address) []byte {
	if addr == nil {
		return nil
	}
	return addr.Bytes()
}

// nonNil keeps NOT NULL byte columns from binding as NULL.
func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}
