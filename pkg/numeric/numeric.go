// Package numeric converts wide unsigned chain quantities into arbitrary-precision decimals
// suitable for NUMERIC columns, and back.
package numeric

import (
	"fmt"

	"github.com/holiman/uint256"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Uint128Bits is the width of the 128-bit quantities (gas figures) carried in uint256.Int values.
const Uint128Bits = 128

// ConversionError reports a value that cannot be represented exactly.
// It is never expected for well-formed input and callers treat it as fatal for the whole block.
type ConversionError struct {
	Value  string
	Reason string
	Err    error
}

func (e *ConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("convert %q: %s: %v", e.Value, e.Reason, e.Err)
	}
	return fmt.Sprintf("convert %q: %s", e.Value, e.Reason)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// FromUint256 returns the exact decimal value of v.
func FromUint256(v *uint256.Int) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, &ConversionError{Value: "<nil>", Reason: "nil integer"}
	}
	return parse(v.Dec())
}

// FromUint128 is FromUint256 for 128-bit quantities. Values wider than 128 bits are an error.
func FromUint128(v *uint256.Int) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, &ConversionError{Value: "<nil>", Reason: "nil integer"}
	}
	if v.BitLen() > Uint128Bits {
		return decimal.Zero, &ConversionError{Value: v.Dec(), Reason: "exceeds 128 bits"}
	}
	return parse(v.Dec())
}

// FromUint64 returns the decimal value of an ordinal field such as a block number or nonce.
func FromUint64(v uint64) decimal.Decimal {
	return decimal.NewFromUint64(v)
}

// ToUint256 decodes a decimal produced by FromUint256. Negative, fractional and
// out-of-range values are rejected.
func ToUint256(d decimal.Decimal) (*uint256.Int, error) {
	if d.IsNegative() {
		return nil, &ConversionError{Value: d.String(), Reason: "negative value"}
	}
	if !d.IsInteger() {
		return nil, &ConversionError{Value: d.String(), Reason: "fractional value"}
	}
	v, overflow := uint256.FromBig(d.BigInt())
	if overflow {
		return nil, &ConversionError{Value: d.String(), Reason: "exceeds 256 bits"}
	}
	return v, nil
}

// ToNumeric converts d into the pgx wire representation of a NUMERIC value.
func ToNumeric(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{Int: d.Coefficient(), Exp: d.Exponent(), Valid: true}
}

// FromNumeric converts a scanned NUMERIC back into a decimal. NULL, NaN and infinities are errors.
func FromNumeric(n pgtype.Numeric) (decimal.Decimal, error) {
	switch {
	case !n.Valid:
		return decimal.Zero, &ConversionError{Value: "NULL", Reason: "null numeric"}
	case n.NaN:
		return decimal.Zero, &ConversionError{Value: "NaN", Reason: "not a number"}
	case n.InfinityModifier != pgtype.Finite:
		return decimal.Zero, &ConversionError{Value: "Infinity", Reason: "infinite numeric"}
	case n.Int == nil:
		return decimal.Zero, nil
	}
	return decimal.NewFromBigInt(n.Int, n.Exp), nil
}

func parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ConversionError{Value: s, Reason: "parse decimal", Err: err}
	}
	return d, nil
}
