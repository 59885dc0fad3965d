package numeric

import (
	"errors"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func maxBits(bits uint) *uint256.Int {
	v := new(uint256.Int).Lsh(uint256.NewInt(1), bits)
	return v.SubUint64(v, 1)
}

func TestFromUint256RoundTrip(t *testing.T) {
	max256 := new(uint256.Int).SetAllOne()

	tests := []struct {
		name string
		in   *uint256.Int
		want string
	}{
		{name: "zero", in: uint256.NewInt(0), want: "0"},
		{name: "one", in: uint256.NewInt(1), want: "1"},
		{name: "max uint64", in: uint256.NewInt(^uint64(0)), want: "18446744073709551615"},
		{name: "2^64", in: new(uint256.Int).Lsh(uint256.NewInt(1), 64), want: "18446744073709551616"},
		{name: "max uint128", in: maxBits(128), want: "340282366920938463463374607431768211455"},
		{
			name: "max uint256",
			in:   max256,
			want: "115792089237316195423570985008687907853269984665640564039457584007913129639935",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := FromUint256(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())

			back, err := ToUint256(d)
			require.NoError(t, err)
			assert.True(t, back.Eq(tt.in), "got %s want %s", back.Dec(), tt.in.Dec())
		})
	}
}

func TestFromUint128(t *testing.T) {
	d, err := FromUint128(maxBits(128))
	require.NoError(t, err)
	assert.Equal(t, "340282366920938463463374607431768211455", d.String())

	d, err = FromUint128(uint256.NewInt(0))
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	_, err = FromUint128(new(uint256.Int).Lsh(uint256.NewInt(1), 128))
	var convErr *ConversionError
	require.True(t, errors.As(err, &convErr))
	assert.Equal(t, "exceeds 128 bits", convErr.Reason)

	_, err = FromUint128(nil)
	require.Error(t, err)
}

func TestFromUint64(t *testing.T) {
	assert.Equal(t, "18446744073709551615", FromUint64(^uint64(0)).String())
	assert.Equal(t, "0", FromUint64(0).String())

	v, err := ToUint256(FromUint64(1 << 63))
	require.NoError(t, err)
	assert.Equal(t, uint64(1<<63), v.Uint64())
}

func TestToUint256Rejects(t *testing.T) {
	over := new(big.Int).Lsh(big.NewInt(1), 256)

	tests := []struct {
		name   string
		in     decimal.Decimal
		reason string
	}{
		{name: "negative", in: decimal.NewFromInt(-1), reason: "negative value"},
		{name: "fractional", in: decimal.RequireFromString("1.5"), reason: "fractional value"},
		{name: "overflow", in: decimal.NewFromBigInt(over, 0), reason: "exceeds 256 bits"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToUint256(tt.in)
			var convErr *ConversionError
			require.True(t, errors.As(err, &convErr))
			assert.Equal(t, tt.reason, convErr.Reason)
		})
	}
}

func TestNumericBridge(t *testing.T) {
	d, err := FromUint256(new(uint256.Int).SetAllOne())
	require.NoError(t, err)

	n := ToNumeric(d)
	require.True(t, n.Valid)

	back, err := FromNumeric(n)
	require.NoError(t, err)
	assert.True(t, back.Equal(d))

	// NUMERIC values scanned from the store may carry a positive exponent.
	scaled, err := FromNumeric(pgtype.Numeric{Int: big.NewInt(5), Exp: 3, Valid: true})
	require.NoError(t, err)
	assert.Equal(t, "5000", scaled.String())

	_, err = FromNumeric(pgtype.Numeric{})
	require.Error(t, err)
	_, err = FromNumeric(pgtype.Numeric{NaN: true, Valid: true})
	require.Error(t, err)
}
