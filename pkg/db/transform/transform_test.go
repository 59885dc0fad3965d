package transform

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canopy-network/evmindexer/pkg/numeric"
	"github.com/canopy-network/evmindexer/pkg/rpc"
)

func testTransaction() *rpc.Transaction {
	to := common.HexToAddress("0x00000000000000000000000000000000000000b0")
	return &rpc.Transaction{
		Hash:              common.HexToHash("0x01"),
		BlockNumber:       42,
		BlockHash:         common.HexToHash("0xb42"),
		TransactionIndex:  3,
		From:              common.HexToAddress("0x00000000000000000000000000000000000000a0"),
		To:                &to,
		Value:             *uint256.MustFromDecimal("1000000000000000000000"),
		Nonce:             7,
		GasLimit:          *uint256.NewInt(21000),
		GasPrice:          *uint256.NewInt(1_000_000_000),
		Input:             []byte{0xde, 0xad, 0xbe, 0xef},
		V:                 0x1c,
		R:                 common.HexToHash("0x1111"),
		S:                 common.HexToHash("0x2222"),
		CumulativeGasUsed: *uint256.NewInt(42000),
		GasUsed:           *uint256.NewInt(21000),
		ExitCode:          0,
	}
}

func TestBlock(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b := &rpc.Block{
		Number:     ^uint64(0),
		Hash:       common.HexToHash("0xaa"),
		ParentHash: common.HexToHash("0xbb"),
		GasLimit:   *new(uint256.Int).Lsh(uint256.NewInt(1), 100),
		GasUsed:    *uint256.NewInt(12345),
		Timestamp:  ts,
		Miner:      common.HexToAddress("0xcc"),
		Size:       1024,
	}

	row, err := Block(b)
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551615", row.Number.String())
	assert.Equal(t, "1267650600228229401496703205376", row.GasLimit.String())
	assert.Equal(t, "12345", row.GasUsed.String())
	assert.Equal(t, b.Hash.Bytes(), row.Hash)
	assert.Equal(t, b.ParentHash.Bytes(), row.ParentHash)
	assert.Equal(t, b.Miner.Bytes(), row.Miner)
	assert.Equal(t, ts, row.Timestamp)
	assert.Equal(t, "1024", row.Size.String())
}

func TestBlockRejectsWideGas(t *testing.T) {
	b := &rpc.Block{GasUsed: *new(uint256.Int).Lsh(uint256.NewInt(1), 200)}

	row, err := Block(b)
	require.Error(t, err)
	assert.Nil(t, row)
	assert.Contains(t, err.Error(), "gas_used")

	var convErr *numeric.ConversionError
	assert.True(t, errors.As(err, &convErr))
}

func TestTransaction(t *testing.T) {
	tx := testTransaction()

	row, err := Transaction(tx)
	require.NoError(t, err)

	assert.Equal(t, tx.Hash.Bytes(), row.Hash)
	assert.Len(t, row.EthTxHash, common.HashLength)
	assert.Equal(t, "42", row.BlockNumber.String())
	assert.Equal(t, int64(3), row.TransactionIndex)
	assert.Equal(t, tx.To.Bytes(), row.ToAddress)
	assert.Nil(t, row.ContractAddress)
	assert.Equal(t, "1000000000000000000000", row.Value.String())
	assert.Equal(t, "7", row.Nonce.String())
	assert.Equal(t, "21000", row.GasLimit.String())
	assert.Equal(t, "1000000000", row.GasPrice.String())
	assert.Equal(t, "28", row.V.String())
	assert.Equal(t, tx.R[:], row.R)
	assert.Equal(t, tx.S[:], row.S)
	assert.Equal(t, "42000", row.CumulativeGasUsed.String())
	assert.Equal(t, int16(0), row.ExitCode)
	assert.Zero(t, row.ID)
}

func TestTransactionContractCreation(t *testing.T) {
	tx := testTransaction()
	created := common.HexToAddress("0x00000000000000000000000000000000000000c0")
	tx.To = nil
	tx.ContractAddress = &created
	tx.Input = nil

	row, err := Transaction(tx)
	require.NoError(t, err)
	assert.Nil(t, row.ToAddress)
	assert.Equal(t, created.Bytes(), row.ContractAddress)
	assert.NotNil(t, row.Input)
	assert.Empty(t, row.Input)
}

func TestTransactionRejectsWideGasPrice(t *testing.T) {
	tx := testTransaction()
	tx.GasPrice = *new(uint256.Int).Lsh(uint256.NewInt(1), 129)

	row, err := Transaction(tx)
	require.Error(t, err)
	assert.Nil(t, row)

	var convErr *numeric.ConversionError
	assert.True(t, errors.As(err, &convErr))
}

func TestTransactionFullWidthValue(t *testing.T) {
	tx := testTransaction()
	tx.Value.SetAllOne()

	row, err := Transaction(tx)
	require.NoError(t, err)
	assert.Equal(t, "115792089237316195423570985008687907853269984665640564039457584007913129639935", row.Value.String())
}

func TestEthTxHashMatchesLegacyTx(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*rpc.Transaction)
	}{
		{name: "call", mutate: func(*rpc.Transaction) {}},
		{name: "contract creation", mutate: func(tx *rpc.Transaction) { tx.To = nil }},
		{name: "empty input", mutate: func(tx *rpc.Transaction) { tx.Input = nil }},
		{name: "eip155 v", mutate: func(tx *rpc.Transaction) { tx.V = 71402*2 + 35 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := testTransaction()
			tt.mutate(tx)

			legacy := types.NewTx(&types.LegacyTx{
				Nonce:    tx.Nonce,
				GasPrice: tx.GasPrice.ToBig(),
				Gas:      tx.GasLimit.Uint64(),
				To:       tx.To,
				Value:    tx.Value.ToBig(),
				Data:     tx.Input,
				V:        new(big.Int).SetUint64(tx.V),
				R:        new(big.Int).SetBytes(tx.R[:]),
				S:        new(big.Int).SetBytes(tx.S[:]),
			})

			got, err := EthTxHash(tx)
			require.NoError(t, err)
			assert.Equal(t, legacy.Hash(), got)

			// Reproducible for the same contents.
			again, err := EthTxHash(tx)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestEthTxHashDependsOnContents(t *testing.T) {
	a := testTransaction()
	b := testTransaction()
	b.Nonce++

	ha, err := EthTxHash(a)
	require.NoError(t, err)
	hb, err := EthTxHash(b)
	require.NoError(t, err)
	assert.NotEqual(t, ha, hb)
}

func TestLog(t *testing.T) {
	l := &rpc.Log{
		TransactionHash:  common.HexToHash("0x01"),
		TransactionIndex: 3,
		BlockNumber:      42,
		BlockHash:        common.HexToHash("0xb42"),
		Address:          common.HexToAddress("0xdd"),
		LogIndex:         9,
		Topics:           []common.Hash{common.HexToHash("0x7431"), common.HexToHash("0x02")},
	}

	row, err := Log(l, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, row.CorrelationKey)
	assert.Zero(t, row.TransactionID)
	assert.Equal(t, int64(9), row.LogIndex)
	assert.Equal(t, "42", row.BlockNumber.String())
	require.Len(t, row.Topics, 2)
	assert.Equal(t, l.Topics[1].Bytes(), row.Topics[1])
	assert.NotNil(t, row.Data)
}

func TestLogWithoutTopics(t *testing.T) {
	row, err := Log(&rpc.Log{}, 0)
	require.NoError(t, err)
	assert.NotNil(t, row.Topics)
	assert.Empty(t, row.Topics)
}
