package transform

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/canopy-network/evmindexer/pkg/db/models/indexer"
	"github.com/canopy-network/evmindexer/pkg/numeric"
	"github.com/canopy-network/evmindexer/pkg/rpc"
)

// Transaction converts a decoded transaction into the transactions row, including the
// derived Ethereum transaction hash.
func Transaction(tx *rpc.Transaction) (*indexer.Transaction, error) {
	ethTxHash, err := EthTxHash(tx)
	if err != nil {
		return nil, err
	}

	value, err := u256("value", &tx.Value)
	if err != nil {
		return nil, err
	}
	gasLimit, err := u128("gas_limit", &tx.GasLimit)
	if err != nil {
		return nil, err
	}
	gasPrice, err := u128("gas_price", &tx.GasPrice)
	if err != nil {
		return nil, err
	}
	cumulativeGasUsed, err := u128("cumulative_gas_used", &tx.CumulativeGasUsed)
	if err != nil {
		return nil, err
	}
	gasUsed, err := u128("gas_used", &tx.GasUsed)
	if err != nil {
		return nil, err
	}

	return &indexer.Transaction{
		Hash:              tx.Hash.Bytes(),
		EthTxHash:         ethTxHash.Bytes(),
		BlockNumber:       numeric.FromUint64(tx.BlockNumber),
		BlockHash:         tx.BlockHash.Bytes(),
		TransactionIndex:  int64(tx.TransactionIndex),
		FromAddress:       tx.From.Bytes(),
		ToAddress:         optionalAddress(tx.To),
		Value:             value,
		Nonce:             numeric.FromUint64(tx.Nonce),
		GasLimit:          gasLimit,
		GasPrice:          gasPrice,
		Input:             nonNil(tx.Input),
		V:                 numeric.FromUint64(tx.V),
		R:                 append([]byte(nil), tx.R[:]...),
		S:                 append([]byte(nil), tx.S[:]...),
		CumulativeGasUsed: cumulativeGasUsed,
		GasUsed:           gasUsed,
		ContractAddress:   optionalAddress(tx.ContractAddress),
		ExitCode:          int16(tx.ExitCode),
	}, nil
}

// EthTxHash returns the hash of the transaction in legacy Ethereum form:
// keccak256(rlp([nonce, gasPrice, gasLimit, to, value, input, v, r, s])).
// A contract creation encodes the recipient as the empty string.
func EthTxHash(tx *rpc.Transaction) (common.Hash, error) {
	if tx.GasPrice.BitLen() > numeric.Uint128Bits {
		return common.Hash{}, fmt.Errorf("gas_price: %w", &numeric.ConversionError{Value: tx.GasPrice.Dec(), Reason: "exceeds 128 bits"})
	}
	if tx.GasLimit.BitLen() > numeric.Uint128Bits {
		return common.Hash{}, fmt.Errorf("gas_limit: %w", &numeric.ConversionError{Value: tx.GasLimit.Dec(), Reason: "exceeds 128 bits"})
	}

	var to []byte
	if tx.To != nil {
		to = tx.To.Bytes()
	}

	enc, err := rlp.EncodeToBytes([]any{
		tx.Nonce,
		tx.GasPrice.ToBig(),
		tx.GasLimit.ToBig(),
		to,
		tx.Value.ToBig(),
		tx.Input,
		tx.V,
		new(big.Int).SetBytes(tx.R[:]),
		new(big.Int).SetBytes(tx.S[:]),
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("rlp encode transaction %s: %w", tx.Hash.Hex(), err)
	}
	return crypto.Keccak256Hash(enc), nil
}
