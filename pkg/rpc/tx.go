package rpc

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Transaction is a decoded transaction together with its receipt outcome.
//
// Value is a full 256-bit amount. GasLimit, GasPrice, CumulativeGasUsed and GasUsed are
// 128-bit quantities; wider values are rejected at mapping time rather than truncated.
type Transaction struct {
	Hash             common.Hash     `json:"hash"`
	BlockNumber      uint64          `json:"blockNumber"`
	BlockHash        common.Hash     `json:"blockHash"`
	TransactionIndex uint32          `json:"transactionIndex"`
	From             common.Address  `json:"from"`
	To               *common.Address `json:"to"` // nil for contract creation
	Value            uint256.Int     `json:"value"`
	Nonce            uint64          `json:"nonce"`
	GasLimit         uint256.Int     `json:"gasLimit"`
	GasPrice         uint256.Int     `json:"gasPrice"`
	Input            []byte          `json:"input"`
	V                uint64          `json:"v"`
	R                [32]byte        `json:"r"`
	S                [32]byte        `json:"s"`

	// Receipt fields
	CumulativeGasUsed uint256.Int     `json:"cumulativeGasUsed"`
	GasUsed           uint256.Int     `json:"gasUsed"`
	ContractAddress   *common.Address `json:"contractAddress"`
	ExitCode          uint8           `json:"exitCode"`
}
