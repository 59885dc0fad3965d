package rpc

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Block is a decoded L2 block header.
// GasLimit and GasUsed are 128-bit quantities carried in a uint256.Int.
type Block struct {
	Number     uint64         `json:"number"`
	Hash       common.Hash    `json:"hash"`
	ParentHash common.Hash    `json:"parentHash"`
	GasLimit   uint256.Int    `json:"gasLimit"`
	GasUsed    uint256.Int    `json:"gasUsed"`
	Timestamp  time.Time      `json:"timestamp"`
	Miner      common.Address `json:"miner"`
	Size       uint64         `json:"size"`
}
