package rpc

import "github.com/ethereum/go-ethereum/common"

// Log is a decoded event log emitted by a transaction.
type Log struct {
	TransactionHash  common.Hash    `json:"transactionHash"`
	TransactionIndex uint32         `json:"transactionIndex"`
	BlockNumber      uint64         `json:"blockNumber"`
	BlockHash        common.Hash    `json:"blockHash"`
	Address          common.Address `json:"address"`
	Data             []byte         `json:"data"`
	LogIndex         uint32         `json:"logIndex"`
	Topics           []common.Hash  `json:"topics"`
}
