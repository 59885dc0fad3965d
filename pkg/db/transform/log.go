package transform

import (
	"github.com/canopy-network/evmindexer/pkg/db/models/indexer"
	"github.com/canopy-network/evmindexer/pkg/numeric"
	"github.com/canopy-network/evmindexer/pkg/rpc"
)

// Log converts a decoded log into a logs row tagged with correlationKey, the batch
// position of its parent transaction. TransactionID stays zero until the parent's id is known.
func Log(l *rpc.Log, correlationKey int) (*indexer.Log, error) {
	topics := make([][]byte, len(l.Topics))
	for i := range l.Topics {
		topics[i] = l.Topics[i].Bytes()
	}

	return &indexer.Log{
		CorrelationKey:   correlationKey,
		TransactionHash:  l.TransactionHash.Bytes(),
		TransactionIndex: int64(l.TransactionIndex),
		BlockNumber:      numeric.FromUint64(l.BlockNumber),
		BlockHash:        l.BlockHash.Bytes(),
		Address:          l.Address.Bytes(),
		Data:             nonNil(l.Data),
		LogIndex:         int64(l.LogIndex),
		Topics:           topics,
	}, nil
}
