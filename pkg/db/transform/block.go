package transform

import (
	"github.com/canopy-network/evmindexer/pkg/db/models/indexer"
	"github.com/canopy-network/evmindexer/pkg/numeric"
	"github.com/canopy-network/evmindexer/pkg/rpc"
)

// Block converts a decoded block into the blocks row.
func Block(b *rpc.Block) (*indexer.Block, error) {
	gasLimit, err := u128("gas_limit", &b.GasLimit)
	if err != nil {
		return nil, err
	}
	gasUsed, err := u128("gas_used", &b.GasUsed)
	if err != nil {
		return nil, err
	}

	return &indexer.Block{
		Number:     numeric.FromUint64(b.Number),
		Hash:       b.Hash.Bytes(),
		ParentHash: b.ParentHash.Bytes(),
		GasLimit:   gasLimit,
		GasUsed:    gasUsed,
		Timestamp:  b.Timestamp.UTC(),
		Miner:      b.Miner.Bytes(),
		Size:       numeric.FromUint64(b.Size),
	}, nil
}
