package indexer

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/canopy-network/evmindexer/pkg/numeric"
)

const BlocksTableName = "blocks"

// BlockColumns lists the blocks columns in bind order.
var BlockColumns = []string{
	"number", "hash", "parent_hash", "gas_limit", "gas_used", "timestamp", "miner", "size",
}

// Block is a persistence-ready blocks row.
type Block struct {
	Number     decimal.Decimal `db:"number" json:"number"`
	Hash       []byte          `db:"hash" json:"hash"`
	ParentHash []byte          `db:"parent_hash" json:"parent_hash"`
	GasLimit   decimal.Decimal `db:"gas_limit" json:"gas_limit"`
	GasUsed    decimal.Decimal `db:"gas_used" json:"gas_used"`
	Timestamp  time.Time       `db:"timestamp" json:"timestamp"`
	Miner      []byte          `db:"miner" json:"miner"`
	Size       decimal.Decimal `db:"size" json:"size"`
}

// Args returns the bind values matching BlockColumns.
func (b *Block) Args() []any {
	return []any{
		numeric.ToNumeric(b.Number),
		b.Hash,
		b.ParentHash,
		numeric.ToNumeric(b.GasLimit),
		numeric.ToNumeric(b.GasUsed),
		b.Timestamp,
		b.Miner,
		numeric.ToNumeric(b.Size),
	}
}
