package indexer

import (
	"github.com/shopspring/decimal"

	"github.com/canopy-network/evmindexer/pkg/numeric"
)

const LogsTableName = "logs"

// LogColumns lists the insertable logs columns in bind order.
var LogColumns = []string{
	"transaction_id", "transaction_hash", "transaction_index", "block_number",
	"block_hash", "address", "data", "log_index", "topics",
}

// Log is a persistence-ready logs row.
//
// CorrelationKey is the batch position of the parent transaction. It links the log to its
// transaction before the store has assigned an id and is never persisted. TransactionID is
// filled from the ids returned by the transaction insert.
type Log struct {
	ID               int64           `db:"id" json:"id"`
	CorrelationKey   int             `db:"-" json:"-"`
	TransactionID    int64           `db:"transaction_id" json:"transaction_id"`
	TransactionHash  []byte          `db:"transaction_hash" json:"transaction_hash"`
	TransactionIndex int64           `db:"transaction_index" json:"transaction_index"`
	BlockNumber      decimal.Decimal `db:"block_number" json:"block_number"`
	BlockHash        []byte          `db:"block_hash" json:"block_hash"`
	Address          []byte          `db:"address" json:"address"`
	Data             []byte          `db:"data" json:"data"`
	LogIndex         int64           `db:"log_index" json:"log_index"`
	Topics           [][]byte        `db:"topics" json:"topics"`
}

// Args returns the bind values matching LogColumns.
func (l *Log) Args() []any {
	topics := l.Topics
	if topics == nil {
		// NOT NULL column; an empty array is a log without topics.
		topics = [][]byte{}
	}
	return []any{
		l.TransactionID,
		l.TransactionHash,
		l.TransactionIndex,
		numeric.ToNumeric(l.BlockNumber),
		l.BlockHash,
		l.Address,
		l.Data,
		l.LogIndex,
		topics,
	}
}
