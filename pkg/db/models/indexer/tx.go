package indexer

import (
	"github.com/shopspring/decimal"

	"github.com/canopy-network/evmindexer/pkg/numeric"
)

const TransactionsTableName = "transactions"

// TransactionColumns lists the insertable transactions columns in bind order.
// The id column is assigned by the store and returned from the insert.
var TransactionColumns = []string{
	"hash", "eth_tx_hash", "block_number", "block_hash", "transaction_index",
	"from_address", "to_address", "value", "nonce", "gas_limit", "gas_price",
	"input", "v", "r", "s", "cumulative_gas_used", "gas_used", "contract_address", "exit_code",
}

// Transaction is a persistence-ready transactions row.
type Transaction struct {
	ID                int64           `db:"id" json:"id"`
	Hash              []byte          `db:"hash" json:"hash"`
	EthTxHash         []byte          `db:"eth_tx_hash" json:"eth_tx_hash"`
	BlockNumber       decimal.Decimal `db:"block_number" json:"block_number"`
	BlockHash         []byte          `db:"block_hash" json:"block_hash"`
	TransactionIndex  int64           `db:"transaction_index" json:"transaction_index"`
	FromAddress       []byte          `db:"from_address" json:"from_address"`
	ToAddress         []byte          `db:"to_address" json:"to_address,omitempty"` // nil for contract creation
	Value             decimal.Decimal `db:"value" json:"value"`
	Nonce             decimal.Decimal `db:"nonce" json:"nonce"`
	GasLimit          decimal.Decimal `db:"gas_limit" json:"gas_limit"`
	GasPrice          decimal.Decimal `db:"gas_price" json:"gas_price"`
	Input             []byte          `db:"input" json:"input"`
	V                 decimal.Decimal `db:"v" json:"v"`
	R                 []byte          `db:"r" json:"r"`
	S                 []byte          `db:"s" json:"s"`
	CumulativeGasUsed decimal.Decimal `db:"cumulative_gas_used" json:"cumulative_gas_used"`
	GasUsed           decimal.Decimal `db:"gas_used" json:"gas_used"`
	ContractAddress   []byte          `db:"contract_address" json:"contract_address,omitempty"`
	ExitCode          int16           `db:"exit_code" json:"exit_code"`
}

// Args returns the bind values matching TransactionColumns.
// A nil byte slice binds as NULL, which is how optional addresses are stored.
func (t *Transaction) Args() []any {
	return []any{
		t.Hash,
		t.EthTxHash,
		numeric.ToNumeric(t.BlockNumber),
		t.BlockHash,
		t.TransactionIndex,
		t.FromAddress,
		t.ToAddress,
		numeric.ToNumeric(t.Value),
		numeric.ToNumeric(t.Nonce),
		numeric.ToNumeric(t.GasLimit),
		numeric.ToNumeric(t.GasPrice),
		t.Input,
		numeric.ToNumeric(t.V),
		t.R,
		t.S,
		numeric.ToNumeric(t.CumulativeGasUsed),
		numeric.ToNumeric(t.GasUsed),
		t.ContractAddress,
		t.ExitCode,
	}
}
