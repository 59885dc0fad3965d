package chain

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	indexermodels "github.com/canopy-network/evmindexer/pkg/db/models/indexer"
	"github.com/canopy-network/evmindexer/pkg/db/postgres"
	"github.com/canopy-network/evmindexer/pkg/numeric"
)

// blockNumberArg binds a block number against the NUMERIC block_number columns.
func blockNumberArg(number uint64) pgtype.Numeric {
	return numeric.ToNumeric(numeric.FromUint64(number))
}

// numericDest pairs a scan target with the decimal it is decoded into.
type numericDest struct {
	src pgtype.Numeric
	dst *decimal.Decimal
}

func decodeNumerics(fields []*numericDest) error {
	for _, f := range fields {
		d, err := numeric.FromNumeric(f.src)
		if err != nil {
			return err
		}
		*f.dst = d
	}
	return nil
}

// GetBlock retrieves a block by number
func (db *DB) GetBlock(ctx context.Context, number uint64) (*indexermodels.Block, error) {
	query := `
		SELECT number, hash, parent_hash, gas_limit, gas_used, timestamp, miner, size
		FROM blocks
		WHERE number = $1
	`

	var (
		block                        indexermodels.Block
		num, gasLimit, gasUsed, size numericDest
	)
	num.dst, gasLimit.dst, gasUsed.dst, size.dst = &block.Number, &block.GasLimit, &block.GasUsed, &block.Size

	err := db.Client.Pool.QueryRow(ctx, query, blockNumberArg(number)).Scan(
		&num.src, &block.Hash, &block.ParentHash, &gasLimit.src, &gasUsed.src,
		&block.Timestamp, &block.Miner, &size.src,
	)
	if err != nil {
		if postgres.IsNoRows(err) {
			return nil, fmt.Errorf("block %d not found: %w", number, err)
		}
		return nil, fmt.Errorf("failed to get block: %w", err)
	}

	if err := decodeNumerics([]*numericDest{&num, &gasLimit, &gasUsed, &size}); err != nil {
		return nil, fmt.Errorf("decode block %d: %w", number, err)
	}
	return &block, nil
}

// HasBlock checks if a block exists at a given number
func (db *DB) HasBlock(ctx context.Context, number uint64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM blocks WHERE number = $1)`

	var exists bool
	err := db.Client.Pool.QueryRow(ctx, query, blockNumberArg(number)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check block existence: %w", err)
	}

	return exists, nil
}

// GetTransactionsByBlock returns the transactions of a block ordered by transaction_index.
func (db *DB) GetTransactionsByBlock(ctx context.Context, number uint64) ([]*indexermodels.Transaction, error) {
	query := `
		SELECT id, hash, eth_tx_hash, block_number, block_hash, transaction_index,
		       from_address, to_address, value, nonce, gas_limit, gas_price,
		       input, v, r, s, cumulative_gas_used, gas_used, contract_address, exit_code
		FROM transactions
		WHERE block_number = $1
		ORDER BY transaction_index
	`

	rows, err := db.Client.Pool.Query(ctx, query, blockNumberArg(number))
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	txs, err := pgx.CollectRows(rows, scanTransaction)
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions of block %d: %w", number, err)
	}
	return txs, nil
}

func scanTransaction(row pgx.CollectableRow) (*indexermodels.Transaction, error) {
	var (
		tx                                               indexermodels.Transaction
		blockNumber, value, nonce, gasLimit, gasPrice, v numericDest
		cumulativeGasUsed, gasUsed                       numericDest
	)
	blockNumber.dst, value.dst, nonce.dst = &tx.BlockNumber, &tx.Value, &tx.Nonce
	gasLimit.dst, gasPrice.dst, v.dst = &tx.GasLimit, &tx.GasPrice, &tx.V
	cumulativeGasUsed.dst, gasUsed.dst = &tx.CumulativeGasUsed, &tx.GasUsed

	err := row.Scan(
		&tx.ID, &tx.Hash, &tx.EthTxHash, &blockNumber.src, &tx.BlockHash, &tx.TransactionIndex,
		&tx.FromAddress, &tx.ToAddress, &value.src, &nonce.src, &gasLimit.src, &gasPrice.src,
		&tx.Input, &v.src, &tx.R, &tx.S, &cumulativeGasUsed.src, &gasUsed.src, &tx.ContractAddress, &tx.ExitCode,
	)
	if err != nil {
		return nil, err
	}

	err = decodeNumerics([]*numericDest{&blockNumber, &value, &nonce, &gasLimit, &gasPrice, &v, &cumulativeGasUsed, &gasUsed})
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetLogsByTransaction returns the logs of a transaction ordered by log_index.
func (db *DB) GetLogsByTransaction(ctx context.Context, transactionID int64) ([]*indexermodels.Log, error) {
	query := `
		SELECT id, transaction_id, transaction_hash, transaction_index, block_number,
		       block_hash, address, data, log_index, topics
		FROM logs
		WHERE transaction_id = $1
		ORDER BY log_index
	`

	rows, err := db.Client.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}

	logs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*indexermodels.Log, error) {
		var (
			l           indexermodels.Log
			blockNumber numericDest
		)
		blockNumber.dst = &l.BlockNumber

		if err := row.Scan(
			&l.ID, &l.TransactionID, &l.TransactionHash, &l.TransactionIndex, &blockNumber.src,
			&l.BlockHash, &l.Address, &l.Data, &l.LogIndex, &l.Topics,
		); err != nil {
			return nil, err
		}
		if err := decodeNumerics([]*numericDest{&blockNumber}); err != nil {
			return nil, err
		}
		return &l, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan logs of transaction %d: %w", transactionID, err)
	}
	return logs, nil
}

// CountLogsByBlock counts the logs stored for a block
func (db *DB) CountLogsByBlock(ctx context.Context, number uint64) (int64, error) {
	query := `SELECT COUNT(*) FROM logs WHERE block_number = $1`

	var count int64
	if err := db.Client.Pool.QueryRow(ctx, query, blockNumberArg(number)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count logs: %w", err)
	}
	return count, nil
}
