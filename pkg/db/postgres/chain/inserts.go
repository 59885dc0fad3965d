package chain

import (
	"context"
	"fmt"

	indexermodels "github.com/canopy-network/evmindexer/pkg/db/models/indexer"
	"github.com/canopy-network/evmindexer/pkg/db/postgres"
)

// insertBlock inserts a block into the blocks table
// Accepts an Executor which can be either a transaction (pgx.Tx) or connection pool
func (db *DB) insertBlock(ctx context.Context, exec postgres.Executor, block *indexermodels.Block) error {
	query := postgres.InsertValues(indexermodels.BlocksTableName, indexermodels.BlockColumns, 1, "")
	_, err := exec.Exec(ctx, query, block.Args()...)
	return err
}

// insertTransactions bulk inserts transaction rows in batch order and returns their ids
// in the same order. The statement is only split when the rows would overflow the bind limit.
func (db *DB) insertTransactions(ctx context.Context, exec postgres.Executor, txs []*indexermodels.Transaction) ([]int64, error) {
	if len(txs) == 0 {
		return nil, nil
	}

	perStatement := postgres.MaxRowsPerStatement(len(indexermodels.TransactionColumns))
	ids := make([]int64, 0, len(txs))

	for start := 0; start < len(txs); start += perStatement {
		end := min(start+perStatement, len(txs))
		part := txs[start:end]

		query := postgres.InsertValues(
			indexermodels.TransactionsTableName,
			indexermodels.TransactionColumns,
			len(part),
			"RETURNING id, transaction_index",
		)
		args := make([]any, 0, len(part)*len(indexermodels.TransactionColumns))
		for _, tx := range part {
			args = append(args, tx.Args()...)
		}

		rows, err := exec.Query(ctx, query, args...)
		if err != nil {
			return nil, &StoreError{Op: "insert transactions", Err: err}
		}

		pos := start
		for rows.Next() {
			var id, txIndex int64
			if err := rows.Scan(&id, &txIndex); err != nil {
				rows.Close()
				return nil, &StoreError{Op: "insert transactions", Err: fmt.Errorf("scan returned id: %w", err)}
			}
			if pos >= end {
				rows.Close()
				return nil, invariantf("store returned more than %d ids", len(part))
			}
			if txIndex != txs[pos].TransactionIndex {
				rows.Close()
				return nil, invariantf("returned id %d at position %d belongs to transaction_index %d, expected %d",
					id, pos, txIndex, txs[pos].TransactionIndex)
			}
			ids = append(ids, id)
			pos++
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, &StoreError{Op: "insert transactions", Err: err}
		}
	}

	if len(ids) != len(txs) {
		return nil, invariantf("store returned %d ids for %d transactions", len(ids), len(txs))
	}
	return ids, nil
}

// insertLogs writes one chunk of log rows with a single statement.
func (db *DB) insertLogs(ctx context.Context, exec postgres.Executor, logs []*indexermodels.Log) error {
	if len(logs) == 0 {
		return nil
	}

	query := postgres.InsertValues(indexermodels.LogsTableName, indexermodels.LogColumns, len(logs), "")
	args := make([]any, 0, len(logs)*len(indexermodels.LogColumns))
	for _, l := range logs {
		args = append(args, l.Args()...)
	}

	_, err := exec.Exec(ctx, query, args...)
	return err
}
