package chain

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/canopy-network/evmindexer/pkg/db/postgres"
)

// deleteLogsAtBlock deletes all logs of the specified block
func (db *DB) deleteLogsAtBlock(ctx context.Context, exec postgres.Executor, number uint64) error {
	query := `DELETE FROM logs WHERE block_number = $1`
	_, err := exec.Exec(ctx, query, blockNumberArg(number))
	return err
}

// deleteTransactionsAtBlock deletes all transactions of the specified block
func (db *DB) deleteTransactionsAtBlock(ctx context.Context, exec postgres.Executor, number uint64) error {
	query := `DELETE FROM transactions WHERE block_number = $1`
	_, err := exec.Exec(ctx, query, blockNumberArg(number))
	return err
}

// deleteBlock deletes the block row itself
func (db *DB) deleteBlock(ctx context.Context, exec postgres.Executor, number uint64) error {
	query := `DELETE FROM blocks WHERE number = $1`
	_, err := exec.Exec(ctx, query, blockNumberArg(number))
	return err
}

// DeleteBlock deletes a block with its transactions and logs.
// This is used to rewind a height before it is ingested again after a reorg.
func (db *DB) DeleteBlock(ctx context.Context, number uint64) error {
	return db.BeginFunc(ctx, func(tx pgx.Tx) error {
		// Order matters: delete dependent data first
		deleteFuncs := []struct {
			name string
			fn   func(context.Context, postgres.Executor, uint64) error
		}{
			{"logs", db.deleteLogsAtBlock},
			{"transactions", db.deleteTransactionsAtBlock},
			{"blocks", db.deleteBlock},
		}

		for _, df := range deleteFuncs {
			if err := df.fn(ctx, tx, number); err != nil {
				return fmt.Errorf("failed to delete %s at block %d: %w", df.name, number, err)
			}
		}

		return nil
	})
}
