package chain

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/canopy-network/evmindexer/pkg/rpc"
)

// IndexResult summarizes one committed block.
type IndexResult struct {
	Transactions int
	Logs         int
	Duration     time.Duration
}

// IndexBlock inserts block and its transactions and logs inside one database transaction.
// Any failure rolls back everything written for the block.
func (db *DB) IndexBlock(ctx context.Context, block *rpc.Block, batch []rpc.TransactionWithLogs) (IndexResult, error) {
	start := time.Now()

	var result IndexResult
	err := db.BeginFunc(ctx, func(tx pgx.Tx) error {
		if err := db.InsertBlock(ctx, tx, block); err != nil {
			return err
		}

		txCount, logCount, err := db.InsertTransactionsAndLogs(ctx, tx, batch)
		if err != nil {
			return err
		}

		result.Transactions, result.Logs = txCount, logCount
		return nil
	})
	if err != nil {
		return IndexResult{}, err
	}

	result.Duration = time.Since(start)
	db.Logger.Info("Block indexed",
		zap.Uint64("block", block.Number),
		zap.Int("transactions", result.Transactions),
		zap.Int("logs", result.Logs),
		zap.Duration("duration", result.Duration),
	)
	return result, nil
}
