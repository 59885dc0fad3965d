package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	indexermodels "github.com/canopy-network/evmindexer/pkg/db/models/indexer"
	"github.com/canopy-network/evmindexer/pkg/db/postgres"
	"github.com/canopy-network/evmindexer/pkg/db/transform"
	"github.com/canopy-network/evmindexer/pkg/metrics"
	"github.com/canopy-network/evmindexer/pkg/numeric"
	"github.com/canopy-network/evmindexer/pkg/rpc"
	"github.com/canopy-network/evmindexer/pkg/utils"
)

// logsPerTask bounds how many logs of one transaction a single mapping task converts.
const logsPerTask = 1024

// InsertBlock maps block and inserts it with a single statement on exec.
func (db *DB) InsertBlock(ctx context.Context, exec postgres.Executor, block *rpc.Block) error {
	if block == nil {
		return db.fail(invariantf("nil block"))
	}

	start := time.Now()
	row, err := transform.Block(block)
	if err != nil {
		return db.fail(fmt.Errorf("map block %d: %w", block.Number, err))
	}

	if err := db.insertBlock(ctx, exec, row); err != nil {
		return db.fail(&StoreError{Op: "insert block", Err: err})
	}

	elapsed := time.Since(start)
	db.Metrics.BlockInserted(elapsed)
	db.Logger.Debug("Block inserted",
		zap.Uint64("block", block.Number),
		zap.Duration("duration", elapsed),
	)
	return nil
}

// InsertTransactionsAndLogs persists batch on exec and returns how many transaction and log rows were written.
//
// Transactions are inserted with one bulk statement in batch order. Every log is linked to its parent
// through the id returned at the parent's batch position, then logs are written in chunks of
// Config.LogChunkSize. The call never commits or rolls back; on error the caller must discard exec's
// unit of work.
func (db *DB) InsertTransactionsAndLogs(ctx context.Context, exec postgres.Executor, batch []rpc.TransactionWithLogs) (int, int, error) {
	if len(batch) == 0 {
		return 0, 0, nil
	}

	mapStart := time.Now()
	txRows, logRows, err := db.mapBatch(ctx, batch)
	if err != nil {
		return 0, 0, db.fail(err)
	}
	db.Metrics.ObservePhase(metrics.PhaseMap, time.Since(mapStart))

	blockNumber := batch[0].Tx.BlockNumber
	chunks := utils.Chunk(logRows, db.Config.LogChunkSize)

	db.Logger.Debug("Batch mapped",
		zap.Uint64("block", blockNumber),
		zap.Int("transactions", len(txRows)),
		zap.Int("logs", len(logRows)),
		zap.Int("log_chunks", len(chunks)),
		zap.Duration("duration", time.Since(mapStart)),
	)

	txStart := time.Now()
	ids, err := db.insertTransactions(ctx, exec, txRows)
	if err != nil {
		return 0, 0, db.fail(err)
	}
	txElapsed := time.Since(txStart)

	if err := resolveTransactionIDs(ids, logRows); err != nil {
		return 0, 0, db.fail(err)
	}

	logStart := time.Now()
	for i, chunk := range chunks {
		if err := db.insertLogs(ctx, exec, chunk); err != nil {
			return 0, 0, db.fail(&StoreError{
				Op:  fmt.Sprintf("insert logs chunk %d/%d", i+1, len(chunks)),
				Err: err,
			})
		}
	}

	// Row counters only move once every statement of the call has succeeded.
	db.Metrics.TransactionsInserted(len(ids), txElapsed)
	for _, chunk := range chunks {
		db.Metrics.LogChunkInserted(len(chunk))
	}
	if len(chunks) > 0 {
		db.Metrics.ObservePhase(metrics.PhaseLogs, time.Since(logStart))
	}

	db.Logger.Debug("Transactions and logs inserted",
		zap.Uint64("block", blockNumber),
		zap.Int("transactions", len(txRows)),
		zap.Int("logs", len(logRows)),
		zap.Duration("duration", time.Since(txStart)),
	)

	return len(txRows), len(logRows), nil
}

// mapBatch converts the batch into rows on the mapping pool.
// Each task writes only its own slots, so the returned slices follow batch order and
// logs come out flattened in (transaction position, log position) order.
func (db *DB) mapBatch(ctx context.Context, batch []rpc.TransactionWithLogs) ([]*indexermodels.Transaction, []*indexermodels.Log, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	offsets := make([]int, len(batch))
	next := 0
	for i, item := range batch {
		if item.Tx == nil {
			return nil, nil, invariantf("nil transaction at batch position %d", i)
		}
		for j, l := range item.Logs {
			if l == nil {
				return nil, nil, invariantf("nil log %d of transaction at batch position %d", j, i)
			}
		}
		offsets[i] = next
		next += len(item.Logs)
	}

	txRows := make([]*indexermodels.Transaction, len(batch))
	logRows := make([]*indexermodels.Log, rpc.CountLogs(batch))

	pool, err := db.workerPool()
	if err != nil {
		return nil, nil, err
	}
	group := pool.NewGroupContext(ctx)
	groupCtx := group.Context()

	for i := range batch {
		item := batch[i]
		group.SubmitErr(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			row, err := transform.Transaction(item.Tx)
			if err != nil {
				return fmt.Errorf("map transaction %s: %w", item.Tx.Hash.Hex(), err)
			}
			txRows[i] = row
			return nil
		})

		for from := 0; from < len(item.Logs); from += logsPerTask {
			to := min(from+logsPerTask, len(item.Logs))
			group.SubmitErr(func() error {
				for j := from; j < to; j++ {
					if err := groupCtx.Err(); err != nil {
						return err
					}
					row, err := transform.Log(item.Logs[j], i)
					if err != nil {
						return fmt.Errorf("map log %d of transaction %s: %w", item.Logs[j].LogIndex, item.Tx.Hash.Hex(), err)
					}
					logRows[offsets[i]+j] = row
				}
				return nil
			})
		}
	}

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}
	return txRows, logRows, nil
}

// resolveTransactionIDs sets each log's TransactionID from the id at its correlation key.
// Nothing is written unless every key resolves.
func resolveTransactionIDs(ids []int64, logs []*indexermodels.Log) error {
	for _, l := range logs {
		if l.CorrelationKey < 0 || l.CorrelationKey >= len(ids) {
			return invariantf("log %d correlation key %d outside %d transaction ids", l.LogIndex, l.CorrelationKey, len(ids))
		}
	}
	for _, l := range logs {
		l.TransactionID = ids[l.CorrelationKey]
	}
	return nil
}

// fail records err against the error counter and returns it unchanged.
func (db *DB) fail(err error) error {
	var (
		convErr  *numeric.ConversionError
		storeErr *StoreError
	)
	switch {
	case errors.Is(err, ErrInvariantViolation):
		db.Metrics.IncError(metrics.ErrorInvariant)
		db.Logger.Error("Ingestion invariant violated", zap.Error(err))
	case errors.As(err, &convErr):
		db.Metrics.IncError(metrics.ErrorConversion)
	case errors.As(err, &storeErr):
		db.Metrics.IncError(metrics.ErrorStore)
	}
	return err
}
