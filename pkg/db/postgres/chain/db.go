package chain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	indexermodels "github.com/canopy-network/evmindexer/pkg/db/models/indexer"
	"github.com/canopy-network/evmindexer/pkg/db/postgres"
	"github.com/canopy-network/evmindexer/pkg/metrics"
)

// DB persists blocks, transactions and logs into PostgreSQL.
//
// The insert methods take the unit of work as an explicit postgres.Executor and never
// open or commit transactions themselves. IndexBlock is the convenience path that
// wraps both inserts in a transaction of the embedded client.
type DB struct {
	postgres.Client
	Config  Config
	Metrics *metrics.Metrics

	mappingPoolMu sync.Mutex
	mappingPool   pond.Pool
	closed        bool
}

// New builds a DB on top of an existing client. No statements are issued.
func New(logger *zap.Logger, client postgres.Client, cfg Config, m *metrics.Metrics) (*DB, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	client.Logger = logger
	return &DB{
		Client:  client,
		Config:  cfg,
		Metrics: m,
	}, nil
}

// Open connects to PostgreSQL and makes sure the blocks, transactions and logs tables exist.
func Open(ctx context.Context, logger *zap.Logger, pgConfig postgres.Config, cfg Config, m *metrics.Metrics) (*DB, error) {
	client, err := postgres.New(ctx, logger, pgConfig)
	if err != nil {
		return nil, err
	}

	db, err := New(logger, client, cfg, m)
	if err != nil {
		client.Close()
		return nil, err
	}

	if err := db.InitializeDB(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Close stops the mapping workers and terminates the underlying connection pool.
func (db *DB) Close() {
	db.mappingPoolMu.Lock()
	pool := db.mappingPool
	db.closed = true
	db.mappingPoolMu.Unlock()

	if pool != nil {
		pool.StopAndWait()
	}
	db.Client.Close()
}

// InitializeDB ensures the required tables exist.
// Tables are created in dependency order because of the foreign keys between them.
func (db *DB) InitializeDB(ctx context.Context) error {
	initStart := time.Now()

	initOps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{indexermodels.BlocksTableName, db.initBlocks},
		{indexermodels.TransactionsTableName, db.initTransactions},
		{indexermodels.LogsTableName, db.initLogs},
	}

	for _, op := range initOps {
		db.Logger.Debug("Initializing table", zap.String("table", op.name))
		if err := op.fn(ctx); err != nil {
			return fmt.Errorf("init %s: %w", op.name, err)
		}

		exists, err := db.TableExists(ctx, op.name)
		if err != nil {
			return fmt.Errorf("init %s: %w", op.name, err)
		}
		if !exists {
			return fmt.Errorf("init %s: table missing from public schema after create", op.name)
		}
	}

	db.Logger.Info("Chain database initialized successfully",
		zap.Duration("duration", time.Since(initStart)))

	return nil
}
