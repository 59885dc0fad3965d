package chain

import (
	"context"
)

// initBlocks creates the blocks table
func (db *DB) initBlocks(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS blocks (
			number NUMERIC PRIMARY KEY,
			hash BYTEA NOT NULL UNIQUE,
			parent_hash BYTEA NOT NULL,
			gas_limit NUMERIC NOT NULL,
			gas_used NUMERIC NOT NULL,
			timestamp TIMESTAMP WITH TIME ZONE NOT NULL,
			miner BYTEA NOT NULL,
			size NUMERIC NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_blocks_timestamp ON blocks(timestamp);
	`

	return db.Exec(ctx, query)
}
