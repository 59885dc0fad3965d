package chain

import (
	"context"
)

// initLogs creates the logs table. Topics keep their emitted order.
func (db *DB) initLogs(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS logs (
			id BIGSERIAL PRIMARY KEY,
			transaction_id BIGINT NOT NULL REFERENCES transactions(id),
			transaction_hash BYTEA NOT NULL,
			transaction_index BIGINT NOT NULL,
			block_number NUMERIC NOT NULL,
			block_hash BYTEA NOT NULL,
			address BYTEA NOT NULL,
			data BYTEA NOT NULL,
			log_index BIGINT NOT NULL,
			topics BYTEA[] NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_logs_transaction_id ON logs(transaction_id);
		CREATE INDEX IF NOT EXISTS idx_logs_block_number ON logs(block_number);
		CREATE INDEX IF NOT EXISTS idx_logs_address ON logs(address);
	`

	return db.Exec(ctx, query)
}
