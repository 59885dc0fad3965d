package chain

import (
	"context"
)

// initTransactions creates the transactions table.
// id is assigned by the store and is what logs reference.
func (db *DB) initTransactions(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS transactions (
			id BIGSERIAL PRIMARY KEY,
			hash BYTEA NOT NULL UNIQUE,
			eth_tx_hash BYTEA NOT NULL,
			block_number NUMERIC NOT NULL REFERENCES blocks(number),
			block_hash BYTEA NOT NULL,
			transaction_index BIGINT NOT NULL,
			from_address BYTEA NOT NULL,
			to_address BYTEA,              -- NULL for contract creation
			value NUMERIC NOT NULL,        -- 256-bit
			nonce NUMERIC NOT NULL,
			gas_limit NUMERIC NOT NULL,    -- 128-bit
			gas_price NUMERIC NOT NULL,    -- 128-bit
			input BYTEA NOT NULL,
			v NUMERIC NOT NULL,
			r BYTEA NOT NULL,
			s BYTEA NOT NULL,
			cumulative_gas_used NUMERIC NOT NULL,
			gas_used NUMERIC NOT NULL,
			contract_address BYTEA,
			exit_code SMALLINT NOT NULL,

			UNIQUE (block_number, transaction_index)
		);

		CREATE INDEX IF NOT EXISTS idx_transactions_eth_tx_hash ON transactions(eth_tx_hash);
		CREATE INDEX IF NOT EXISTS idx_transactions_from ON transactions(from_address);
		CREATE INDEX IF NOT EXISTS idx_transactions_to ON transactions(to_address) WHERE to_address IS NOT NULL;
		CREATE INDEX IF NOT EXISTS idx_transactions_contract ON transactions(contract_address) WHERE contract_address IS NOT NULL;
	`

	return db.Exec(ctx, query)
}
