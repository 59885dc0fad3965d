package chain

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	indexermodels "github.com/canopy-network/evmindexer/pkg/db/models/indexer"
	"github.com/canopy-network/evmindexer/pkg/db/postgres"
)

// DefaultLogChunkSize is the number of log rows written per insert statement.
const DefaultLogChunkSize = 5000

// Config tunes the ingestion engine.
type Config struct {
	// LogChunkSize bounds the rows of a single log insert statement.
	LogChunkSize int `env:"INDEXER_LOG_CHUNK_SIZE" envDefault:"5000"`
	// MappingParallelism overrides the number of mapping workers; 0 picks it from the CPU count.
	MappingParallelism int `env:"INDEXER_MAPPING_PARALLELISM" envDefault:"0"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse indexer config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MaxLogChunkSize is the largest chunk that fits in one statement.
func MaxLogChunkSize() int {
	return postgres.MaxRowsPerStatement(len(indexermodels.LogColumns))
}

// Validate rejects settings the store cannot execute.
func (c Config) Validate() error {
	if c.LogChunkSize <= 0 {
		return fmt.Errorf("log chunk size must be positive, got %d", c.LogChunkSize)
	}
	if max := MaxLogChunkSize(); c.LogChunkSize > max {
		return fmt.Errorf("log chunk size %d exceeds the %d rows that fit in one statement", c.LogChunkSize, max)
	}
	if c.MappingParallelism < 0 {
		return fmt.Errorf("mapping parallelism must not be negative, got %d", c.MappingParallelism)
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.LogChunkSize == 0 {
		c.LogChunkSize = DefaultLogChunkSize
	}
	return c
}
