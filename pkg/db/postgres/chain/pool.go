package chain

import (
	"errors"
	"runtime"

	"github.com/alitto/pond/v2"
)

const maxMappingParallelism = 512

// ErrClosed is returned when the DB is used after Close.
var ErrClosed = errors.New("chain db closed")

// workerPool returns the shared pool used to map rows in parallel, building it on first use.
// Pool size defaults to four workers per CPU but can be overridden through Config.
func (db *DB) workerPool() (pond.Pool, error) {
	db.mappingPoolMu.Lock()
	defer db.mappingPoolMu.Unlock()

	if db.closed {
		return nil, ErrClosed
	}
	if db.mappingPool == nil {
		db.mappingPool = pond.NewPool(MappingParallelism(db.Config.MappingParallelism))
	}
	return db.mappingPool, nil
}

// MappingParallelism calculates the number of mapping workers.
func MappingParallelism(override int) int {
	if override > 0 {
		return min(override, maxMappingParallelism)
	}

	n := runtime.NumCPU() * 4
	if n < 2 {
		n = 2
	}
	return min(n, maxMappingParallelism)
}
