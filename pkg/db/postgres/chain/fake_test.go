package chain

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	indexermodels "github.com/canopy-network/evmindexer/pkg/db/models/indexer"
)

// statement is one recorded call against fakeExecutor.
type statement struct {
	sql  string
	rows int
	args []any
}

func (s statement) table() string {
	switch {
	case strings.HasPrefix(s.sql, `INSERT INTO "blocks"`):
		return indexermodels.BlocksTableName
	case strings.HasPrefix(s.sql, `INSERT INTO "transactions"`):
		return indexermodels.TransactionsTableName
	case strings.HasPrefix(s.sql, `INSERT INTO "logs"`):
		return indexermodels.LogsTableName
	}
	return ""
}

// fakeExecutor records statements and assigns sequential ids to inserted transactions.
type fakeExecutor struct {
	nextID     int64
	statements []statement

	// failLogChunk makes the n-th (1-based) log insert fail.
	failLogChunk int
	// failTransactions makes the transaction insert fail.
	failTransactions bool
	// reverseReturning returns RETURNING rows in reverse order.
	reverseReturning bool
	// dropReturning omits the last RETURNING row.
	dropReturning bool

	logChunks int
}

var errFakeStore = errors.New("fake store failure")

func newFakeExecutor() *fakeExecutor {
	return &fakeExecutor{nextID: 100}
}

func (f *fakeExecutor) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	st := f.record(sql, args)
	if st.table() == indexermodels.LogsTableName {
		f.logChunks++
		if f.logChunks == f.failLogChunk {
			return pgconn.CommandTag{}, errFakeStore
		}
	}
	return pgconn.NewCommandTag(fmt.Sprintf("INSERT 0 %d", st.rows)), nil
}

func (f *fakeExecutor) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	st := f.record(sql, args)
	if f.failTransactions {
		return nil, errFakeStore
	}

	width := len(indexermodels.TransactionColumns)
	var returned [][2]int64
	for r := 0; r < st.rows; r++ {
		txIndex := args[r*width+4].(int64)
		returned = append(returned, [2]int64{f.nextID, txIndex})
		f.nextID++
	}
	if f.reverseReturning {
		slices.Reverse(returned)
	}
	if f.dropReturning && len(returned) > 0 {
		returned = returned[:len(returned)-1]
	}
	return &fakeRows{values: returned, pos: -1}, nil
}

func (f *fakeExecutor) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{err: errors.New("QueryRow not supported by fakeExecutor")}
}

func (f *fakeExecutor) record(sql string, args []any) statement {
	st := statement{sql: sql, args: args}
	switch st.table() {
	case indexermodels.BlocksTableName:
		st.rows = len(args) / len(indexermodels.BlockColumns)
	case indexermodels.TransactionsTableName:
		st.rows = len(args) / len(indexermodels.TransactionColumns)
	case indexermodels.LogsTableName:
		st.rows = len(args) / len(indexermodels.LogColumns)
	}
	f.statements = append(f.statements, st)
	return st
}

// rowsFor returns the row counts of the recorded statements against table.
func (f *fakeExecutor) rowsFor(table string) []int {
	var counts []int
	for _, st := range f.statements {
		if st.table() == table {
			counts = append(counts, st.rows)
		}
	}
	return counts
}

// logTransactionIDs returns the transaction_id bound for every inserted log, in insert order.
func (f *fakeExecutor) logTransactionIDs() []int64 {
	var ids []int64
	width := len(indexermodels.LogColumns)
	for _, st := range f.statements {
		if st.table() != indexermodels.LogsTableName {
			continue
		}
		for r := 0; r < st.rows; r++ {
			ids = append(ids, st.args[r*width].(int64))
		}
	}
	return ids
}

// logTopics returns the topics bound for every inserted log, in insert order.
func (f *fakeExecutor) logTopics() [][][]byte {
	var topics [][][]byte
	width := len(indexermodels.LogColumns)
	for _, st := range f.statements {
		if st.table() != indexermodels.LogsTableName {
			continue
		}
		for r := 0; r < st.rows; r++ {
			topics = append(topics, st.args[r*width+8].([][]byte))
		}
	}
	return topics
}

type fakeRows struct {
	values [][2]int64
	pos    int
	closed bool
}

func (r *fakeRows) Close()                                       { r.closed = true }
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

func (r *fakeRows) Next() bool {
	if r.closed || r.pos+1 >= len(r.values) {
		return false
	}
	r.pos++
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	if len(dest) != 2 {
		return fmt.Errorf("expected 2 scan targets, got %d", len(dest))
	}
	*dest[0].(*int64) = r.values[r.pos][0]
	*dest[1].(*int64) = r.values[r.pos][1]
	return nil
}

func (r *fakeRows) Values() ([]any, error) {
	return []any{r.values[r.pos][0], r.values[r.pos][1]}, nil
}

type errRow struct{ err error }

func (r errRow) Scan(...any) error { return r.err }
