package rpc

// Records in this package are the decoded form handed over by the upstream chain source.
// They are consumed as-is by the ingestion engine and never persisted directly.

// TransactionWithLogs pairs a transaction with the logs it emitted, in log order.
type TransactionWithLogs struct {
	Tx   *Transaction `json:"tx"`
	Logs []*Log       `json:"logs"`
}

// CountLogs returns the total number of logs carried by a batch.
func CountLogs(batch []TransactionWithLogs) int {
	n := 0
	for i := range batch {
		n += len(batch[i].Logs)
	}
	return n
}
