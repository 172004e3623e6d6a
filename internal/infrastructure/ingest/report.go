package ingest

import "time"

// Request is the queue message that asks the worker to run a batch.
type Request struct {
	RequestID   string    `json:"request_id"`
	RequestedAt time.Time `json:"requested_at"`
}

// Report is the outcome of one ingestion batch. Skipped and unresolved rows
// are counted rather than silently dropped; a non-empty skip count is a data
// quality signal, not a batch failure.
type Report struct {
	CustomersUpserted   int `json:"customers_upserted"`
	LoansUpserted       int `json:"loans_upserted"`
	CustomerRowsSkipped int `json:"customer_rows_skipped"`
	LoanRowsSkipped     int `json:"loan_rows_skipped"`
	UnresolvedCustomers int `json:"unresolved_customers"`
	ParseFailures       int `json:"parse_failures"`
}

// RowsSkipped is the total number of rows that did not result in an upsert.
func (r Report) RowsSkipped() int {
	return r.CustomerRowsSkipped + r.LoanRowsSkipped
}
