// Package run holds the batch report types for a scoring run.
package run

// Operation names a pipeline sub-operation for error reporting.
type Operation string

// Pipeline operations as they appear in per-operation error entries.
const (
	OpValidate     Operation = "validate"
	OpConsolidated Operation = "consolidated_analysis"
	OpOccurrence   Operation = "occurrence"
	OpCitation     Operation = "citation"
	OpSentiment    Operation = "sentiment"
	OpPersist      Operation = "persist"
)

// ErrorKind is the error taxonomy bucket for a failed sub-operation.
type ErrorKind string

// Error kinds.
const (
	KindProviderUnavailable ErrorKind = "provider_unavailable"
	KindMalformedResponse   ErrorKind = "malformed_response"
	KindValidation          ErrorKind = "validation_error"
	KindProviderExhausted   ErrorKind = "provider_exhausted"
	KindInternal            ErrorKind = "internal"
)

// OperationError is one recoverable sub-failure inside an otherwise
// processed record.
type OperationError struct {
	RecordID  string    `json:"record_id"`
	Operation Operation `json:"operation"`
	Kind      ErrorKind `json:"kind"`
	Detail    string    `json:"detail,omitempty"`
}

// Report summarizes one scoring run. Partial success per record is expected
// and is not itself a pipeline failure.
type Report struct {
	RunID     string           `json:"run_id"`
	Processed int              `json:"processed"`
	Succeeded int              `json:"succeeded"`
	Skipped   int              `json:"skipped"`
	Errors    []OperationError `json:"errors,omitempty"`
}

// RecordOutcome is the per-record result collected by the worker pool.
type RecordOutcome struct {
	RecordID  string
	Succeeded bool
	Skipped   bool
	Errors    []OperationError
}
