package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency.

var (
	// Ingestion boundary errors. The event is rejected and no state changes.
	ErrInvalidEvent  = errors.New("invalid activity event")
	ErrFutureEvent   = errors.New("event timestamp is in the future")
	ErrUnknownDomain = errors.New("unknown activity domain")

	// Evaluation errors
	ErrUnknownMetric = errors.New("definition references a metric the aggregator does not produce")

	// Persistence errors. Corrupt state is recovered via best-effort merge,
	// never surfaced to the caller as a hard failure.
	ErrCorruptState = errors.New("persisted achievement state is corrupt")
	ErrStorageRead  = errors.New("storage read failed")
	ErrStorageWrite = errors.New("storage write failed")
)
