package types

import (
	"errors"
	"fmt"
)

// Names of the three input tables, used in error messages and logs.
const (
	TableFeatures = "features"
	TableClasses  = "classes"
	TableEdges    = "edges"
)

// Structural load failures. These abort a load; the pipeline returns no
// graph and the caller remains unloaded. Row-level anomalies never produce
// these: bad rows are skipped and counted, not escalated.
var (
	ErrParse             = errors.New("input cannot be decoded")
	ErrSizeLimitExceeded = errors.New("input exceeds size limit")
	ErrEmptyDataset      = errors.New("dataset has no usable rows")
)

// Config validation errors.
var (
	ErrProportionRange    = errors.New("class proportion must be between 0 and 1")
	ErrProportionSum      = errors.New("class proportions must sum to at most 1")
	ErrHardCapNegative    = errors.New("per-class hard cap must not be negative")
	ErrSampleMaxNegative  = errors.New("max sample nodes must not be negative")
	ErrExamineRowsInvalid = errors.New("max examination rows must not be negative")
	ErrInputSizeInvalid   = errors.New("max input size must be positive")
)

// EmptyDataset wraps ErrEmptyDataset with the name of the offending table.
// Matched with errors.Is(err, ErrEmptyDataset).
func EmptyDataset(table string) error {
	return fmt.Errorf("%s: %w", table, ErrEmptyDataset)
}
