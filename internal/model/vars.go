package model

import (
	"fmt"

	"github.com/zeromicro/go-zero/core/stores/sqlx"
)

// ErrNotFound is returned when a natural-key lookup misses.
var ErrNotFound = sqlx.ErrNotFound

// BatchError reports which record of a batch failed to map into a row. The
// whole transaction rolls back; no partial state survives.
type BatchError struct {
	Index int
	Field string
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("coin_prices batch: record %d field %q: %v", e.Index, e.Field, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }
