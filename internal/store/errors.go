package store

import (
	"fmt"
	"strings"
)

// StoreError wraps a failure reported by the sheet backend.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("record store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func wrap(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

// SchemaMismatchError reports a header row that differs from the expected columns.
type SchemaMismatchError struct {
	Expected []string
	Actual   []string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("record store: header mismatch: expected [%s], found [%s]",
		strings.Join(e.Expected, ", "), strings.Join(e.Actual, ", "))
}
