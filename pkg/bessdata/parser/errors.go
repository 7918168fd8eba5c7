package parser

import (
	"errors"
	"fmt"
)

// ErrSheetRead indicates a sheet could not be read and was skipped.
var ErrSheetRead = errors.New("sheet unreadable")

// ErrCellCoercion indicates a cell expected to be numeric was not.
var ErrCellCoercion = errors.New("cell coercion failed")

// SheetReadError reports why a sheet contributed no rows.
type SheetReadError struct {
	SheetName string
	Reason    string
	Err       error
}

func (e *SheetReadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("read sheet %q: %s: %v", e.SheetName, e.Reason, e.Err)
	}
	return fmt.Sprintf("read sheet %q: %s", e.SheetName, e.Reason)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *SheetReadError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrSheetRead, e.Err}
	}
	return []error{ErrSheetRead}
}

// CellCoercionWarning is non-fatal: the field degrades to absent.
type CellCoercionWarning struct {
	SheetName string
	Cell      string
	Column    string
	Value     string
}

func (w *CellCoercionWarning) Error() string {
	return fmt.Sprintf("sheet %q cell %s (%s): %q is not numeric", w.SheetName, w.Cell, w.Column, w.Value)
}

func (w *CellCoercionWarning) Unwrap() error {
	return ErrCellCoercion
}
