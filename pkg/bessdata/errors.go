package bessdata

import (
	"errors"
	"fmt"

	"github.com/ukaji3/bessdata-go/pkg/bessdata/parser"
	"github.com/ukaji3/bessdata-go/pkg/bessdata/registry"
)

// ErrSourceUnavailable indicates the workbook is missing or unreadable.
var ErrSourceUnavailable = errors.New("source workbook unavailable")

// ErrUnknownCategory indicates a category outside models.Categories.
var ErrUnknownCategory = errors.New("unknown category")

// Errors raised below the pipeline, re-exported for callers.
var (
	ErrSchemaNotFound = registry.ErrSchemaNotFound
	ErrSheetRead      = parser.ErrSheetRead
	ErrCellCoercion   = parser.ErrCellCoercion
)

type (
	// SchemaNotFoundError names a sheet without a registered schema.
	SchemaNotFoundError = registry.SchemaNotFoundError
	// SheetReadError reports a sheet skipped during extraction.
	SheetReadError = parser.SheetReadError
	// CellCoercionWarning reports a numeric cell that degraded to null.
	CellCoercionWarning = parser.CellCoercionWarning
)

// SourceUnavailableError is fatal: no records and no artifacts are produced.
type SourceUnavailableError struct {
	Path string
	Err  error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("source workbook %s unavailable: %v", e.Path, e.Err)
}

func (e *SourceUnavailableError) Unwrap() []error {
	return []error{ErrSourceUnavailable, e.Err}
}
