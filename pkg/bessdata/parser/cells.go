package parser

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/ukaji3/bessdata-go/pkg/bessdata/sanitize"
	"github.com/xuri/excelize/v2"
)

// Row is one data row of the typed view plus its hyperlink targets.
type Row struct {
	// Index is the logical, header-excluded 0-based row index.
	Index int
	// Physical is the 1-based worksheet row.
	Physical int

	sheet  string
	header *Header
	text   []string
	values []any
	links  map[string]string
}

func newRow(sheet string, header *Header, align RowAlignment, i int, cells []string, links map[string]string) Row {
	r := Row{
		Index:    i,
		Physical: align.Physical(i),
		sheet:    sheet,
		header:   header,
		text:     make([]string, len(cells)),
		values:   make([]any, len(cells)),
		links:    links,
	}
	for c, cell := range cells {
		s := strings.TrimSpace(cell)
		r.text[c] = s
		if s != "" {
			r.values[c] = sanitize.Value(parseValue(s))
		}
	}
	return r
}

// Blank reports whether the row has neither text nor hyperlinks.
func (r Row) Blank() bool {
	if len(r.links) > 0 {
		return false
	}
	for _, s := range r.text {
		if s != "" {
			return false
		}
	}
	return true
}

// Value returns the typed value at column c: int64, float64, string, or nil
// for blank cells. Text such as "NaN" or "Infinity" stays a string.
func (r Row) Value(c int) any {
	if c < 0 || c >= len(r.values) {
		return nil
	}
	return r.values[c]
}

// String returns the trimmed text of the named column, or nil when the column
// is unknown or the cell is blank.
func (r Row) String(column string) *string {
	c, ok := r.header.Index(column)
	if !ok || c >= len(r.text) || r.values[c] == nil {
		return nil
	}
	s := r.text[c]
	return &s
}

// Float returns the numeric value of the named column. Unknown columns,
// blank cells, and non-finite text ("NaN", "inf") yield nil without error;
// other text that is not a number yields nil and a *CellCoercionWarning.
func (r Row) Float(column string) (*float64, error) {
	c, ok := r.header.Index(column)
	if !ok {
		return nil, nil
	}
	return r.FloatAt(c)
}

// FloatAt is Float addressed by 0-based column.
func (r Row) FloatAt(c int) (*float64, error) {
	switch v := r.Value(c).(type) {
	case nil:
		return nil, nil
	case int64:
		f := float64(v)
		return &f, nil
	case float64:
		return &v, nil
	default:
		if nonFiniteText(r.text[c]) {
			return nil, nil
		}
		cell, _ := excelize.CoordinatesToCellName(c+1, r.Physical)
		return nil, &CellCoercionWarning{
			SheetName: r.sheet,
			Cell:      cell,
			Column:    r.header.Name(c),
			Value:     r.text[c],
		}
	}
}

// Link returns the hyperlink target of the named column, never its text.
func (r Row) Link(column string) *string {
	t, ok := r.links[NormalizeHeader(column)]
	if !ok {
		return nil
	}
	return &t
}

// nonFiniteText reports whether s spells NaN or an infinity, such as "NaN" or "-Inf".
func nonFiniteText(s string) bool {
	f, err := strconv.ParseFloat(s, 64)
	return err == nil && (math.IsNaN(f) || math.IsInf(f, 0))
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
// Only text containing a digit is considered, so words such as "Infinity"
// or "NaN" are never turned into floats.
func parseValue(s string) any {
	if !strings.ContainsFunc(s, unicode.IsDigit) {
		return s
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
