package parser

// RowAlignment converts between logical data-row indexes and physical sheet rows.
//
// A logical index is 0-based and excludes the header and everything above it.
// A physical row is the 1-based worksheet row number used in cell names such
// as "B7". The typed view and the hyperlink view both address rows through
// the same alignment.
type RowAlignment struct {
	// HeaderRow is the 1-based physical row of the header.
	HeaderRow int
}

// Physical returns the worksheet row holding logical data row i.
func (a RowAlignment) Physical(i int) int {
	return a.HeaderRow + 1 + i
}

// Logical returns the data row index of physical row r, or -1 when r is at
// or above the header.
func (a RowAlignment) Logical(r int) int {
	if r <= a.HeaderRow {
		return -1
	}
	return r - a.HeaderRow - 1
}
