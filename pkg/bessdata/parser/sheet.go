// Package parser reads registry-described sheets into aligned typed and hyperlink views.
package parser

import (
	"fmt"

	"github.com/ukaji3/bessdata-go/pkg/bessdata/models"
	"github.com/xuri/excelize/v2"
)

// SheetView is one sheet fully materialized before row processing.
type SheetView struct {
	Schema models.SheetSchema
	Header *Header
	Align  RowAlignment
	// Rows holds non-blank data rows in sheet order.
	Rows []Row
	// LatColumn and LonColumn are valid only when HasCoordinates is true.
	LatColumn      int
	LonColumn      int
	HasCoordinates bool
}

// ReadSheet materializes the typed view and the hyperlink view of the sheet
// named by schema. A missing sheet or an absent or empty header row yields a
// *SheetReadError.
func ReadSheet(f *excelize.File, schema models.SheetSchema) (*SheetView, error) {
	name := schema.SheetName
	if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
		return nil, &SheetReadError{SheetName: name, Reason: "sheet not found in workbook", Err: err}
	}

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &SheetReadError{SheetName: name, Reason: "read rows", Err: err}
	}

	headerRow := schema.Header()
	if len(rows) < headerRow {
		return nil, &SheetReadError{SheetName: name, Reason: fmt.Sprintf("header row %d missing", headerRow)}
	}
	header := NewHeader(rows[headerRow-1])
	if header.Empty() {
		return nil, &SheetReadError{SheetName: name, Reason: fmt.Sprintf("header row %d is empty", headerRow)}
	}

	align := RowAlignment{HeaderRow: headerRow}
	data := rows[headerRow:]
	links, err := readLinks(f, schema, header, align, len(data))
	if err != nil {
		return nil, &SheetReadError{SheetName: name, Reason: "read hyperlinks", Err: err}
	}

	view := &SheetView{
		Schema: schema,
		Header: header,
		Align:  align,
	}
	view.LatColumn, view.LonColumn, view.HasCoordinates = header.CoordinateColumns(claimedColumns(schema))

	for i, cells := range data {
		row := newRow(name, header, align, i, cells, links[align.Physical(i)])
		if row.Blank() {
			continue
		}
		view.Rows = append(view.Rows, row)
	}

	return view, nil
}

// readLinks returns hyperlink targets keyed by physical row, then by
// normalized column name. Designated columns missing from the header are
// skipped, so their links are always absent.
func readLinks(f *excelize.File, schema models.SheetSchema, header *Header, align RowAlignment, n int) (map[int]map[string]string, error) {
	links := make(map[int]map[string]string)
	for _, column := range schema.LinkColumns() {
		c, ok := header.Index(column)
		if !ok {
			continue
		}
		key := NormalizeHeader(column)
		for i := 0; i < n; i++ {
			r := align.Physical(i)
			cell, err := excelize.CoordinatesToCellName(c+1, r)
			if err != nil {
				return nil, err
			}
			hasLink, target, err := f.GetCellHyperLink(schema.SheetName, cell)
			if err != nil || !hasLink || target == "" {
				continue
			}
			if links[r] == nil {
				links[r] = make(map[string]string)
			}
			links[r][key] = target
		}
	}
	return links, nil
}

// claimedColumns lists source columns the schema maps to non-coordinate fields.
func claimedColumns(schema models.SheetSchema) []string {
	cols := schema.LinkColumns()
	for _, c := range schema.Columns {
		cols = append(cols, c)
	}
	return cols
}
