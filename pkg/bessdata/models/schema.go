// Package models defines data structures for procurement workbook extraction.
package models

// Category names an output record set backed by one cache artifact.
type Category string

const (
	// CategorySuppliers holds equipment and service suppliers.
	CategorySuppliers Category = "suppliers"
	// CategoryProjects holds project sites.
	CategoryProjects Category = "projects"
)

// Categories lists every category in artifact order.
var Categories = []Category{CategorySuppliers, CategoryProjects}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	return c == CategorySuppliers || c == CategoryProjects
}

// Field names a canonical scalar field of an output record.
type Field string

const (
	// FieldState overrides the sheet's region key per row when mapped.
	FieldState       Field = "state"
	FieldCounty      Field = "county"
	FieldServiceType Field = "service_type"
	FieldCompany     Field = "company"
	FieldNotes       Field = "notes"

	FieldProject  Field = "project"
	FieldLocation Field = "location"
	FieldClient   Field = "client"
	FieldMWAC     Field = "mw_ac"
	FieldMWDC     Field = "mw_dc"
)

// SheetSchema describes how one workbook sheet maps onto canonical records.
type SheetSchema struct {
	// SheetName is the workbook sheet name.
	SheetName string `yaml:"sheet"`
	// Category is the output category the sheet contributes to.
	Category Category `yaml:"category"`
	// RegionKey selects the coordinate default and fills SupplierRecord.State.
	RegionKey string `yaml:"region"`
	// HeaderRow is the 1-based physical row holding column names (0 means 1).
	HeaderRow int `yaml:"header_row,omitempty"`
	// Columns maps canonical fields to source column names.
	// A field without an entry is absent for every row of the sheet.
	Columns map[Field]string `yaml:"columns"`
	// ContactLinkColumn names the column whose hyperlink target fills contact_url.
	ContactLinkColumn string `yaml:"contact_link_column,omitempty"`
	// MapLinkColumn names the column whose hyperlink target fills map_url.
	MapLinkColumn string `yaml:"map_link_column,omitempty"`
}

// Header returns the 1-based header row, defaulting to the first row.
func (s SheetSchema) Header() int {
	if s.HeaderRow < 1 {
		return 1
	}
	return s.HeaderRow
}

// LinkColumns returns the designated hyperlink columns that are set.
func (s SheetSchema) LinkColumns() []string {
	var cols []string
	if s.ContactLinkColumn != "" {
		cols = append(cols, s.ContactLinkColumn)
	}
	if s.MapLinkColumn != "" {
		cols = append(cols, s.MapLinkColumn)
	}
	return cols
}

// RegionCoordinate is the fallback location for a region.
type RegionCoordinate struct {
	Lat float64 `yaml:"lat" json:"lat"`
	Lon float64 `yaml:"lon" json:"lon"`
}
