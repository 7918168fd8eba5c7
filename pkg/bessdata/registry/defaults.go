package registry

import "github.com/ukaji3/bessdata-go/pkg/bessdata/models"

// Region keys of the built-in registry.
const (
	RegionCalifornia = "California"
	RegionArizona    = "Arizona"
	RegionTexas      = "Texas"
	RegionUS         = "US"
)

// DefaultRegions holds approximate geographic centers used as fallbacks.
var DefaultRegions = map[string]models.RegionCoordinate{
	RegionCalifornia: {Lat: 36.7783, Lon: -119.4179},
	RegionArizona:    {Lat: 34.0489, Lon: -111.0937},
	RegionTexas:      {Lat: 31.9686, Lon: -99.9018},
	RegionUS:         {Lat: 39.8283, Lon: -98.5795},
}

// supplierSheet describes a per-state supplier sheet. The header sits on the
// second row below a title banner.
func supplierSheet(state string) models.SheetSchema {
	return models.SheetSchema{
		SheetName: state,
		Category:  models.CategorySuppliers,
		RegionKey: state,
		HeaderRow: 2,
		Columns: map[models.Field]string{
			models.FieldCounty:      state + " County",
			models.FieldServiceType: "Service Type",
			models.FieldCompany:     "Company Name",
			models.FieldNotes:       "Notes",
		},
		ContactLinkColumn: "Contact",
		MapLinkColumn:     "Map",
	}
}

// equipmentSheet is the combined supplier sheet covering every state. Rows
// carry their own State column; the header sits below a title banner.
func equipmentSheet() models.SheetSchema {
	return models.SheetSchema{
		SheetName: "BESS Equipment",
		Category:  models.CategorySuppliers,
		RegionKey: RegionUS,
		HeaderRow: 2,
		Columns: map[models.Field]string{
			models.FieldState:       "State",
			models.FieldCounty:      "County",
			models.FieldServiceType: "Service Type",
			models.FieldCompany:     "Company Name",
			models.FieldNotes:       "Notes",
		},
		ContactLinkColumn: "Contact",
		MapLinkColumn:     "Map",
	}
}

// DefaultSchemas is the built-in sheet table in extraction order.
func DefaultSchemas() []models.SheetSchema {
	return []models.SheetSchema{
		equipmentSheet(),
		supplierSheet(RegionCalifornia),
		supplierSheet(RegionArizona),
		supplierSheet(RegionTexas),
		{
			SheetName: "SOLV BESS Sites",
			Category:  models.CategoryProjects,
			RegionKey: RegionUS,
			HeaderRow: 1,
			Columns: map[models.Field]string{
				models.FieldProject:  "Project Name",
				models.FieldLocation: "Location",
				models.FieldClient:   "Client",
				models.FieldMWAC:     "MW AC",
				models.FieldMWDC:     "MW DC",
			},
		},
	}
}

// Default returns the built-in registry.
func Default() *Registry {
	r, err := New(DefaultSchemas(), DefaultRegions)
	if err != nil {
		panic("registry: invalid built-in table: " + err.Error())
	}
	return r
}
