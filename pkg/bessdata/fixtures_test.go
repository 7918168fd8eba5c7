package bessdata

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ukaji3/bessdata-go/pkg/bessdata/models"
	"github.com/ukaji3/bessdata-go/pkg/bessdata/registry"
	"github.com/xuri/excelize/v2"
)

// sheetFixture is one worksheet: rows start at A1, links map cell names to targets.
type sheetFixture struct {
	name  string
	rows  [][]any
	links map[string]string
}

func writeWorkbook(t *testing.T, path string, sheets ...sheetFixture) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for r, values := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			row := values
			require.NoError(t, f.SetSheetRow(s.name, cell, &row))
		}
		for cell, target := range s.links {
			require.NoError(t, f.SetCellHyperLink(s.name, cell, target, "External"))
		}
	}
	require.NoError(t, f.SaveAs(path))
}

// testRegistry mirrors the shape of the built-in table on small regions.
func testRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	supplier := func(region string) models.SheetSchema {
		return models.SheetSchema{
			SheetName: region + " Data",
			Category:  models.CategorySuppliers,
			RegionKey: region,
			HeaderRow: 1,
			Columns: map[models.Field]string{
				models.FieldCounty:      region + " County",
				models.FieldServiceType: "Service Type",
				models.FieldCompany:     "Company Name",
				models.FieldNotes:       "Notes",
			},
			ContactLinkColumn: "Contact",
			MapLinkColumn:     "Map",
		}
	}
	r, err := registry.New(
		[]models.SheetSchema{
			supplier("RegionA"),
			supplier("RegionB"),
			supplier("RegionC"),
			{
				SheetName: "Sites",
				Category:  models.CategoryProjects,
				RegionKey: "RegionA",
				Columns: map[models.Field]string{
					models.FieldProject:  "Project Name",
					models.FieldLocation: "Location",
					models.FieldClient:   "Client",
					models.FieldMWAC:     "MW AC",
					models.FieldMWDC:     "MW DC",
				},
			},
		},
		map[string]models.RegionCoordinate{
			"RegionA": {Lat: 10.0, Lon: 20.0},
			"RegionB": {Lat: 30.0, Lon: 40.0},
			"RegionC": {Lat: 50.0, Lon: 60.0},
		},
	)
	require.NoError(t, err)
	return r
}

func regionASheet() sheetFixture {
	return sheetFixture{
		name: "RegionA Data",
		rows: [][]any{
			{"RegionA County", "Service Type", "Company Name"},
			{"Riverside", "Installer", "Acme Co"},
		},
	}
}

func regionBSheet() sheetFixture {
	return sheetFixture{
		name: "RegionB Data",
		rows: [][]any{
			{"RegionB County ", "service type", "Company Name", "Contact", "Map", "Lat", "Lng"},
			{"Maricopa", "EPC", "Sun Builders", "Call", "View", 33.45, -112.07},
			{"Pima", "Supplier", "Desert Cells", "", "Map it", "", -110.97},
			{"Yuma", "Supplier", "Delta Storage", "Web", "", 32.69, -114.62},
		},
		links: map[string]string{
			"D2": "https://sunbuilders.example/contact",
			"E3": "https://maps.example/?q=pima&z=9",
			"D4": "https://delta.example",
		},
	}
}

func regionCSheet() sheetFixture {
	return sheetFixture{
		name: "RegionC Data",
		rows: [][]any{
			{"RegionC County", "Company Name", "Notes"},
			{"Travis", "Lone Star Power", ""},
			{"Harris", "Gulf Batteries", "Preferred vendor"},
		},
	}
}

func sitesSheet() sheetFixture {
	return sheetFixture{
		name: "Sites",
		rows: [][]any{
			{"Project Name", "Location", "Client", "MW AC", "MW DC", "Latitude", "Longitude"},
			{"Sunrise", "Fresno, CA", "Utility One", 100, 130.5, 36.74, -119.78},
			{"Moonrise", "Kern, CA", "Utility Two", "TBD", "NaN", "", ""},
		},
	}
}

func fullWorkbook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "procurement.xlsx")
	writeWorkbook(t, path, regionASheet(), regionBSheet(), regionCSheet(), sitesSheet())
	return path
}

func ptr[T any](v T) *T { return &v }
