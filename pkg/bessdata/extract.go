package bessdata

import (
	"errors"
	"os"

	"github.com/google/uuid"
	"github.com/ukaji3/bessdata-go/pkg/bessdata/models"
	"github.com/ukaji3/bessdata-go/pkg/bessdata/parser"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// Extraction holds the records of one workbook pass, in registry-then-row order.
type Extraction struct {
	Suppliers []models.SupplierRecord
	Projects  []models.ProjectRecord
	// Skipped lists sheets that contributed no records.
	Skipped []*parser.SheetReadError
}

// Extract reads the workbook at path and builds canonical records for the
// selected categories. Every sheet is materialized before any row is
// processed. A missing or unreadable workbook returns a
// *SourceUnavailableError; unreadable sheets are logged and skipped.
func Extract(path string, opts Options) (*Extraction, error) {
	opts = opts.withDefaults()
	runID := uuid.NewString()
	logger := opts.Logger.With(zap.String("run_id", runID), zap.String("workbook", path))

	if _, err := os.Stat(path); err != nil {
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &SourceUnavailableError{Path: path, Err: err}
	}
	defer f.Close()

	x := &extractor{opts: opts, logger: logger}
	result := &Extraction{
		Suppliers: []models.SupplierRecord{},
		Projects:  []models.ProjectRecord{},
	}

	// Materialize all views first.
	views := make(map[models.Category][]*parser.SheetView)
	for _, category := range models.Categories {
		if !opts.ShouldExtract(category) {
			continue
		}
		for _, schema := range opts.Registry.Sheets(category) {
			view, err := x.readSheet(f, category, schema.SheetName)
			if err != nil {
				var sre *parser.SheetReadError
				if errors.As(err, &sre) {
					result.Skipped = append(result.Skipped, sre)
					continue
				}
				return nil, err
			}
			views[category] = append(views[category], view)
		}
	}

	for _, view := range views[models.CategorySuppliers] {
		result.Suppliers = append(result.Suppliers, x.suppliers(view)...)
	}
	for _, view := range views[models.CategoryProjects] {
		result.Projects = append(result.Projects, x.projects(view)...)
	}

	logger.Info("workbook extracted",
		zap.Int("suppliers", len(result.Suppliers)),
		zap.Int("projects", len(result.Projects)),
		zap.Int("skipped_sheets", len(result.Skipped)),
	)
	return result, nil
}

type extractor struct {
	opts   Options
	logger *zap.Logger
}

// readSheet resolves the schema for sheetName and materializes its views.
func (x *extractor) readSheet(f *excelize.File, category models.Category, sheetName string) (*parser.SheetView, error) {
	schema, err := x.opts.Registry.Lookup(sheetName)
	if err != nil {
		return nil, err
	}
	view, err := parser.ReadSheet(f, schema)
	if err != nil {
		x.logger.Warn("skipping sheet", zap.String("sheet", sheetName), zap.Error(err))
		x.opts.Metrics.SheetsSkipped.WithLabelValues(string(category)).Inc()
		return nil, err
	}
	return view, nil
}

func (x *extractor) suppliers(view *parser.SheetView) []models.SupplierRecord {
	schema := view.Schema
	cols := schema.Columns
	out := make([]models.SupplierRecord, 0, len(view.Rows))
	for _, row := range view.Rows {
		state := schema.RegionKey
		if s := row.String(cols[models.FieldState]); s != nil {
			state = *s
		}
		coord := x.coordinates(models.CategorySuppliers, view, row, state)
		rec := models.SupplierRecord{
			State:       state,
			County:      row.String(cols[models.FieldCounty]),
			ServiceType: row.String(cols[models.FieldServiceType]),
			Company:     row.String(cols[models.FieldCompany]),
			Notes:       row.String(cols[models.FieldNotes]),
			ContactURL:  row.Link(schema.ContactLinkColumn),
			MapURL:      row.Link(schema.MapLinkColumn),
			Lat:         coord.Lat,
			Lon:         coord.Lon,
		}
		out = append(out, rec.Sanitize())
	}
	x.opts.Metrics.RecordsExtracted.WithLabelValues(string(models.CategorySuppliers)).Add(float64(len(out)))
	return out
}

func (x *extractor) projects(view *parser.SheetView) []models.ProjectRecord {
	cols := view.Schema.Columns
	out := make([]models.ProjectRecord, 0, len(view.Rows))
	for _, row := range view.Rows {
		coord := x.coordinates(models.CategoryProjects, view, row, view.Schema.RegionKey)
		rec := models.ProjectRecord{
			Project:  row.String(cols[models.FieldProject]),
			Location: row.String(cols[models.FieldLocation]),
			Client:   row.String(cols[models.FieldClient]),
			MWAC:     x.float(models.CategoryProjects, row, cols[models.FieldMWAC]),
			MWDC:     x.float(models.CategoryProjects, row, cols[models.FieldMWDC]),
			Lat:      coord.Lat,
			Lon:      coord.Lon,
		}
		out = append(out, rec.Sanitize())
	}
	x.opts.Metrics.RecordsExtracted.WithLabelValues(string(models.CategoryProjects)).Add(float64(len(out)))
	return out
}

// float reads a numeric field; coercion failures degrade to nil.
func (x *extractor) float(category models.Category, row parser.Row, column string) *float64 {
	v, err := row.Float(column)
	if err != nil {
		x.logger.Debug("cell coercion failed", zap.Error(err))
		x.opts.Metrics.CellCoercionWarnings.WithLabelValues(string(category)).Inc()
		return nil
	}
	return v
}

// coordinates falls back to the region default, or to the sheet's region
// when region has none.
func (x *extractor) coordinates(category models.Category, view *parser.SheetView, row parser.Row, region string) models.RegionCoordinate {
	fallback, ok := x.opts.Registry.Default(region)
	if !ok {
		fallback, _ = x.opts.Registry.Default(view.Schema.RegionKey)
	}
	coord, src := view.ResolveCoordinates(row, fallback)
	if src == parser.SourceFallback {
		x.opts.Metrics.CoordinateFallbacks.WithLabelValues(string(category)).Inc()
	}
	return coord
}

// ExtractSuppliers extracts only the supplier category.
func ExtractSuppliers(path string, opts Options) ([]models.SupplierRecord, error) {
	opts.Categories = []models.Category{models.CategorySuppliers}
	x, err := Extract(path, opts)
	if err != nil {
		return nil, err
	}
	return x.Suppliers, nil
}

// ExtractProjects extracts only the project category.
func ExtractProjects(path string, opts Options) ([]models.ProjectRecord, error) {
	opts.Categories = []models.Category{models.CategoryProjects}
	x, err := Extract(path, opts)
	if err != nil {
		return nil, err
	}
	return x.Projects, nil
}
