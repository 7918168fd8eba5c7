// Package registry declares how each workbook sheet maps onto canonical records.
package registry

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ukaji3/bessdata-go/pkg/bessdata/models"
	"gopkg.in/yaml.v3"
)

// ErrSchemaNotFound indicates a sheet has no registered schema.
var ErrSchemaNotFound = errors.New("schema not found")

// SchemaNotFoundError names the sheet that has no schema.
type SchemaNotFoundError struct {
	SheetName string
}

func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("no schema registered for sheet %q", e.SheetName)
}

func (e *SchemaNotFoundError) Unwrap() error {
	return ErrSchemaNotFound
}

// Registry is an ordered, immutable set of sheet schemas plus region defaults.
type Registry struct {
	schemas  []models.SheetSchema
	byName   map[string]int
	defaults map[string]models.RegionCoordinate
}

// file is the YAML layout accepted by Load.
type file struct {
	Sheets  []models.SheetSchema               `yaml:"sheets"`
	Regions map[string]models.RegionCoordinate `yaml:"regions"`
}

// New builds a registry from schemas in the given order and validates it.
func New(schemas []models.SheetSchema, defaults map[string]models.RegionCoordinate) (*Registry, error) {
	r := &Registry{
		schemas:  make([]models.SheetSchema, 0, len(schemas)),
		byName:   make(map[string]int, len(schemas)),
		defaults: make(map[string]models.RegionCoordinate, len(defaults)),
	}
	for k, v := range defaults {
		r.defaults[k] = v
	}

	for _, s := range schemas {
		s.SheetName = strings.TrimSpace(s.SheetName)
		if s.SheetName == "" {
			return nil, errors.New("registry: sheet name is required")
		}
		if _, dup := r.byName[s.SheetName]; dup {
			return nil, fmt.Errorf("registry: duplicate sheet %q", s.SheetName)
		}
		if !s.Category.Valid() {
			return nil, fmt.Errorf("registry: sheet %q has unknown category %q", s.SheetName, s.Category)
		}
		if _, ok := r.defaults[s.RegionKey]; !ok {
			return nil, fmt.Errorf("registry: sheet %q region %q has no coordinate default", s.SheetName, s.RegionKey)
		}
		cols := make(map[models.Field]string, len(s.Columns))
		for f, c := range s.Columns {
			cols[f] = c
		}
		s.Columns = cols
		r.byName[s.SheetName] = len(r.schemas)
		r.schemas = append(r.schemas, s)
	}

	return r, nil
}

// Load reads a registry from a YAML file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read registry: %w", err)
	}
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse registry %s: %w", path, err)
	}
	return New(f.Sheets, f.Regions)
}

// Lookup returns the schema registered for sheetName.
func (r *Registry) Lookup(sheetName string) (models.SheetSchema, error) {
	i, ok := r.byName[strings.TrimSpace(sheetName)]
	if !ok {
		return models.SheetSchema{}, &SchemaNotFoundError{SheetName: sheetName}
	}
	return r.schemas[i], nil
}

// Sheets returns the schemas contributing to category, in registry order.
func (r *Registry) Sheets(category models.Category) []models.SheetSchema {
	var out []models.SheetSchema
	for _, s := range r.schemas {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// SheetNames returns every registered sheet name in registry order.
func (r *Registry) SheetNames() []string {
	names := make([]string, len(r.schemas))
	for i, s := range r.schemas {
		names[i] = s.SheetName
	}
	return names
}

// Default returns the coordinate default for a region.
func (r *Registry) Default(regionKey string) (models.RegionCoordinate, bool) {
	c, ok := r.defaults[regionKey]
	return c, ok
}
