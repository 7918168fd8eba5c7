// Package bessdata extracts supplier and project records from the procurement
// workbook and caches them as JSON artifacts.
package bessdata

import (
	"github.com/jonboulle/clockwork"
	"github.com/ukaji3/bessdata-go/pkg/bessdata/models"
	"github.com/ukaji3/bessdata-go/pkg/bessdata/observability"
	"github.com/ukaji3/bessdata-go/pkg/bessdata/registry"
	"go.uber.org/zap"
)

// Options configures extraction and the artifact store.
// Zero values select the defaults documented on each field.
type Options struct {
	// Registry describes the workbook sheets. If nil, registry.Default() is used.
	Registry *registry.Registry
	// Categories limits extraction. If empty, every category is extracted.
	Categories []models.Category
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Metrics defaults to unregistered collectors.
	Metrics *observability.Metrics
	// Clock times extractions. Defaults to the real clock.
	Clock clockwork.Clock
}

// withDefaults returns a copy of o with every unset field filled.
func (o Options) withDefaults() Options {
	if o.Registry == nil {
		o.Registry = registry.Default()
	}
	if len(o.Categories) == 0 {
		o.Categories = models.Categories
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Metrics == nil {
		o.Metrics = observability.NewUnregisteredMetrics()
	}
	if o.Clock == nil {
		o.Clock = clockwork.NewRealClock()
	}
	return o
}

// ShouldExtract reports whether category c is selected.
func (o Options) ShouldExtract(c models.Category) bool {
	if len(o.Categories) == 0 {
		return true
	}
	for _, sel := range o.Categories {
		if sel == c {
			return true
		}
	}
	return false
}
