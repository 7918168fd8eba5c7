package parser

import (
	"math"

	"github.com/ukaji3/bessdata-go/pkg/bessdata/models"
)

// CoordinateSource records where a row's coordinates came from.
type CoordinateSource string

const (
	SourceRow      CoordinateSource = "row"
	SourceFallback CoordinateSource = "fallback"
)

// ResolveCoordinates returns the row's own latitude and longitude when both
// are finite numbers within [-90, 90] and [-180, 180], otherwise both halves of
// fallback. A row never mixes a row-sourced value with a default.
func (v *SheetView) ResolveCoordinates(row Row, fallback models.RegionCoordinate) (models.RegionCoordinate, CoordinateSource) {
	if !v.HasCoordinates {
		return fallback, SourceFallback
	}
	lat, errLat := row.FloatAt(v.LatColumn)
	lon, errLon := row.FloatAt(v.LonColumn)
	if errLat != nil || errLon != nil || lat == nil || lon == nil {
		return fallback, SourceFallback
	}
	if math.Abs(*lat) > 90 || math.Abs(*lon) > 180 {
		return fallback, SourceFallback
	}
	return models.RegionCoordinate{Lat: *lat, Lon: *lon}, SourceRow
}
