package models

import "github.com/ukaji3/bessdata-go/pkg/bessdata/sanitize"

// SupplierRecord is the canonical supplier shape.
// Field order is the serialized key order.
type SupplierRecord struct {
	// State is the row's state column when the sheet has one, else the
	// region key of the source sheet.
	State       string  `json:"state"`
	County      *string `json:"county"`
	ServiceType *string `json:"service_type"`
	Company     *string `json:"company"`
	Notes       *string `json:"notes"`
	// ContactURL is the hyperlink target of the contact cell, never its text.
	ContactURL *string `json:"contact_url"`
	// MapURL is the hyperlink target of the map cell, never its text.
	MapURL *string `json:"map_url"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

// ProjectRecord is the canonical project site shape.
type ProjectRecord struct {
	Project  *string  `json:"project"`
	Location *string  `json:"location"`
	Client   *string  `json:"client"`
	MWAC     *float64 `json:"mw_ac"`
	MWDC     *float64 `json:"mw_dc"`
	Lat      float64  `json:"lat"`
	Lon      float64  `json:"lon"`
}

// Sanitize drops non-finite capacities. Coordinates are finite by construction.
func (r ProjectRecord) Sanitize() ProjectRecord {
	r.MWAC = sanitize.Float(r.MWAC)
	r.MWDC = sanitize.Float(r.MWDC)
	return r
}

// Sanitize returns r unchanged; supplier records carry no optional floats.
func (r SupplierRecord) Sanitize() SupplierRecord {
	return r
}
