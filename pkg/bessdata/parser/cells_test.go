package parser

import (
	"testing"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected any
	}{
		{"100", int64(100)},
		{"-42", int64(-42)},
		{"200.5", 200.5},
		{"1e3", 1000.0},
		{"Text", "Text"},
		{"Fresno, CA", "Fresno, CA"},
		{"Infinity", "Infinity"},
		{"NaN", "NaN"},
		{"inf", "inf"},
		{"1e400", "1e400"},
	}

	for _, tt := range tests {
		if got := parseValue(tt.input); got != tt.expected {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.input, got, got, tt.expected, tt.expected)
		}
	}
}

func TestNewRow_NonFiniteText(t *testing.T) {
	h := NewHeader([]string{"Name", "MW AC", "MW DC", "Notes"})
	r := newRow("Sites", h, RowAlignment{HeaderRow: 1}, 0, []string{" Alpha ", "NaN", "inf", ""}, nil)

	if r.Physical != 2 {
		t.Errorf("Expected physical row 2, got %d", r.Physical)
	}
	if got := r.String("name"); got == nil || *got != "Alpha" {
		t.Errorf("Expected trimmed 'Alpha', got %v", got)
	}
	for _, col := range []string{"MW AC", "MW DC", "Notes"} {
		if v, err := r.Float(col); v != nil || err != nil {
			t.Errorf("Float(%q) = %v, %v; want nil, nil", col, v, err)
		}
	}
	if s := r.String("MW AC"); s == nil || *s != "NaN" {
		t.Errorf("Expected text 'NaN' to be kept, got %v", s)
	}
	if s := r.String("Notes"); s != nil {
		t.Errorf("String(Notes) = %q; want nil", *s)
	}
	if r.Blank() {
		t.Error("Row with a name should not be blank")
	}
}

func TestNewRow_WordsStayText(t *testing.T) {
	h := NewHeader([]string{"Company Name", "MW AC"})
	r := newRow("S", h, RowAlignment{HeaderRow: 1}, 0, []string{"Infinity", "Infinity"}, nil)

	if got := r.String("Company Name"); got == nil || *got != "Infinity" {
		t.Errorf("Expected company 'Infinity', got %v", got)
	}
	if got := r.Value(0); got != "Infinity" {
		t.Errorf("Value(0) = %v (%T), want string", got, got)
	}
	if v, err := r.Float("MW AC"); v != nil || err != nil {
		t.Errorf("Float(MW AC) = %v, %v; want nil, nil", v, err)
	}
}

func TestRow_Blank(t *testing.T) {
	h := NewHeader([]string{"A", "Contact"})
	align := RowAlignment{HeaderRow: 1}

	if r := newRow("S", h, align, 0, []string{"", "  "}, nil); !r.Blank() {
		t.Error("Expected whitespace-only row to be blank")
	}
	if r := newRow("S", h, align, 0, nil, map[string]string{"contact": "https://x.example"}); r.Blank() {
		t.Error("Expected row with a hyperlink to be non-blank")
	}
}

func TestHeader_Index(t *testing.T) {
	h := NewHeader([]string{" Company Name ", "", "SERVICE TYPE", "company name"})

	if i, ok := h.Index("company name"); !ok || i != 0 {
		t.Errorf("Index(company name) = %d, %v; want 0, true", i, ok)
	}
	if i, ok := h.Index("Service Type"); !ok || i != 2 {
		t.Errorf("Index(Service Type) = %d, %v; want 2, true", i, ok)
	}
	if _, ok := h.Index(""); ok {
		t.Error("Blank names must never match")
	}
	if h.Len() != 4 || h.Empty() {
		t.Errorf("Expected 4 positions and a non-empty header")
	}
	if !NewHeader([]string{"", " "}).Empty() {
		t.Error("Expected header of blank cells to be empty")
	}
}

func TestHeader_CoordinateColumns(t *testing.T) {
	tests := []struct {
		name     string
		cells    []string
		claimed  []string
		lat, lon int
		ok       bool
	}{
		{"lat lng", []string{"Company", "Lat", "Lng"}, nil, 1, 2, true},
		{"latitude longitude", []string{"Latitude", "Longitude"}, nil, 0, 1, true},
		{"first match wins", []string{"Lat", "Lon", "Lat 2", "Lon 2"}, nil, 0, 1, true},
		{"missing lon", []string{"Latitude", "Company"}, nil, 0, -1, false},
		{"claimed column skipped", []string{"Platform", "Lat", "Lon"}, []string{"Platform"}, 1, 2, true},
		{"none", []string{"Company"}, nil, -1, -1, false},
		{"exact name beats earlier substring", []string{"Project Name", "Installation Date", "Latitude", "Longitude"}, nil, 2, 3, true},
		{"token beats substring", []string{"Regulatory Status", "Site Lat (deg)", "Site Long (deg)"}, nil, 1, 2, true},
		{"substring as last resort", []string{"Company", "SiteLat", "SiteLng"}, nil, 1, 2, true},
		{"one column is not both", []string{"Lat/Long"}, nil, 0, -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon, ok := NewHeader(tt.cells).CoordinateColumns(tt.claimed)
			if lat != tt.lat || lon != tt.lon || ok != tt.ok {
				t.Errorf("CoordinateColumns() = %d, %d, %v; want %d, %d, %v", lat, lon, ok, tt.lat, tt.lon, tt.ok)
			}
		})
	}
}

func TestRowAlignment(t *testing.T) {
	a := RowAlignment{HeaderRow: 2}
	if got := a.Physical(0); got != 3 {
		t.Errorf("Physical(0) = %d, want 3", got)
	}
	if got := a.Logical(3); got != 0 {
		t.Errorf("Logical(3) = %d, want 0", got)
	}
	if got := a.Logical(2); got != -1 {
		t.Errorf("Logical(2) = %d, want -1", got)
	}
	for i := range 5 {
		if a.Logical(a.Physical(i)) != i {
			t.Errorf("round trip failed for %d", i)
		}
	}
}
