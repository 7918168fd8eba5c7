package parser

import (
	"slices"
	"strings"
	"unicode"
)

// NormalizeHeader folds a column name for comparison.
func NormalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Header indexes the column names of a sheet's header row.
// Names are normalized once, when the header is built.
type Header struct {
	names []string
	index map[string]int
}

// NewHeader builds a Header from raw header cells. Blank cells are kept as
// unnamed positions and can never be matched.
func NewHeader(cells []string) *Header {
	h := &Header{
		names: make([]string, len(cells)),
		index: make(map[string]int, len(cells)),
	}
	for i, c := range cells {
		n := NormalizeHeader(c)
		h.names[i] = n
		if n == "" {
			continue
		}
		if _, seen := h.index[n]; !seen {
			h.index[n] = i
		}
	}
	return h
}

// Empty reports whether the header has no named columns.
func (h *Header) Empty() bool {
	return len(h.index) == 0
}

// Len returns the number of header positions.
func (h *Header) Len() int {
	return len(h.names)
}

// Name returns the normalized name at column c, or "" when out of range.
func (h *Header) Name(c int) string {
	if c < 0 || c >= len(h.names) {
		return ""
	}
	return h.names[c]
}

// Index returns the 0-based column of name. Unknown or blank names report false.
func (h *Header) Index(name string) (int, bool) {
	n := NormalizeHeader(name)
	if n == "" {
		return 0, false
	}
	i, ok := h.index[n]
	return i, ok
}

// Coordinate header names, most specific first.
var (
	latNames = []string{"lat", "latitude"}
	lonNames = []string{"lon", "lng", "long", "longitude"}
)

// Match strength of a header against a coordinate name set.
const (
	matchNone = iota
	matchSubstring
	matchToken
	matchExact
)

// CoordinateColumns finds the latitude and longitude columns. A header named
// exactly "lat"/"latitude" (or "lon"/"lng"/"long"/"longitude") beats one that
// merely has such a word, which beats one that only contains "lat" (or "lon",
// "lng") inside a longer word, as in "Installation Date". Ties go to the
// leftmost column. Columns in claimed (source column names already mapped to
// other fields) are never considered. ok is false unless both were found.
func (h *Header) CoordinateColumns(claimed []string) (lat, lon int, ok bool) {
	skip := make(map[int]bool, len(claimed))
	for _, c := range claimed {
		if i, found := h.Index(c); found {
			skip[i] = true
		}
	}

	lat = h.bestMatch(skip, latNames, "lat")
	if lat >= 0 {
		skip[lat] = true
	}
	lon = h.bestMatch(skip, lonNames, "lon", "lng")
	return lat, lon, lat >= 0 && lon >= 0
}

func (h *Header) bestMatch(skip map[int]bool, names []string, substrings ...string) int {
	best, bestScore := -1, matchNone
	for i, n := range h.names {
		if n == "" || skip[i] {
			continue
		}
		if score := matchScore(n, names, substrings); score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func matchScore(name string, names, substrings []string) int {
	if slices.Contains(names, name) {
		return matchExact
	}
	tokens := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, t := range tokens {
		if slices.Contains(names, t) {
			return matchToken
		}
	}
	for _, sub := range substrings {
		if strings.Contains(name, sub) {
			return matchSubstring
		}
	}
	return matchNone
}
