// Package output serializes extraction results.
package output

import (
	"bytes"
	"encoding/json"
)

// ToJSON encodes v. Pretty output uses two-space indentation. HTML characters
// are not escaped so hyperlink targets stay byte-identical to the workbook.
func ToJSON(v any, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
