package output

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	B   string  `json:"b"`
	A   *string `json:"a"`
	URL string  `json:"url"`
}

func TestToJSON(t *testing.T) {
	recs := []record{{B: "x", URL: "https://e.example/?a=1&b=2"}}

	compact, err := ToJSON(recs, false)
	require.NoError(t, err)
	assert.Equal(t, `[{"b":"x","a":null,"url":"https://e.example/?a=1&b=2"}]`, string(compact))

	pretty, err := ToJSON(recs, true)
	require.NoError(t, err)
	assert.Equal(t, "[\n  {\n    \"b\": \"x\",\n    \"a\": null,\n    \"url\": \"https://e.example/?a=1&b=2\"\n  }\n]", string(pretty))

	again, err := ToJSON(recs, true)
	require.NoError(t, err)
	assert.Equal(t, pretty, again)
}

func TestToJSON_RejectsNaN(t *testing.T) {
	_, err := ToJSON(map[string]any{"v": math.NaN()}, false)
	assert.Error(t, err)
}
