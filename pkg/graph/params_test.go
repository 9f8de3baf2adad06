package graph_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/graphkit/pkg/graph"
)

func TestEncodeParams(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params graph.Params
		want   string
	}{
		{"nil", nil, ""},
		{"empty", graph.Params{}, ""},
		{"number and spaced string", graph.Params{"a": 1, "b": "x y"}, "a=1&b=x+y"},
		{"sorted keys", graph.Params{"z": "1", "m": "2", "a": "3"}, "a=3&m=2&z=1"},
		{"bool", graph.Params{"published": false}, "published=false"},
		{"float", graph.Params{"lat": 37.5}, "lat=37.5"},
		{"string is not json encoded", graph.Params{"message": `say "hi"`}, "message=say+%22hi%22"},
		{"list", graph.Params{"ids": []string{"1", "2"}}, "ids=%5B%221%22%2C%222%22%5D"},
		{"nested object", graph.Params{"privacy": map[string]string{"value": "EVERYONE"}}, "privacy=%7B%22value%22%3A%22EVERYONE%22%7D"},
		{"raw json", graph.Params{"targeting": json.RawMessage(`{"countries":["US"]}`)}, "targeting=%7B%22countries%22%3A%5B%22US%22%5D%7D"},
		{"nil value", graph.Params{"after": nil}, "after=null"},
		{"escaped key", graph.Params{"a b": "c&d"}, "a+b=c%26d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := graph.EncodeParams(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeParams_Unencodable(t *testing.T) {
	t.Parallel()

	_, err := graph.EncodeParams(graph.Params{"fn": func() {}})
	require.Error(t, err)
	assert.ErrorIs(t, err, graph.ErrInvalidParams)
	assert.Contains(t, err.Error(), `"fn"`)
}
