package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"keeps key order", `{ "z": 1, "a": [true, null] }`, `{"z":1,"a":[true,null]}`},
		{"trailing zeros", `{"carat": 0.50}`, `{"carat":0.5}`},
		{"exponent", `[1e3, 1.5E2]`, `[1000,150]`},
		{"large exponent", `1e21`, `1e+21`},
		{"tiny number", `0.0000001`, `1e-7`},
		{"negative zero", `-0.0`, `0`},
		{"html stays literal", `"<b>&</b>"`, `"<b>&</b>"`},
		{"nested", `{"a":{"b":[{"c":"d"}]}}`, `{"a":{"b":[{"c":"d"}]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CompactJSON([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCompactJSON_RejectsTrailingData(t *testing.T) {
	_, err := CompactJSON([]byte(`{} {}`))
	assert.Error(t, err)
}

func TestLooseString_Numbers(t *testing.T) {
	tests := map[string]string{
		`1200.50`: "1200.5",
		`1e3`:     "1000",
		`-2.0`:    "-2",
		`0.0`:     "",
		`0`:       "",
		`true`:    "true",
		`"0"`:     "0",
	}

	for in, want := range tests {
		var s LooseString
		require.NoError(t, json.Unmarshal([]byte(in), &s), in)
		assert.Equal(t, want, s.String(), in)
	}
}
