package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexAmount_Unmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		valid bool
	}{
		{"plain number", `25`, 25, true},
		{"decimal", `12.5`, 12.5, true},
		{"numeric string", `"40"`, 40, true},
		{"dollar prefix", `"$25"`, 25, true},
		{"millions suffix", `"25M"`, 25, true},
		{"dollar and suffix", `"$100m"`, 100, true},
		{"double m suffix", `"50mm"`, 50, true},
		{"thousands separator", `"1,000"`, 1000, true},
		{"null", `null`, 0, false},
		{"empty string", `""`, 0, false},
		{"garbage", `"n/a"`, 0, false},
		{"object", `{"v":1}`, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a FlexAmount
			err := json.Unmarshal([]byte(tt.input), &a)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, a.Valid())
			assert.InDelta(t, tt.want, a.Float(), 0.001)
		})
	}
}

func TestFlexAmount_Marshal(t *testing.T) {
	data, err := json.Marshal(NewAmount(25))
	require.NoError(t, err)
	assert.Equal(t, "25", string(data))

	data, err = json.Marshal(FlexAmount{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}

func TestFlexAmount_Ptr(t *testing.T) {
	a := NewAmount(10)
	p := a.Ptr()
	require.NotNil(t, p)
	assert.InDelta(t, 10.0, *p, 0.001)

	assert.Nil(t, FlexAmount{}.Ptr())
}
