package csg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColorNameNamed(t *testing.T) {
	c := ParseColorName("red")
	assert.Equal(t, Color{R: 1, G: 0, B: 0, A: 1}, c)
}

func TestParseColorNameCaseInsensitive(t *testing.T) {
	c := ParseColorName("RED")
	assert.Equal(t, Color{R: 1, G: 0, B: 0, A: 1}, c)
}

func TestParseColorNameUnknownFallsBackToGray(t *testing.T) {
	c := ParseColorName("not-a-color")
	assert.Equal(t, mediumGray, c)
}

func TestParseColorNameHex(t *testing.T) {
	tests := []struct {
		hex  string
		want Color
	}{
		{"#fff", Color{R: 1, G: 1, B: 1, A: 1}},
		{"#ff0000", Color{R: 1, G: 0, B: 0, A: 1}},
		{"#ff000080", Color{R: 1, G: 0, B: 0, A: float64(0x80) / 255}},
	}
	for _, tt := range tests {
		got := ParseColorName(tt.hex)
		assert.InDelta(t, tt.want.R, got.R, 1e-9, tt.hex)
		assert.InDelta(t, tt.want.G, got.G, 1e-9, tt.hex)
		assert.InDelta(t, tt.want.B, got.B, 1e-9, tt.hex)
		assert.InDelta(t, tt.want.A, got.A, 1e-9, tt.hex)
	}
}

func TestParseColorNameInvalidHexFallsBack(t *testing.T) {
	c := ParseColorName("#zzzzzz")
	assert.Equal(t, mediumGray, c)
}

func TestColorString(t *testing.T) {
	c := Color{R: 1, G: 0, B: 0, A: 1}
	assert.Equal(t, "rgba(1.000,0.000,0.000,1.000)", c.String())
}
