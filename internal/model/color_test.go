package model

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	c, ok := ParseColor(" #ff8000 ")
	assert.True(t, ok)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, c)

	c, ok = ParseColor("not a color")
	assert.False(t, ok)
	assert.Equal(t, color.NRGBA{R: 0xe3, G: 0xf2, B: 0xfd, A: 0xff}, c, "falls back to the default room color")
}

func TestNormalizeColor(t *testing.T) {
	hex, ok := NormalizeColor("#FFF3E0")
	assert.True(t, ok)
	assert.Equal(t, "#fff3e0", hex)

	_, ok = NormalizeColor("")
	assert.False(t, ok)
	for _, bad := range []string{"#12345", "#1234567", "#12345g", "#fff", "123456", "red"} {
		_, ok = NormalizeColor(bad)
		assert.False(t, ok, "%q should be rejected", bad)
		_, ok = ParseColor(bad)
		assert.False(t, ok, "%q should be rejected", bad)
	}
}

func TestColorHex(t *testing.T) {
	assert.Equal(t, "#102030", ColorHex(color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}))
	assert.Equal(t, DefaultRoomColor, ColorHex(color.NRGBA{}), "fully transparent colors have no hex")
}
