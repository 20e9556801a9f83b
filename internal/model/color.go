package model

import (
	"fmt"
	"image/color"
	"regexp"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// hexColor is the only accepted color form. Short "#rgb" is rejected.
var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func parseHex(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if !hexColor.MatchString(s) {
		return colorful.Color{}, fmt.Errorf("invalid color %q", s)
	}
	return colorful.Hex(s)
}

// ParseColor parses a "#rrggbb" room color. An empty or invalid string
// yields the default room color and false.
func ParseColor(s string) (color.NRGBA, bool) {
	c, err := parseHex(s)
	if err != nil {
		c, _ = colorful.Hex(DefaultRoomColor)
		return toNRGBA(c), false
	}
	return toNRGBA(c), true
}

// NormalizeColor returns s as a lower-case "#rrggbb" string.
func NormalizeColor(s string) (string, bool) {
	c, err := parseHex(s)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}

// ColorHex formats any color as "#rrggbb", dropping alpha.
func ColorHex(c color.Color) string {
	if cf, ok := colorful.MakeColor(c); ok {
		return cf.Clamped().Hex()
	}
	return DefaultRoomColor
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
