// Package ui provides the Madori floor-plan editor UI.
//
// This file defines a compact Fyne theme so the toolbar and inspector
// leave most of the window to the plan canvas.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// MadoriTheme wraps the default Fyne theme with compact sizing overrides
// and an optional fixed light/dark variant.
type MadoriTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
	fixed   bool
}

// NewMadoriTheme creates a theme following the system variant.
func NewMadoriTheme() *MadoriTheme {
	return &MadoriTheme{base: theme.DefaultTheme()}
}

// NewMadoriThemeWithVariant creates a theme locked to a light/dark variant.
func NewMadoriThemeWithVariant(variant fyne.ThemeVariant) *MadoriTheme {
	return &MadoriTheme{base: theme.DefaultTheme(), variant: variant, fixed: true}
}

// ThemeForName maps the config theme name ("light", "dark", "system").
func ThemeForName(name string) *MadoriTheme {
	switch name {
	case "light":
		return NewMadoriThemeWithVariant(theme.VariantLight)
	case "dark":
		return NewMadoriThemeWithVariant(theme.VariantDark)
	default:
		return NewMadoriTheme()
	}
}

func (t *MadoriTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	if t.fixed {
		variant = t.variant
	}
	return t.base.Color(name, variant)
}

func (t *MadoriTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

func (t *MadoriTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides.
func (t *MadoriTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 13
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
