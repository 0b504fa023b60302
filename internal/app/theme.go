package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PickerTheme provides a custom theme for the demo application.
type PickerTheme struct{}

var _ fyne.Theme = (*PickerTheme)(nil)

func (t *PickerTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x00, G: 0x7A, B: 0xCC, A: 0xFF} // Eyedropper blue
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0x00, G: 0x7A, B: 0xCC, A: 0x60}
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *PickerTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *PickerTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *PickerTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
