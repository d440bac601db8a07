package model

// Theme is the colour scheme token stored per device.
type Theme string

const (
	ThemeLight Theme = "light-theme"
	ThemeDark  Theme = "dark-theme"
)

// Toggle returns the other theme. Anything other than light toggles to light.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}
