package grabbr

import (
	"regexp"
	"strconv"
)

// Theme is the ambient light/dark appearance of a page.
type Theme string

// Themes.
const (
	ThemeUnknown Theme = ""
	ThemeLight   Theme = "light"
	ThemeDark    Theme = "dark"
)

// LightThreshold is the minimum perceived brightness (0-255) of a light background.
const LightThreshold = 128

var colorComponentRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

// Brightness returns the perceived brightness (0.299R + 0.587G + 0.114B) of
// a computed CSS color such as "rgb(255, 255, 255)". It returns false when
// the color has fewer than three components or is fully transparent.
func Brightness(color string) (float64, bool) {
	parts := colorComponentRe.FindAllString(color, -1)
	if len(parts) < 3 {
		return 0, false
	}

	var rgb [3]float64
	for i := range rgb {
		v, err := strconv.ParseFloat(parts[i], 64)
		if err != nil {
			return 0, false
		}
		rgb[i] = v
	}

	if len(parts) >= 4 {
		if alpha, err := strconv.ParseFloat(parts[3], 64); err == nil && alpha == 0 {
			return 0, false
		}
	}

	return 0.299*rgb[0] + 0.587*rgb[1] + 0.114*rgb[2], true
}

// ThemeForBackground classifies a background color as light or dark.
// It returns ThemeUnknown when the color cannot be sampled.
func ThemeForBackground(color string) Theme {
	brightness, ok := Brightness(color)
	if !ok {
		return ThemeUnknown
	}
	if brightness >= LightThreshold {
		return ThemeLight
	}
	return ThemeDark
}
