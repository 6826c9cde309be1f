package theme

import (
	"fmt"
	"image/color"
)

// HexToColor converts a #RRGGBB string to a color. Malformed input yields black.
func HexToColor(hex string) color.Color {
	r, g, b := ParseHexColor(hex)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// ParseHexColor extracts RGB values from hex color string
func ParseHexColor(hex string) (uint8, uint8, uint8) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b uint8
	if len(hex) == 6 {
		_, _ = fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	}

	return r, g, b
}
