package utils

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor converts a hex triplet (#rgb or #rrggbb) or an SVG color name
// into an opaque color.NRGBA.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("empty color value")
	}

	if !strings.HasPrefix(s, "#") {
		c, ok := colornames.Map[strings.ToLower(s)]
		if !ok {
			return color.NRGBA{}, fmt.Errorf("unknown color name: %q", s)
		}
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}, nil
	}

	hex := s[1:]
	switch len(hex) {
	case 3:
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	case 6:
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color: %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color: %q", s)
	}

	return color.NRGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
