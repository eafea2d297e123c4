package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var (
	White = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Black = color.RGBA{A: 0xff}
)

var namedColors = map[string]color.RGBA{
	"white":   White,
	"black":   Black,
	"red":     {R: 0xff, A: 0xff},
	"orange":  {R: 0xff, G: 0xa5, A: 0xff},
	"yellow":  {R: 0xff, G: 0xff, A: 0xff},
	"green":   {G: 0x80, A: 0xff},
	"blue":    {B: 0xff, A: 0xff},
	"magenta": {R: 0xff, B: 0xff, A: 0xff},
	"cyan":    {G: 0xff, B: 0xff, A: 0xff},
	"gray":    {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"grey":    {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"purple":  {R: 0x80, B: 0x80, A: 0xff},
}

// ParseColor accepts a colour name or #rrggbb.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if len(s) == 7 && s[0] == '#' {
		v, err := strconv.ParseUint(s[1:], 16, 32)
		if err == nil {
			return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
		}
	}
	return color.RGBA{}, fmt.Errorf("unknown colour %q", s)
}

// Gray returns the opaque grey of level y.
func Gray(y uint8) color.RGBA { return color.RGBA{R: y, G: y, B: y, A: 0xff} }
