// Package assets holds the files compiled into the binary: the Go fonts the
// demos draw text with and the page the web emulator serves.
package assets

import (
	_ "embed"
	"sort"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// WebIndex is the viewer page for the web emulator. It polls /frame.png.
//
//go:embed web/index.html
var WebIndex []byte

var fonts = map[string][]byte{
	"goregular":  goregular.TTF,
	"gobold":     gobold.TTF,
	"gomono":     gomono.TTF,
	"gomonobold": gomonobold.TTF,
}

// Font returns the TrueType bytes of a bundled font.
func Font(name string) ([]byte, bool) {
	b, ok := fonts[name]
	return b, ok
}

// FontNames lists the bundled fonts, sorted.
func FontNames() []string {
	names := make([]string, 0, len(fonts))
	for name := range fonts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
