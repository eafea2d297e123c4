package device

import "sort"

// Display categories.
const (
	CategoryOLED     = "oled"
	CategoryLCD      = "lcd"
	CategoryEmulator = "emulator"
)

var categories = map[string]string{
	"ssd1306":           CategoryOLED,
	"sh1106":            CategoryOLED,
	"ssd1322":           CategoryOLED,
	"linux_framebuffer": CategoryLCD,
	"capture":           CategoryEmulator,
	"gifanim":           CategoryEmulator,
	"web":               CategoryEmulator,
	"sdl":               CategoryEmulator,
	"dummy":             CategoryEmulator,
}

// Category returns the category of a display name.
func Category(display string) (string, bool) {
	c, ok := categories[display]
	return c, ok
}

// Displays returns every supported display name, sorted.
func Displays() []string {
	names := make([]string, 0, len(categories))
	for name := range categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
