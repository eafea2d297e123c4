// Package opts parses the command line shared by every demo and builds the
// display it asks for.
package opts

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"github.com/rook-computer/panels/internal/device"
)

// ErrUsage matches every *UsageError with errors.Is.
var ErrUsage = errors.New("usage error")

// UsageError is a bad command line: an unknown flag, a value outside its
// choices or a missing demo name.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func (e *UsageError) Is(target error) bool { return target == ErrUsage }

func usagef(format string, args ...interface{}) error {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}

// Options is the parsed command line.
type Options struct {
	Config string

	Display   string
	Width     int
	Height    int
	Rotate    int
	Interface string

	I2CPort    int
	I2CAddress uint16

	SPIPort     int
	SPIDevice   int
	SPIBusSpeed int64

	GPIODataCommand int
	GPIOReset       int
	GPIOBacklight   int

	Mode        string
	Framebuffer string

	Transform string
	Scale     int
	Duration  float64
	Loop      int
	MaxFrames int
	Output    string
	Listen    string

	// Runner flags.
	List     bool
	Debug    bool
	StdioLog string
	Text     string

	// Args holds the positional arguments, the demo name first.
	Args []string
}

// hexUint16 accepts decimal, 0x hex and 0o octal.
type hexUint16 struct{ v *uint16 }

func (h hexUint16) String() string {
	if h.v == nil {
		return ""
	}
	return fmt.Sprintf("0x%02X", *h.v)
}

func (h hexUint16) Set(s string) error {
	n, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return fmt.Errorf("not an address: %q", s)
	}
	*h.v = uint16(n)
	return nil
}

// NewFlagSet registers every flag on a new ContinueOnError set writing into
// o. Defaults come from d.
func NewFlagSet(name string, o *Options, d Defaults) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.StringVar(&o.Config, "config", d.Config, "load configuration settings from a file; also "+EnvConfig)
	fs.StringVar(&o.Config, "f", d.Config, "shorthand for -config")
	fs.StringVar(&o.Display, "display", "ssd1306", "display type: "+strings.Join(device.Displays(), ", "))
	fs.StringVar(&o.Display, "d", "ssd1306", "shorthand for -display")
	fs.IntVar(&o.Width, "width", 128, "width of the device in pixels")
	fs.IntVar(&o.Height, "height", 64, "height of the device in pixels")
	fs.IntVar(&o.Rotate, "rotate", 0, "rotation factor: 0, 1, 2 or 3 clockwise quarter turns")
	fs.IntVar(&o.Rotate, "r", 0, "shorthand for -rotate")
	fs.StringVar(&o.Interface, "interface", device.InterfaceI2C, "serial interface type: i2c, spi")
	fs.StringVar(&o.Interface, "i", device.InterfaceI2C, "shorthand for -interface")

	fs.IntVar(&o.I2CPort, "i2c-port", 1, "I2C bus number")
	o.I2CAddress = 0x3C
	fs.Var(hexUint16{&o.I2CAddress}, "i2c-address", "I2C display address")
	fs.IntVar(&o.SPIPort, "spi-port", 0, "SPI port number")
	fs.IntVar(&o.SPIDevice, "spi-device", 0, "SPI device")
	fs.Int64Var(&o.SPIBusSpeed, "spi-bus-speed", 8000000, "SPI max bus speed (Hz)")
	fs.IntVar(&o.GPIODataCommand, "gpio-data-command", 24, "GPIO pin for D/C (SPI devices only)")
	fs.IntVar(&o.GPIOReset, "gpio-reset", 25, "GPIO pin for RESET (SPI devices only)")
	fs.IntVar(&o.GPIOBacklight, "gpio-backlight", 18, "GPIO pin for backlight (SPI devices only)")

	fs.StringVar(&o.Mode, "mode", string(device.ModeRGB), "colour mode (framebuffer and emulators): 1, L, RGB, RGBA")
	fs.StringVar(&o.Framebuffer, "framebuffer", device.DefaultFramebuffer, "framebuffer device (linux_framebuffer only)")

	fs.StringVar(&o.Transform, "transform", string(device.TransformScale2x), "scaling transform (emulators only): none, identity, scale2x, smoothscale, led_matrix")
	fs.IntVar(&o.Scale, "scale", 2, "scaling factor (emulators only)")
	fs.Float64Var(&o.Duration, "duration", 0.01, "animation frame duration in seconds (gifanim only)")
	fs.IntVar(&o.Loop, "loop", 0, "repeat loop, zero=forever (gifanim only)")
	fs.IntVar(&o.MaxFrames, "max-frames", 0, "maximum frames to record, zero=unlimited (gifanim only)")
	fs.StringVar(&o.Output, "output", ".", "output directory (capture and gifanim only)")
	fs.StringVar(&o.Listen, "listen", d.Listen, "http listen address (web only); also "+EnvListen)

	fs.BoolVar(&o.List, "list", false, "list the demos and exit")
	fs.BoolVar(&o.Debug, "debug", d.Debug, "enable debug logging to ./panels-debug.log; also "+EnvDebug)
	fs.StringVar(&o.StdioLog, "stdio-log", d.StdioLog, "redirect stdout+stderr (including panics) to this file; also "+EnvStdioLog)
	fs.StringVar(&o.Text, "text", "", "text for demos that show a message (qrcode)")
	return fs
}

// LoadConfig reads extra arguments from path. Blank lines and lines
// starting with # are skipped; the rest are split with shell quoting rules.
func LoadConfig(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()
	return parseConfig(f)
}

func parseConfig(r io.Reader) ([]string, error) {
	var args []string
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := sc.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words, err := shlex.Split(line)
		if err != nil {
			return nil, fmt.Errorf("config: line %d: %w", n, err)
		}
		args = append(args, words...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return args, nil
}

// Parse parses args. When a config file is named by -config or the
// environment, its arguments are put in front of args and everything is
// parsed again, so the command line wins.
func Parse(name string, args []string, output io.Writer) (Options, error) {
	defaults, err := DefaultsFromEnv()
	if err != nil {
		return Options{}, &UsageError{Msg: err.Error()}
	}
	o, err := parseOnce(name, args, defaults, output)
	if err != nil {
		return Options{}, err
	}
	if o.Config == "" {
		return o, o.validate()
	}
	extra, err := LoadConfig(o.Config)
	if err != nil {
		return Options{}, err
	}
	// A positional token in the file would end flag parsing and swallow
	// every flag given on the command line.
	co, err := parseOnce(name, extra, defaults, output)
	if err != nil {
		return Options{}, err
	}
	if len(co.Args) > 0 {
		return Options{}, usagef("config %s: unexpected argument %q; quote values that contain spaces", o.Config, co.Args[0])
	}
	o, err = parseOnce(name, append(extra, args...), defaults, output)
	if err != nil {
		return Options{}, err
	}
	return o, o.validate()
}

func parseOnce(name string, args []string, d Defaults, output io.Writer) (Options, error) {
	var o Options
	fs := NewFlagSet(name, &o, d)
	if output != nil {
		fs.SetOutput(output)
	} else {
		fs.SetOutput(io.Discard)
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return Options{}, err
		}
		return Options{}, &UsageError{Msg: err.Error()}
	}
	o.Args = fs.Args()
	return o, nil
}

func choice(flagName, short, value string, choices []string) error {
	if slices.Contains(choices, value) {
		return nil
	}
	names := "--" + flagName
	if short != "" {
		names += "/-" + short
	}
	quoted := make([]string, len(choices))
	for i, c := range choices {
		quoted[i] = "'" + c + "'"
	}
	return usagef("argument %s: invalid choice: '%s' (choose from %s)", names, value, strings.Join(quoted, ", "))
}

func (o Options) validate() error {
	if err := choice("display", "d", o.Display, device.Displays()); err != nil {
		return err
	}
	if err := choice("interface", "i", o.Interface, []string{device.InterfaceI2C, device.InterfaceSPI}); err != nil {
		return err
	}
	if err := choice("rotate", "r", strconv.Itoa(o.Rotate), []string{"0", "1", "2", "3"}); err != nil {
		return err
	}
	modes := make([]string, len(device.Modes))
	for i, m := range device.Modes {
		modes[i] = string(m)
	}
	if err := choice("mode", "", o.Mode, modes); err != nil {
		return err
	}
	transforms := make([]string, len(device.Transforms))
	for i, t := range device.Transforms {
		transforms[i] = string(t)
	}
	if err := choice("transform", "", o.Transform, transforms); err != nil {
		return err
	}
	if o.Width <= 0 || o.Height <= 0 {
		return usagef("argument --width/--height: must be positive, got %dx%d", o.Width, o.Height)
	}
	if o.Scale < 1 {
		return usagef("argument --scale: must be at least 1, got %d", o.Scale)
	}
	return nil
}

// DisplaySettings is a short summary of the chosen display.
func DisplaySettings(o Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Display: %s\n", o.Display)
	if c, _ := device.Category(o.Display); c != device.CategoryEmulator {
		fmt.Fprintf(&b, "Interface: %s\n", o.Interface)
	}
	fmt.Fprintf(&b, "Dimensions: %d x %d\n", o.Width, o.Height)
	b.WriteString(strings.Repeat("-", 40))
	return b.String()
}
