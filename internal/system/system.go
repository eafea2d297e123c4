// Package system reads host statistics for the status demos and drives the
// Linux console around the framebuffer display.
package system

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnsupported is returned by readings the host OS does not provide.
var ErrUnsupported = errors.New("system: not supported on this platform")

// Memory is physical RAM usage in bytes.
type Memory struct {
	Total uint64
	Used  uint64
}

// Percent is Used as a share of Total, 0-100.
func (m Memory) Percent() float64 {
	if m.Total == 0 {
		return 0
	}
	return float64(m.Used) * 100 / float64(m.Total)
}

// DiskUsage is the space on the filesystem holding a path, in bytes.
type DiskUsage struct {
	Total uint64
	Used  uint64
	Free  uint64
}

func (d DiskUsage) Percent() float64 {
	if d.Total == 0 {
		return 0
	}
	return float64(d.Used) * 100 / float64(d.Total)
}

// Load is the 1, 5 and 15 minute load average.
type Load struct {
	One, Five, Fifteen float64
}

var humanSymbols = []string{"K", "M", "G", "T", "P", "E"}

// BytesToHuman abbreviates n with a binary prefix, truncating the value:
// 10000 is "9K", 100001221 is "95M". Below 1K the result is in bytes.
func BytesToHuman(n uint64) string {
	for i := len(humanSymbols) - 1; i >= 0; i-- {
		unit := uint64(1) << (10 * (i + 1))
		if n >= unit {
			return fmt.Sprintf("%d%s", n/unit, humanSymbols[i])
		}
	}
	return fmt.Sprintf("%dB", n)
}

// FormatUptime renders d as days, hours and minutes, e.g. "3d4h12m".
func FormatUptime(d time.Duration) string {
	d = d.Truncate(time.Minute)
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	return fmt.Sprintf("%dd%dh%dm", days, hours, d/time.Minute)
}

// FormatClock renders d as H:MM:SS like a wall clock duration.
func FormatClock(d time.Duration) string {
	d = d.Truncate(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	return fmt.Sprintf("%d:%02d:%02d", h, m, d/time.Second)
}
