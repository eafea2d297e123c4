//go:build linux

package system

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Console modes and the KDSETMODE ioctl from linux/kd.h.
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A
)

// consoles are tried in order: the active VT, then the foreground console.
var consoles = []string{"/dev/tty", "/dev/tty0"}

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

func setKDMode(mode int) error {
	var lastErr error
	for _, p := range consoles {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("KDSETMODE %d on %s: %w", mode, p, err)
			continue
		}
		return nil
	}
	return lastErr
}

// SetGraphicsMode stops the kernel drawing the console (and its cursor) over
// the framebuffer.
func SetGraphicsMode() error { return setKDMode(kdGraphics) }

// RestoreTextMode hands the screen back to the console.
func RestoreTextMode() error { return setKDMode(kdText) }

// HideCursor and ShowCursor toggle the VT cursor with ANSI escapes.
func HideCursor() error { return writeVT("\x1b[?25l") }
func ShowCursor() error { return writeVT("\x1b[?25h") }

func writeVT(s string) error {
	var lastErr error
	for _, p := range consoles {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("write VT: %w", lastErr)
}

func withLog(l logger, what string, err error) error {
	if l == nil {
		return err
	}
	if err != nil {
		l.Errorf("tty", "%s failed: %v", what, err)
	} else {
		l.Infof("tty", "%s", what)
	}
	return err
}

func SetGraphicsModeWithLog(l logger) error { return withLog(l, "KD_GRAPHICS", SetGraphicsMode()) }
func RestoreTextModeWithLog(l logger) error { return withLog(l, "KD_TEXT", RestoreTextMode()) }
func HideCursorWithLog(l logger) error      { return withLog(l, "hide cursor", HideCursor()) }
func ShowCursorWithLog(l logger) error      { return withLog(l, "show cursor", ShowCursor()) }
