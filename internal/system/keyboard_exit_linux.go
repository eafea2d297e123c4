//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"golang.org/x/sys/unix"
)

// InputDevices is the glob of evdev nodes watched by StartExitOnKeys.
var InputDevices = "/dev/input/event*"

// eventLayout describes struct input_event: a timeval, then u16 type,
// u16 code and s32 value.
type eventLayout struct {
	tv   int
	size int
}

func hostEventLayout() eventLayout {
	tv := binary.Size(unix.Timeval{})
	return eventLayout{tv: tv, size: tv + 8}
}

// keyPressed scans buf for a press of one of keys.
func (l eventLayout) keyPressed(buf []byte, keys []uint16) bool {
	for off := 0; off+l.size <= len(buf); off += l.size {
		rec := buf[off : off+l.size]
		typ := binary.LittleEndian.Uint16(rec[l.tv:])
		code := binary.LittleEndian.Uint16(rec[l.tv+2:])
		value := int32(binary.LittleEndian.Uint32(rec[l.tv+4:]))
		if typ == evKey && value == keyDown && slices.Contains(keys, code) {
			return true
		}
	}
	return false
}

// StartExitOnKeys watches every evdev device and calls onExit once when any
// of keys is pressed. Without input devices it logs and returns. Watchers
// stop with ctx.
func StartExitOnKeys(ctx context.Context, l logger, keys []uint16, onExit func()) {
	if onExit == nil || len(keys) == 0 {
		return
	}
	paths, err := filepath.Glob(InputDevices)
	if err != nil || len(paths) == 0 {
		if l != nil {
			l.Infof("input", "no evdev devices, exit keys disabled")
		}
		return
	}

	layout := hostEventLayout()
	var once sync.Once
	trigger := func() {
		once.Do(func() {
			if l != nil {
				l.Infof("input", "exit key pressed")
			}
			onExit()
		})
	}
	for _, p := range paths {
		go watchInput(ctx, p, layout, keys, trigger)
	}
}

// StartExitOnF4 is StartExitOnKeys for F4, the framebuffer exit key.
func StartExitOnF4(ctx context.Context, l logger, onExit func()) {
	StartExitOnKeys(ctx, l, []uint16{KeyF4}, onExit)
}

func watchInput(ctx context.Context, path string, layout eventLayout, keys []uint16, trigger func()) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer f.Close()

	buf := make([]byte, 64*layout.size)
	for ctx.Err() == nil {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(fds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if fds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		if layout.keyPressed(buf[:n], keys) {
			trigger()
			return
		}
	}
}
