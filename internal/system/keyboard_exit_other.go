//go:build !linux

package system

import "context"

func StartExitOnKeys(ctx context.Context, l logger, keys []uint16, onExit func()) {
	if l != nil {
		l.Infof("input", "exit keys need evdev, disabled")
	}
}

func StartExitOnF4(ctx context.Context, l logger, onExit func()) {
	StartExitOnKeys(ctx, l, []uint16{KeyF4}, onExit)
}
