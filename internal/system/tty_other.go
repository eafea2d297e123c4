//go:build !linux

package system

type logger interface {
	Infof(string, string, ...interface{})
	Errorf(string, string, ...interface{})
}

func SetGraphicsMode() error { return ErrUnsupported }
func RestoreTextMode() error { return ErrUnsupported }
func HideCursor() error      { return ErrUnsupported }
func ShowCursor() error      { return ErrUnsupported }

func SetGraphicsModeWithLog(logger) error { return ErrUnsupported }
func RestoreTextModeWithLog(logger) error { return ErrUnsupported }
func HideCursorWithLog(logger) error      { return ErrUnsupported }
func ShowCursorWithLog(logger) error      { return ErrUnsupported }
