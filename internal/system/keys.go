package system

// Key codes from linux/input-event-codes.h.
const (
	KeyEsc uint16 = 1
	KeyQ   uint16 = 16
	KeyF4  uint16 = 62
)

const (
	evKey   = 0x01
	keyDown = 1
)
