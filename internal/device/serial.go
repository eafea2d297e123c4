package device

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Serial interfaces.
const (
	InterfaceI2C = "i2c"
	InterfaceSPI = "spi"
)

// SerialConfig selects the bus a panel is wired to.
type SerialConfig struct {
	Interface string

	I2CPort    int
	I2CAddress uint16

	SPIPort     int
	SPIDevice   int
	SPIBusSpeed int64 // Hz

	// GPIO numbers (BCM). Zero or negative means not connected.
	GPIODataCommand int
	GPIOReset       int
	GPIOBacklight   int
}

var (
	hostOnce sync.Once
	hostErr  error
)

func initHost() error {
	hostOnce.Do(func() {
		if _, err := host.Init(); err != nil {
			hostErr = fmt.Errorf("periph host init: %w", err)
		}
	})
	return hostErr
}

// link is an open serial connection to a panel controller.
type link struct {
	cfg SerialConfig

	i2cBus  i2c.BusCloser
	spiPort spi.PortCloser

	dc        gpio.PinOut
	rst       gpio.PinOut
	backlight gpio.PinOut
}

func openLink(cfg SerialConfig) (*link, error) {
	if err := initHost(); err != nil {
		return nil, err
	}
	l := &link{cfg: cfg}
	switch cfg.Interface {
	case InterfaceI2C:
		bus, err := i2creg.Open(strconv.Itoa(cfg.I2CPort))
		if err != nil {
			return nil, fmt.Errorf("i2c port %d: %w", cfg.I2CPort, err)
		}
		l.i2cBus = bus
	case InterfaceSPI:
		name := fmt.Sprintf("SPI%d.%d", cfg.SPIPort, cfg.SPIDevice)
		port, err := spireg.Open(name)
		if err != nil {
			return nil, fmt.Errorf("spi %s: %w", name, err)
		}
		if cfg.SPIBusSpeed > 0 {
			if err := port.LimitSpeed(physic.Frequency(cfg.SPIBusSpeed) * physic.Hertz); err != nil {
				_ = port.Close()
				return nil, fmt.Errorf("spi %s: limit speed: %w", name, err)
			}
		}
		l.spiPort = port
		dc, err := pinOut(cfg.GPIODataCommand)
		if err != nil {
			_ = port.Close()
			return nil, fmt.Errorf("data/command pin: %w", err)
		}
		l.dc = dc
		// Backlight is best-effort: OLED panels have none.
		if bl, err := pinOut(cfg.GPIOBacklight); err == nil && bl.Out(gpio.High) == nil {
			l.backlight = bl
		}
	default:
		return nil, fmt.Errorf("unsupported interface %q", cfg.Interface)
	}

	if cfg.GPIOReset > 0 {
		rst, err := pinOut(cfg.GPIOReset)
		if err != nil {
			_ = l.Close()
			return nil, fmt.Errorf("reset pin: %w", err)
		}
		l.rst = rst
	}
	return l, nil
}

func pinOut(n int) (gpio.PinOut, error) {
	if n <= 0 {
		return nil, errors.New("gpio not configured")
	}
	name := fmt.Sprintf("GPIO%d", n)
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("%s not found", name)
	}
	return p, nil
}

// bus returns a command/data writer over the open interface. SPI
// controllers are addressed at speed Hz unless the port was limited lower.
func (l *link) bus(speed physic.Frequency) (bus, error) {
	if l.i2cBus != nil {
		return &i2cBus{c: &i2c.Dev{Bus: l.i2cBus, Addr: l.cfg.I2CAddress}}, nil
	}
	c, err := l.spiPort.Connect(speed, spi.Mode0, 8)
	if err != nil {
		return nil, err
	}
	return &dcBus{c: c, dc: l.dc}, nil
}

func (l *link) Close() error {
	var err error
	if l.backlight != nil {
		_ = l.backlight.Out(gpio.Low)
	}
	if l.i2cBus != nil {
		err = l.i2cBus.Close()
	}
	if l.spiPort != nil {
		err = errors.Join(err, l.spiPort.Close())
	}
	return err
}

func (l *link) String() string {
	if l.cfg.Interface == InterfaceI2C {
		return fmt.Sprintf("i2c port %d address 0x%02X", l.cfg.I2CPort, l.cfg.I2CAddress)
	}
	return fmt.Sprintf("spi port %d device %d", l.cfg.SPIPort, l.cfg.SPIDevice)
}

// bus writes controller commands and display RAM.
type bus interface {
	command(cmd ...byte) error
	data(p []byte) error
}

// dcBus selects command or data with a GPIO line, as 4-wire SPI panels do.
type dcBus struct {
	c  conn.Conn
	dc gpio.PinOut
}

func (b *dcBus) command(cmd ...byte) error {
	if err := b.dc.Out(gpio.Low); err != nil {
		return err
	}
	return b.c.Tx(cmd, nil)
}

func (b *dcBus) data(p []byte) error {
	if err := b.dc.Out(gpio.High); err != nil {
		return err
	}
	return b.c.Tx(p, nil)
}

// i2cBus prefixes every transfer with a control byte.
type i2cBus struct {
	c conn.Conn
}

const (
	i2cCommand = 0x00
	i2cData    = 0x40
	i2cChunk   = 32
)

func (b *i2cBus) command(cmd ...byte) error {
	return b.c.Tx(append([]byte{i2cCommand}, cmd...), nil)
}

func (b *i2cBus) data(p []byte) error {
	for len(p) > 0 {
		n := min(len(p), i2cChunk)
		if err := b.c.Tx(append([]byte{i2cData}, p[:n]...), nil); err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

// reset pulses the reset line when one is wired.
func reset(rst gpio.PinOut, sleep func()) error {
	if rst == nil {
		return nil
	}
	if err := rst.Out(gpio.Low); err != nil {
		return fmt.Errorf("reset low: %w", err)
	}
	sleep()
	if err := rst.Out(gpio.High); err != nil {
		return fmt.Errorf("reset high: %w", err)
	}
	sleep()
	return nil
}
