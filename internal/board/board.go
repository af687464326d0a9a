// Package board wires a display from command line flags: periph host drivers, the
// bus transport, the optional reset line and the driver itself.
package board

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/oled"
	"github.com/BeatGlow/oled/conn"
)

// Errors
var (
	ErrBus = errors.New("board: unsupported bus type")
	ErrPin = errors.New("board: GPIO pin not found")
)

// Flags are the display connection settings.
type Flags struct {
	Bus         string
	I2CBus      string
	I2CAddr     uint
	I2CSpeed    physic.Frequency
	I2CBatch    int
	SPIPort     string
	SPISpeed    physic.Frequency
	DC          string
	Reset       string
	Width       int
	Height      int
	ExternalVCC bool
	Debug       bool
}

// Register adds the connection flags to fs.
func (f *Flags) Register(fs *flag.FlagSet) {
	f.SPISpeed = conn.DefaultSPIOpts.Speed
	fs.StringVar(&f.Bus, "bus", "i2c", "bus type (i2c or spi)")
	fs.StringVar(&f.I2CBus, "i2c-bus", "", "I²C bus name (default: first available)")
	fs.UintVar(&f.I2CAddr, "i2c-addr", conn.DefaultI2CAddr, "I²C device address")
	fs.Var(&f.I2CSpeed, "i2c-speed", "I²C bus speed, e.g. 400kHz (default: unchanged)")
	fs.IntVar(&f.I2CBatch, "i2c-batch", 0, "I²C data bytes per transfer (0: whole frame)")
	fs.StringVar(&f.SPIPort, "spi-port", "", "SPI port name (default: first available)")
	fs.Var(&f.SPISpeed, "spi-speed", "SPI clock")
	fs.StringVar(&f.DC, "dc", "GPIO24", "data/command GPIO pin (SPI only)")
	fs.StringVar(&f.Reset, "reset", "", "reset GPIO pin (default: none)")
	fs.IntVar(&f.Width, "width", oled.DefaultOpts.Width, "display width")
	fs.IntVar(&f.Height, "height", oled.DefaultOpts.Height, "display height")
	fs.BoolVar(&f.ExternalVCC, "external-vcc", false, "panel has an external high voltage supply")
	fs.BoolVar(&f.Debug, "debug", false, "enable debug logging (also: OLED_DEBUG=1)")
}

// Logger returns a text logger on stderr, at debug level when requested by flag or by
// the OLED_DEBUG environment variable.
func (f *Flags) Logger() *slog.Logger {
	level := slog.LevelInfo
	if f.Debug || os.Getenv("OLED_DEBUG") != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func (f *Flags) validate() error {
	if f.Bus != "i2c" && f.Bus != "spi" {
		return fmt.Errorf("%w %q", ErrBus, f.Bus)
	}
	if f.Bus == "i2c" && f.I2CAddr > 0x7f {
		return fmt.Errorf("%w %#x", conn.ErrI2CAddr, f.I2CAddr)
	}
	if _, err := oled.LookupGeometry(f.Width, f.Height); err != nil {
		return err
	}
	return nil
}

type closingConn interface {
	oled.Conn
	io.Closer
}

// Open initializes the host and returns the display together with the bus, which the
// caller closes after halting the display.
func (f *Flags) Open(log *slog.Logger) (*oled.Dev, io.Closer, error) {
	if err := f.validate(); err != nil {
		return nil, nil, err
	}
	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}

	var reset gpio.PinOut
	if f.Reset != "" {
		p := gpioreg.ByName(f.Reset)
		if p == nil {
			return nil, nil, fmt.Errorf("%w: reset %q", ErrPin, f.Reset)
		}
		reset = p
	}

	var (
		c   closingConn
		err error
	)
	switch f.Bus {
	case "i2c":
		c, err = conn.OpenI2C(f.I2CBus, &conn.I2COpts{
			Addr:      uint16(f.I2CAddr),
			Speed:     f.I2CSpeed,
			BatchSize: f.I2CBatch,
		})
	case "spi":
		dc := gpioreg.ByName(f.DC)
		if dc == nil {
			return nil, nil, fmt.Errorf("%w: dc %q", ErrPin, f.DC)
		}
		c, err = conn.OpenSPI(f.SPIPort, dc, &conn.SPIOpts{Speed: f.SPISpeed})
	}
	if err != nil {
		return nil, nil, err
	}
	log.Info("using connection", "conn", c.String())

	dev, err := oled.New(c, &oled.Opts{
		Width:       f.Width,
		Height:      f.Height,
		ExternalVCC: f.ExternalVCC,
		Reset:       reset,
		Logger:      log,
	})
	if err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	log.Info("using display", "display", dev.String())
	return dev, c, nil
}

// Halter is a display that can be switched off.
type Halter interface {
	Halt() error
}

// Close halts dev when halt is set and closes bus. Both steps are attempted and their
// errors joined.
func Close(dev Halter, bus io.Closer, halt bool) error {
	var err error
	if halt {
		if herr := dev.Halt(); herr != nil {
			err = fmt.Errorf("board: halt: %w", herr)
		}
	}
	if cerr := bus.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("board: close: %w", cerr))
	}
	return err
}
