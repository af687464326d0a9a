package conn

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
)

// I²C control bytes.
const (
	i2cCommand = 0x80 // Co=1, D/C#=0: one command byte follows
	i2cData    = 0x40 // Co=0, D/C#=1: display RAM bytes follow
)

// DefaultI2CAddr is the 7-bit address most SSD1306 modules ship with.
const DefaultI2CAddr = 0x3C

// I2COpts describes the I²C transport configuration.
type I2COpts struct {
	// Addr is the 7-bit device address.
	Addr uint16

	// Speed changes the bus clock when not zero.
	Speed physic.Frequency

	// BatchSize limits the number of display RAM bytes per transfer. Zero sends a
	// whole frame in one transfer, one mimics byte-at-a-time SMBus writes.
	BatchSize int
}

// DefaultI2COpts are the default I²C transport settings.
var DefaultI2COpts = I2COpts{
	Addr: DefaultI2CAddr,
}

// I2C talks to the controller over an I²C bus.
type I2C struct {
	dev       *i2c.Dev
	bus       i2c.BusCloser
	batchSize int
}

// NewI2C returns a transport on an already opened bus. The bus is not closed by
// [I2C.Close].
func NewI2C(bus i2c.Bus, opts *I2COpts) (*I2C, error) {
	o := DefaultI2COpts
	if opts != nil {
		o = *opts
	}
	if o.Addr == 0 {
		o.Addr = DefaultI2CAddr
	}
	if o.Addr > 0x7f {
		return nil, fmt.Errorf("%w %#x", ErrI2CAddr, o.Addr)
	}
	if o.Speed > 0 {
		if err := bus.SetSpeed(o.Speed); err != nil {
			return nil, fmt.Errorf("conn: set I²C speed %s: %w", o.Speed, err)
		}
	}
	return &I2C{
		dev:       &i2c.Dev{Bus: bus, Addr: o.Addr},
		batchSize: o.BatchSize,
	}, nil
}

// OpenI2C opens the named bus from the periph registry; an empty name selects the
// first available bus.
func OpenI2C(name string, opts *I2COpts) (*I2C, error) {
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, err
	}
	c, err := NewI2C(bus, opts)
	if err != nil {
		_ = bus.Close()
		return nil, err
	}
	c.bus = bus
	return c, nil
}

func (c *I2C) String() string {
	return fmt.Sprintf("I²C %s", c.dev)
}

// Close releases the bus if it was opened by [OpenI2C].
func (c *I2C) Close() error {
	if c.bus == nil {
		return nil
	}
	return c.bus.Close()
}

// Command sends cmd and its arguments, one control-prefixed transfer per byte.
func (c *I2C) Command(cmd byte, args ...byte) error {
	if err := c.dev.Tx([]byte{i2cCommand, cmd}, nil); err != nil {
		return err
	}
	for _, arg := range args {
		if err := c.dev.Tx([]byte{i2cCommand, arg}, nil); err != nil {
			return err
		}
	}
	return nil
}

// Data sends display RAM bytes in order.
func (c *I2C) Data(data ...byte) error {
	return chunks(data, c.batchSize, func(p []byte) error {
		buf := make([]byte, 1+len(p))
		buf[0] = i2cData
		copy(buf[1:], p)
		return c.dev.Tx(buf, nil)
	})
}
