package conn

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// SPIOpts describes the SPI transport configuration.
type SPIOpts struct {
	// Speed is the SPI clock.
	Speed physic.Frequency

	// Mode is the SPI clock polarity and phase.
	Mode spi.Mode

	// BatchSize limits the number of bytes per SPI transfer.
	BatchSize int
}

// DefaultSPIOpts are the default SPI transport settings.
var DefaultSPIOpts = SPIOpts{
	Speed:     8 * physic.MegaHertz,
	Mode:      spi.Mode0,
	BatchSize: 4096,
}

// SPI talks to the controller over a 4-wire SPI port, using a GPIO as D/C line.
type SPI struct {
	c         spi.Conn
	port      spi.PortCloser
	dc        gpio.PinOut
	batchSize int
}

// NewSPI connects to an already opened port. The port is not closed by [SPI.Close].
func NewSPI(p spi.Port, dc gpio.PinOut, opts *SPIOpts) (*SPI, error) {
	if dc == nil || dc == gpio.INVALID {
		return nil, ErrDCPin
	}
	o := DefaultSPIOpts
	if opts != nil {
		o = *opts
	}
	if o.Speed == 0 {
		o.Speed = DefaultSPIOpts.Speed
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultSPIOpts.BatchSize
	}
	c, err := p.Connect(o.Speed, o.Mode, 8)
	if err != nil {
		return nil, fmt.Errorf("conn: SPI connect: %w", err)
	}
	return &SPI{
		c:         c,
		dc:        dc,
		batchSize: o.BatchSize,
	}, nil
}

// OpenSPI opens the named port from the periph registry; an empty name selects the
// first available port.
func OpenSPI(name string, dc gpio.PinOut, opts *SPIOpts) (*SPI, error) {
	p, err := spireg.Open(name)
	if err != nil {
		return nil, err
	}
	c, err := NewSPI(p, dc, opts)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	c.port = p
	return c, nil
}

func (c *SPI) String() string {
	return fmt.Sprintf("SPI %s (D/C %s)", c.c, c.dc)
}

// Close releases the port if it was opened by [OpenSPI].
func (c *SPI) Close() error {
	if c.port == nil {
		return nil
	}
	return c.port.Close()
}

// Command sends cmd and its arguments with D/C low.
func (c *SPI) Command(cmd byte, args ...byte) error {
	if err := c.dc.Out(gpio.Low); err != nil {
		return err
	}
	return c.write(append([]byte{cmd}, args...))
}

// Data sends display RAM bytes with D/C high.
func (c *SPI) Data(data ...byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := c.dc.Out(gpio.High); err != nil {
		return err
	}
	return c.write(data)
}

func (c *SPI) write(p []byte) error {
	return chunks(p, c.batchSize, func(b []byte) error {
		return c.c.Tx(b, nil)
	})
}
