package oled

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log/slog"
	"time"

	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/BeatGlow/oled/pixel"
)

// Opts is the display configuration.
type Opts struct {
	// Width of the display in pixels.
	Width int

	// Height of the display in pixels.
	Height int

	// ExternalVCC is set when the panel is driven by an external high voltage supply
	// instead of the internal charge pump.
	ExternalVCC bool

	// Reset is the optional hardware reset line.
	Reset gpio.PinOut

	// Logger receives debug records, [slog.Default] is used when nil.
	Logger *slog.Logger
}

// DefaultOpts is the configuration of the common 128x64 module.
var DefaultOpts = Opts{
	Width:  128,
	Height: 64,
}

// resetPulse is the hardware reset waveform; the controller needs at least 3µs low
// and is ready for commands shortly after RES# returns high.
var resetPulse = []struct {
	level gpio.Level
	hold  time.Duration
}{
	{gpio.High, 1 * time.Millisecond},
	{gpio.Low, 10 * time.Millisecond},
	{gpio.High, 10 * time.Millisecond},
}

// Dev is an open handle to an SSD1306 controller.
//
// Dev is not safe for concurrent use.
type Dev struct {
	c           Conn
	rst         gpio.PinOut
	log         *slog.Logger
	geometry    Geometry
	externalVCC bool
	buf         *pixel.PageImage
	power       bool
	ready       bool
}

// New resets and initializes the controller on c, clears display RAM and returns the
// device. Zero Width and Height select the [DefaultOpts] size.
func New(c Conn, opts *Opts) (*Dev, error) {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.Width == 0 && o.Height == 0 {
		o.Width, o.Height = DefaultOpts.Width, DefaultOpts.Height
	}
	g, err := LookupGeometry(o.Width, o.Height)
	if err != nil {
		return nil, err
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}

	d := &Dev{
		c:           c,
		rst:         o.Reset,
		log:         o.Logger.With("display", "ssd1306", "size", g.String()),
		geometry:    g,
		externalVCC: o.ExternalVCC,
		buf:         pixel.NewPageImage(g.Width, g.Height),
	}
	if err = d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dev) init() (err error) {
	if err = d.powerOn(); err != nil {
		return
	}
	seq := initSequence(d.geometry, d.externalVCC)
	d.log.Debug("init", "conn", d.c.String(), "commands", len(seq), "external_vcc", d.externalVCC)
	if err = d.commands("init", seq...); err != nil {
		return
	}
	d.ready = true
	d.buf.Clear()
	return d.Show()
}

func (d *Dev) String() string {
	return fmt.Sprintf("ssd1306.Dev{%s}", d.geometry)
}

// Geometry returns the panel size.
func (d *Dev) Geometry() Geometry {
	return d.geometry
}

// Image returns the frame buffer. Changes become visible on the next [Dev.Show].
func (d *Dev) Image() *pixel.PageImage {
	return d.buf
}

func (d *Dev) ColorModel() color.Model {
	return pixel.MonoModel
}

func (d *Dev) Bounds() image.Rectangle {
	return d.buf.Bounds()
}

func (d *Dev) At(x, y int) color.Color {
	return d.buf.At(x, y)
}

func (d *Dev) Set(x, y int, c color.Color) {
	d.buf.Set(x, y, c)
}

// SetPixel lights (v=1) or clears (v=0) a pixel in the frame buffer. Coordinates
// outside the display are ignored.
func (d *Dev) SetPixel(x, y int, v uint8) {
	d.buf.SetBit(x, y, v)
}

// Pixel returns the frame buffer value at (x, y); 0 outside the display.
func (d *Dev) Pixel(x, y int) uint8 {
	return d.buf.Bit(x, y)
}

// Fill sets every pixel of the frame buffer to v.
func (d *Dev) Fill(v uint8) {
	d.buf.Fill(pixel.MonoBit(v))
}

// Show copies the frame buffer to display RAM. A transport failure aborts the
// transfer and leaves a partially updated frame on the panel.
func (d *Dev) Show() error {
	if !d.ready {
		return ErrNotInitialized
	}
	var (
		x0    = byte(d.geometry.columnOffset())
		x1    = x0 + byte(d.geometry.Width-1)
		pages = byte(d.geometry.Pages())
	)
	if err := d.commands("show",
		[]byte{setColumnAddr, x0, x1},
		[]byte{setPageAddr, 0, pages - 1},
	); err != nil {
		return err
	}
	if err := d.c.Data(d.buf.Bytes()...); err != nil {
		return &TransportError{Op: "show", Err: err}
	}
	return nil
}

// Draw renders src onto the frame buffer and shows it. Sources that already use the
// controller layout and cover the whole display are copied without conversion.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if !d.ready {
		return ErrNotInitialized
	}
	r := dst.Intersect(d.buf.Rect)
	if r.Empty() {
		return nil
	}
	if r == d.buf.Rect && sp == (image.Point{}) && d.copyFrame(src) {
		return d.Show()
	}
	draw.Draw(d.buf, r, src, sp, draw.Src)
	return d.Show()
}

func (d *Dev) copyFrame(src image.Image) bool {
	var (
		rect image.Rectangle
		pix  []byte
	)
	switch src := src.(type) {
	case *pixel.PageImage:
		rect, pix = src.Rect, src.Pix
	case *image1bit.VerticalLSB:
		if src.Stride != d.buf.Stride {
			return false
		}
		rect, pix = src.Rect, src.Pix
	default:
		return false
	}
	if rect != d.buf.Rect || len(pix) != len(d.buf.Pix) {
		return false
	}
	copy(d.buf.Pix, pix)
	return true
}

// Contrast sets the segment current, 0x00 (dimmest) to 0xFF.
func (d *Dev) Contrast(level uint8) error {
	if !d.ready {
		return ErrNotInitialized
	}
	return d.commands("contrast", []byte{setContrast, level})
}

// Invert swaps lit and unlit pixels on the panel without touching the frame buffer.
func (d *Dev) Invert(invert bool) error {
	if !d.ready {
		return ErrNotInitialized
	}
	cmd := byte(setNormalDisplay)
	if invert {
		cmd |= 0x01
	}
	return d.commands("invert", []byte{cmd})
}

// Power reports whether the panel is switched on.
func (d *Dev) Power() bool {
	return d.power
}

// PowerOff switches the panel off. Display RAM and configuration are retained.
func (d *Dev) PowerOff() error {
	if !d.ready {
		return ErrNotInitialized
	}
	if err := d.commands("power off", []byte{displayOff}); err != nil {
		return err
	}
	d.power = false
	d.log.Debug("power off")
	return nil
}

// PowerOn pulses the reset line, if any, and switches the panel on. The
// initialization sequence is not repeated.
func (d *Dev) PowerOn() error {
	if !d.ready {
		return ErrNotInitialized
	}
	return d.powerOn()
}

func (d *Dev) powerOn() error {
	if d.rst != nil {
		for _, step := range resetPulse {
			if err := d.rst.Out(step.level); err != nil {
				return &TransportError{Op: "reset", Err: err}
			}
			time.Sleep(step.hold)
		}
	}
	if err := d.commands("power on", []byte{displayOn}); err != nil {
		return err
	}
	d.power = true
	d.log.Debug("power on", "reset", d.rst != nil)
	return nil
}

// Halt switches the panel off. The bus is left open.
func (d *Dev) Halt() error {
	return d.PowerOff()
}

func (d *Dev) commands(op string, commands ...[]byte) error {
	for _, command := range commands {
		if err := d.c.Command(command[0], command[1:]...); err != nil {
			return &TransportError{Op: op, Err: err}
		}
	}
	return nil
}

// Interface checks.
var (
	_ display.Drawer = (*Dev)(nil)
	_ Display        = (*Dev)(nil)
)
