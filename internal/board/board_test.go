package board

import (
	"context"
	"errors"
	"flag"
	"io"
	"log/slog"
	"testing"

	"periph.io/x/conn/v3/physic"

	"github.com/BeatGlow/oled"
	"github.com/BeatGlow/oled/conn"
)

func TestFlags(t *testing.T) {
	var f Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.Register(fs)
	if err := fs.Parse([]string{"-bus", "spi", "-spi-speed", "10MHz", "-width", "64", "-height", "48", "-i2c-speed", "400kHz"}); err != nil {
		t.Fatal(err)
	}
	if f.Bus != "spi" || f.Width != 64 || f.Height != 48 {
		t.Errorf("unexpected flags %+v", f)
	}
	if f.SPISpeed != 10*physic.MegaHertz {
		t.Errorf("expected 10MHz, got %s", f.SPISpeed)
	}
	if f.I2CSpeed != 400*physic.KiloHertz {
		t.Errorf("expected 400kHz, got %s", f.I2CSpeed)
	}
	if f.I2CAddr != 0x3c {
		t.Errorf("expected default address 0x3c, got %#x", f.I2CAddr)
	}
}

func TestFlagsDefaults(t *testing.T) {
	var f Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.Register(fs)
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	if err := f.validate(); err != nil {
		t.Errorf("expected defaults to be valid, got %v", err)
	}
	if f.SPISpeed != 8*physic.MegaHertz {
		t.Errorf("expected default SPI clock 8MHz, got %s", f.SPISpeed)
	}
}

func TestOpenInvalid(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	tests := []struct {
		name  string
		flags Flags
		want  error
	}{
		{"bus", Flags{Bus: "uart", Width: 128, Height: 64}, ErrBus},
		{"geometry", Flags{Bus: "i2c", Width: 128, Height: 48}, oled.ErrUnsupportedGeometry},
		{"address", Flags{Bus: "i2c", I2CAddr: 0x1003c, Width: 128, Height: 64}, conn.ErrI2CAddr},
		{"8-bit address", Flags{Bus: "i2c", I2CAddr: 0x80, Width: 128, Height: 64}, conn.ErrI2CAddr},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			dev, c, err := test.flags.Open(log)
			if !errors.Is(err, test.want) {
				t.Errorf("expected %v, got %v", test.want, err)
			}
			if dev != nil || c != nil {
				t.Error("expected nothing to be opened")
			}
		})
	}
}

func TestLogger(t *testing.T) {
	t.Setenv("OLED_DEBUG", "")
	f := Flags{}
	if f.Logger().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug logging to be off")
	}
	f.Debug = true
	if !f.Logger().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug logging to be on")
	}
	f.Debug = false
	t.Setenv("OLED_DEBUG", "1")
	if !f.Logger().Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected OLED_DEBUG to enable debug logging")
	}
}

type fakeHalter struct {
	halted int
	err    error
}

func (h *fakeHalter) Halt() error {
	h.halted++
	return h.err
}

type fakeCloser struct {
	closed int
	err    error
}

func (c *fakeCloser) Close() error {
	c.closed++
	return c.err
}

func TestClose(t *testing.T) {
	var (
		errHalt  = errors.New("halt failed")
		errClose = errors.New("close failed")
	)
	tests := []struct {
		name      string
		halt      bool
		haltErr   error
		closeErr  error
		wantHalts int
		want      []error
	}{
		{"halt", true, nil, nil, 1, nil},
		{"keep on", false, nil, nil, 0, nil},
		{"halt error", true, errHalt, nil, 1, []error{errHalt}},
		{"close error", true, nil, errClose, 1, []error{errClose}},
		{"both errors", true, errHalt, errClose, 1, []error{errHalt, errClose}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var (
				dev = &fakeHalter{err: test.haltErr}
				bus = &fakeCloser{err: test.closeErr}
			)
			err := Close(dev, bus, test.halt)
			if dev.halted != test.wantHalts {
				t.Errorf("expected %d halts, got %d", test.wantHalts, dev.halted)
			}
			if bus.closed != 1 {
				t.Errorf("expected the bus to be closed once, got %d", bus.closed)
			}
			if len(test.want) == 0 && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			for _, want := range test.want {
				if !errors.Is(err, want) {
					t.Errorf("expected %v in %v", want, err)
				}
			}
		})
	}
}
