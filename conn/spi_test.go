package conn

import (
	"bytes"
	"errors"
	"testing"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

type spiTx struct {
	dc gpio.Level
	w  []byte
}

type fakeSPI struct {
	dc    *gpiotest.Pin
	speed physic.Frequency
	mode  spi.Mode
	bits  int
	txs   []spiTx
	err   error
}

func (f *fakeSPI) String() string                     { return "fake" }
func (f *fakeSPI) LimitSpeed(s physic.Frequency) error { return nil }
func (f *fakeSPI) Duplex() conn.Duplex                 { return conn.Half }
func (f *fakeSPI) TxPackets(p []spi.Packet) error      { return errors.New("not implemented") }

func (f *fakeSPI) Connect(s physic.Frequency, mode spi.Mode, bits int) (spi.Conn, error) {
	f.speed, f.mode, f.bits = s, mode, bits
	return f, nil
}

func (f *fakeSPI) Tx(w, r []byte) error {
	if f.err != nil {
		return f.err
	}
	f.txs = append(f.txs, spiTx{dc: f.dc.Read(), w: append([]byte(nil), w...)})
	return nil
}

func TestSPI(t *testing.T) {
	dc := &gpiotest.Pin{N: "DC"}
	port := &fakeSPI{dc: dc}
	c, err := NewSPI(port, dc, &SPIOpts{BatchSize: 4})
	if err != nil {
		t.Fatal(err)
	}
	if port.speed != DefaultSPIOpts.Speed {
		t.Errorf("expected clock %s, got %s", DefaultSPIOpts.Speed, port.speed)
	}
	if port.mode != spi.Mode0 || port.bits != 8 {
		t.Errorf("expected mode 0 with 8 bits, got mode %d with %d bits", port.mode, port.bits)
	}

	if err = c.Command(0x22, 0x00, 0x07); err != nil {
		t.Fatal(err)
	}
	if err = c.Data(1, 2, 3, 4, 5, 6); err != nil {
		t.Fatal(err)
	}

	want := []spiTx{
		{gpio.Low, []byte{0x22, 0x00, 0x07}},
		{gpio.High, []byte{1, 2, 3, 4}},
		{gpio.High, []byte{5, 6}},
	}
	if len(port.txs) != len(want) {
		t.Fatalf("expected %d transfers, got %d", len(want), len(port.txs))
	}
	for i, tx := range port.txs {
		if tx.dc != want[i].dc {
			t.Errorf("transfer %d: expected D/C %s, got %s", i, want[i].dc, tx.dc)
		}
		if !bytes.Equal(tx.w, want[i].w) {
			t.Errorf("transfer %d: expected % x, got % x", i, want[i].w, tx.w)
		}
	}
}

func TestSPIInvalidDC(t *testing.T) {
	for _, pin := range []gpio.PinOut{nil, gpio.INVALID} {
		if _, err := NewSPI(&fakeSPI{}, pin, nil); !errors.Is(err, ErrDCPin) {
			t.Errorf("expected ErrDCPin, got %v", err)
		}
	}
}

func TestSPIError(t *testing.T) {
	dc := &gpiotest.Pin{N: "DC"}
	port := &fakeSPI{dc: dc, err: errBus}
	c, err := NewSPI(port, dc, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err = c.Data(0xff); !errors.Is(err, errBus) {
		t.Errorf("expected bus error, got %v", err)
	}
}
