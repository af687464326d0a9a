package pixel

import (
	"bytes"
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestPageImage(t *testing.T) {
	testCases := []image.Point{
		{},
		image.Pt(1, 1),
		image.Pt(2, 8),
		image.Pt(64, 48),
		image.Pt(72, 40),
		image.Pt(96, 16),
		image.Pt(128, 32),
		image.Pt(128, 64),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			i := NewPageImage(test.X, test.Y)

			if v := i.Bounds().Size(); !v.Eq(test) {
				it.Errorf("expected image size %s, got %s", test, v)
			}
			if v := i.ColorModel(); v != MonoModel {
				it.Errorf("expected color model %T, got %T", MonoModel, v)
			}
			if want := (test.Y + 7) / 8 * test.X; len(i.Pix) != want {
				it.Errorf("expected %d bytes, got %d", want, len(i.Pix))
			}

			it.Run("set-get", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						i.SetBit(x, y, 1)
						if v := i.Bit(x, y); v != 1 {
							itt.Fatalf("pixel (%d,%d) is %d after set, expected 1", x, y, v)
						}
						i.SetBit(x, y, 0)
						if v := i.Bit(x, y); v != 0 {
							itt.Fatalf("pixel (%d,%d) is %d after clear, expected 0", x, y, v)
						}
					}
				}
			})

			it.Run("colors", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := testRandomColor()
						i.Set(x, y, c)
						if v := MonoModel.Convert(c); i.At(x, y) != v {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
						}
					}
				}
			})

			it.Run("out-bounds", func(itt *testing.T) {
				i.Clear()
				for y := -test.Y - 1; y < test.Y*2+1; y++ {
					for x := -test.X - 1; x < test.X*2+1; x++ {
						if (image.Point{X: x, Y: y}).In(i.Rect) {
							continue
						}
						i.SetBit(x, y, 1)
						if v := i.At(x, y); v != color.Transparent {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected transparent", x, y, v)
						}
						if v := i.Bit(x, y); v != 0 {
							itt.Fatalf("pixel (%d,%d) is %d, expected 0", x, y, v)
						}
					}
				}
				for j, b := range i.Pix {
					if b != 0 {
						itt.Fatalf("byte %d changed to %#02x by out of bounds writes", j, b)
					}
				}
			})

			it.Run("fill", func(itt *testing.T) {
				for _, c := range []Mono{On, Off} {
					i.Fill(c)
					for y := 0; y < test.Y; y++ {
						for x := 0; x < test.X; x++ {
							if v := i.Bit(x, y); v != c.Bit() {
								itt.Fatalf("fill %v: pixel (%d,%d) is %d", c, x, y, v)
							}
						}
					}
				}
			})

			it.Run("clear", func(itt *testing.T) {
				i.Fill(On)
				i.Clear()
				for j, b := range i.Pix {
					if b != 0 {
						itt.Fatalf("byte %d is %#02x after clear", j, b)
					}
				}
			})
		})
	}
}

func TestPageImageLayout(t *testing.T) {
	i := NewPageImage(128, 64)
	i.SetBit(0, 0, 1)
	i.SetBit(5, 7, 1)
	i.SetBit(5, 9, 1)
	i.SetBit(127, 63, 1)

	want := map[int]byte{
		0:           0x01,
		5:           0x80,
		128 + 5:     0x02,
		7*128 + 127: 0x80,
	}
	for j, b := range i.Bytes() {
		if b != want[j] {
			t.Errorf("byte %d: expected %#02x, got %#02x", j, want[j], b)
		}
	}
}

func TestPageImageNonInterference(t *testing.T) {
	i := NewPageImage(72, 40)
	rng := rand.New(rand.NewSource(1))
	for j := range i.Pix {
		i.Pix[j] = byte(rng.Intn(256))
	}
	before := append([]byte(nil), i.Pix...)

	x, y := 33, 21
	i.SetBit(x, y, i.Bit(x, y)^1)

	idx, mask := i.PixOffset(x, y)
	for j := range i.Pix {
		diff := before[j] ^ i.Pix[j]
		switch {
		case j == idx && diff != mask:
			t.Errorf("byte %d: expected only mask %#02x to flip, got %#02x", j, mask, diff)
		case j != idx && diff != 0:
			t.Errorf("byte %d changed from %#02x to %#02x", j, before[j], i.Pix[j])
		}
	}
}

func TestPageImageBytesStable(t *testing.T) {
	i := NewPageImage(64, 48)
	i.SetBit(10, 10, 1)
	a := append([]byte(nil), i.Bytes()...)
	b := i.Bytes()
	if !bytes.Equal(a, b) {
		t.Error("Bytes changed without an intervening mutation")
	}
	if len(b) != i.Pages()*64 {
		t.Errorf("expected %d bytes, got %d", i.Pages()*64, len(b))
	}
	if i.Pages() != 6 {
		t.Errorf("expected 6 pages, got %d", i.Pages())
	}
}

func testRandomColor() color.Color {
	return color.RGBA{
		R: uint8(rand.Intn(255)),
		G: uint8(rand.Intn(255)),
		B: uint8(rand.Intn(255)),
		A: 0xFF,
	}
}
