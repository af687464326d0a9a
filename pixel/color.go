package pixel

import "image/color"

// MonoModel converts any color to [Mono] by thresholding its luminance.
var MonoModel color.Model = color.ModelFunc(monoModel)

var (
	Off = Mono{false}
	On  = Mono{true}
)

// Mono represents a 1-bit monochrome color.
type Mono struct {
	On bool
}

func (c Mono) RGBA() (r, g, b, a uint32) {
	if c.On {
		return 0xffff, 0xffff, 0xffff, 0xffff
	}
	return 0, 0, 0, 0xffff
}

// Bit returns the color as a display RAM bit value.
func (c Mono) Bit() uint8 {
	if c.On {
		return 1
	}
	return 0
}

// MonoBit returns On for odd values and Off otherwise.
func MonoBit(v uint8) Mono {
	return Mono{On: v&1 == 1}
}

func monoModel(c color.Color) color.Color {
	if _, ok := c.(Mono); ok {
		return c
	}
	r, g, b, _ := c.RGBA()

	// These coefficients (the fractions 0.299, 0.587 and 0.114) are the same
	// as those given by the JFIF specification.
	//
	// Note that 19595 + 38470 + 7471 equals 65536, so the sum stays inside
	// 32 bits and the top bit of the 31-bit shift is the half-intensity
	// threshold.
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 31

	return Mono{On: y != 0}
}
