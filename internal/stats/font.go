package stats

import (
	"fmt"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
)

// DefaultFontSize is the TrueType font size in pixels; it fits 8 lines on a 64 pixel
// tall display.
const DefaultFontSize = 8

// BasicFont selects the built-in 7x13 bitmap font in [LoadFace].
const BasicFont = "basic"

// LoadFace returns a font face. An empty name selects the embedded Go Mono TrueType
// font, [BasicFont] the 7x13 bitmap font; anything else is a TrueType file path.
func LoadFace(name string, size float64) (font.Face, error) {
	switch name {
	case BasicFont:
		return basicfont.Face7x13, nil
	case "":
		return parseFace(gomono.TTF, size)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return parseFace(b, size)
}

func parseFace(b []byte, size float64) (font.Face, error) {
	f, err := truetype.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("stats: parse font: %w", err)
	}
	if size <= 0 {
		size = DefaultFontSize
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}
