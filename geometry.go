package oled

import "fmt"

// Geometry is a panel size in pixels.
type Geometry struct {
	Width  int
	Height int
}

// Supported panel sizes.
var (
	Geometry128x64 = Geometry{128, 64}
	Geometry128x32 = Geometry{128, 32}
	Geometry96x16  = Geometry{96, 16}
	Geometry72x40  = Geometry{72, 40}
	Geometry64x48  = Geometry{64, 48}
	Geometry64x32  = Geometry{64, 32}
)

// Geometries lists every supported panel size.
var Geometries = []Geometry{
	Geometry128x64,
	Geometry128x32,
	Geometry96x16,
	Geometry72x40,
	Geometry64x48,
	Geometry64x32,
}

// LookupGeometry returns the supported geometry for a width and height, or an error
// wrapping [ErrUnsupportedGeometry].
func LookupGeometry(width, height int) (Geometry, error) {
	g := Geometry{width, height}
	for _, s := range Geometries {
		if s == g {
			return g, nil
		}
	}
	return Geometry{}, fmt.Errorf("%w %s", ErrUnsupportedGeometry, g)
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}

// Pages is the number of 8-row pages.
func (g Geometry) Pages() int {
	return g.Height / 8
}

// columnOffset is where the visible columns start in the controller's 128-column RAM.
func (g Geometry) columnOffset() int {
	switch g.Width {
	case 64:
		return 32
	case 72:
		return 28
	default:
		return 0
	}
}

func (g Geometry) comPins() byte {
	if g.Height == 16 || g.Height == 32 {
		return comPinsSequential
	}
	return comPinsAlternative
}
