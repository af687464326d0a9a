// Package draw has pixel-level shape primitives for frame composition.
//
// All functions take any [image/draw.Image], including the display frame buffer, and
// rely on its Set method to clip coordinates outside the image.
package draw

import (
	"image/draw"
)

// Image is an alias for [image/draw.Image].
type Image = draw.Image
