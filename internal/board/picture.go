package board

import (
	"image"
	"image/draw"

	"github.com/MaxHalford/halfgone"
	"github.com/disintegration/imaging"
)

// LoadPicture decodes an image file and prepares it for a display of the given bounds
// with [Dither].
func LoadPicture(path string, bounds image.Rectangle) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	return Dither(img, bounds), nil
}

// Dither scales img to fit bounds, centers it on a black background and reduces it to
// black and white with Floyd-Steinberg error diffusion.
func Dither(img image.Image, bounds image.Rectangle) *image.Gray {
	gray := image.NewGray(bounds)
	if img.Bounds().Size() != bounds.Size() {
		img = imaging.Fit(img, bounds.Dx(), bounds.Dy(), imaging.Lanczos)
	}
	var (
		size   = img.Bounds().Size()
		origin = bounds.Min.Add(bounds.Size().Sub(size).Div(2))
	)
	draw.Draw(gray, image.Rectangle{Min: origin, Max: origin.Add(size)}, img, img.Bounds().Min, draw.Src)
	return halfgone.FloydSteinbergDitherer{}.Apply(gray)
}
