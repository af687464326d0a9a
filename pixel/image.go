package pixel

import (
	"image"
	"image/color"
	"image/draw"
)

// PageImage is a 1-bit per pixel monochrome image in the memory layout of an
// SSD1306 class controller.
//
// Rows are grouped in pages of 8. Every byte holds one column of one page with
// bit 0 being the topmost row of that page, so the pixel at (x, y) lives in
// Pix[(y/8)*Stride+x] at bit y%8. Pages follow each other, which makes Pix the
// exact byte stream for a horizontal-addressing data transfer.
type PageImage struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the page bytes.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pages.
	Stride int
}

// NewPageImage returns an all-off image of w by h pixels. The height is rounded up to
// whole pages for storage.
func NewPageImage(w, h int) *PageImage {
	if w < 0 || h < 0 {
		return &PageImage{Rect: image.Rect(0, 0, w, h)}
	}
	pages := (h + 7) / 8
	return &PageImage{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, pages*w),
		Stride: w,
	}
}

func (p *PageImage) ColorModel() color.Model {
	return MonoModel
}

func (p *PageImage) Bounds() image.Rectangle {
	return p.Rect
}

// Pages is the number of 8-row pages backing the image.
func (p *PageImage) Pages() int {
	if p.Stride == 0 {
		return 0
	}
	return len(p.Pix) / p.Stride
}

// PixOffset returns the index of the byte holding pixel (x, y) and the mask of its bit.
func (p *PageImage) PixOffset(x, y int) (int, byte) {
	x, y = x-p.Rect.Min.X, y-p.Rect.Min.Y
	return (y>>3)*p.Stride + x, 1 << uint(y&7)
}

// Bit returns 1 if the pixel at (x, y) is lit. Pixels outside the image read as 0.
func (p *PageImage) Bit(x, y int) uint8 {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return 0
	}
	i, mask := p.PixOffset(x, y)
	if p.Pix[i]&mask != 0 {
		return 1
	}
	return 0
}

// SetBit lights the pixel at (x, y) when v is 1 and clears it when v is 0. Only the
// lowest bit of v is used. Pixels outside the image are clipped silently.
func (p *PageImage) SetBit(x, y int, v uint8) {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return
	}
	i, mask := p.PixOffset(x, y)
	if v&1 != 0 {
		p.Pix[i] |= mask
	} else {
		p.Pix[i] &^= mask
	}
}

func (p *PageImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return MonoBit(p.Bit(x, y))
}

func (p *PageImage) Set(x, y int, c color.Color) {
	p.SetBit(x, y, monoModel(c).(Mono).Bit())
}

// Fill sets every pixel to c.
func (p *PageImage) Fill(c color.Color) {
	var value byte
	if monoModel(c).(Mono).On {
		value = 0xff
	}
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// Clear turns every pixel off.
func (p *PageImage) Clear() {
	p.Fill(Off)
}

// Bytes returns the image in transfer order: page 0 columns left to right, then page 1,
// and so on. The slice aliases the image memory and is valid until the next mutation.
func (p *PageImage) Bytes() []byte {
	return p.Pix
}

var _ draw.Image = (*PageImage)(nil)
