package stats

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/BeatGlow/oled"
	"github.com/BeatGlow/oled/pixel"
)

// TimeLayout is the timestamp format of the status screen.
const TimeLayout = "2006-01-02 15:04:05"

// Screen lays out a [Sample] as lines of text, top to bottom: title, time, CPU,
// memory, disk, temperature and address.
type Screen struct {
	// Title is centered on the first line.
	Title string

	// Face is the font, [basicfont.Face7x13] when nil.
	Face font.Face

	// LineHeight is the line pitch in pixels, the font height when zero.
	LineHeight int
}

// Lines returns the text lines for s.
func (s *Screen) Lines(smp Sample) []string {
	return []string{
		s.Title,
		" " + smp.Time.Format(TimeLayout),
		smp.CPU,
		smp.Mem,
		smp.Disk,
		smp.Temp,
		"Address:" + smp.Addr,
	}
}

// Compose draws the lines for smp onto dst. Lines that do not fit are clipped.
func (s *Screen) Compose(dst draw.Image, smp Sample) {
	var (
		face   = s.face()
		pitch  = s.LineHeight
		bounds = dst.Bounds()
		ascent = face.Metrics().Ascent
	)
	if pitch <= 0 {
		pitch = face.Metrics().Height.Ceil()
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(pixel.On),
		Face: face,
	}
	for i, line := range s.Lines(smp) {
		top := bounds.Min.Y + i*pitch
		if top >= bounds.Max.Y {
			break
		}
		x := fixed.I(bounds.Min.X)
		if i == 0 {
			if w := d.MeasureString(line); w < fixed.I(bounds.Dx()) {
				x += (fixed.I(bounds.Dx()) - w) / 2
			}
		}
		d.Dot = fixed.Point26_6{X: x, Y: fixed.I(top) + ascent}
		d.DrawString(line)
	}
}

// Render clears the display, composes smp and shows the frame.
func (s *Screen) Render(d oled.Display, smp Sample) error {
	d.Fill(0)
	s.Compose(d, smp)
	return d.Show()
}

func (s *Screen) face() font.Face {
	if s.Face == nil {
		return basicfont.Face7x13
	}
	return s.Face
}
