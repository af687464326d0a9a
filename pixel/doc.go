// Package pixel implements the monochrome color model and the page-ordered frame buffer
// used by SSD1306 class OLED controllers.
//
// Both types are compatible with Go's native [color.Color] and [image.Image] /
// [draw.Image] interfaces, so the standard library drawing routines and font
// rasterizers can render straight into display memory.
package pixel
