// Package oled drives SSD1306 monochrome OLED controllers.
//
// The driver keeps a frame buffer in the controller's page layout (see
// [pixel.PageImage]), runs the power-on and initialization command sequences and
// copies the buffer into display RAM on [Dev.Show]. The bus is abstracted by
// [Conn]; package conn provides I²C and SPI implementations.
package oled

import (
	"errors"
	"image/draw"
)

// Errors
var (
	ErrUnsupportedGeometry = errors.New("oled: unsupported display geometry")
	ErrNotInitialized      = errors.New("oled: display is not initialized")
)

// TransportError is returned when a bus or reset line write fails. The command or
// data sequence in progress is aborted and the controller state is undefined until
// the display is initialized again.
type TransportError struct {
	// Op is the driver operation that was interrupted.
	Op string

	// Err is the transport failure.
	Err error
}

func (e *TransportError) Error() string {
	return "oled: " + e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Conn is the connection interface for communicating with the controller.
type Conn interface {
	String() string

	// Command sends a command byte with optional arguments.
	Command(byte, ...byte) error

	// Data sends display RAM bytes.
	Data(...byte) error
}

// Display is what a frame composer needs from a display: a drawable surface that can
// be cleared and flushed.
type Display interface {
	draw.Image

	// Fill sets every pixel to v (0 or 1).
	Fill(v uint8)

	// Show copies the frame to the display.
	Show() error
}
