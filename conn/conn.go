// Package conn frames SSD1306 command and data traffic for the supported buses.
//
// The controller distinguishes instruction bytes from display RAM bytes either by a
// control byte in front of every I²C transfer or by the level of a dedicated
// data/command (D/C) line on SPI. Both transports expose the same two operations,
// Command and Data, so the driver never deals with framing.
package conn

import "errors"

// Errors
var (
	ErrDCPin   = errors.New("conn: data/command (DC) GPIO pin is invalid")
	ErrI2CAddr = errors.New("conn: invalid 7-bit I²C address")
)

func chunks(data []byte, size int, f func([]byte) error) error {
	if size <= 0 || size > len(data) {
		size = len(data)
	}
	for len(data) > 0 {
		n := min(size, len(data))
		if err := f(data[:n]); err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
