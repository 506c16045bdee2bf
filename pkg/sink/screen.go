package sink

import (
	"image"

	"periph.io/x/conn/v3/display"
	"periph.io/x/extra/devices/screen"

	"github.com/mirrorworks/mirror.go/pkg/pixel"
)

// Screen renders both LED lines as ANSI color bars on the terminal. It is
// the no-hardware stand-in for the SPI sink.
type Screen struct {
	left  display.Drawer
	right display.Drawer
}

// NewScreen builds a console renderer showing the first n pixels per line.
func NewScreen(n int) *Screen {
	return &Screen{left: screen.New(n), right: screen.New(n)}
}

// Emit draws both buffers.
func (s *Screen) Emit(left, right *pixel.Buffer) error {
	if err := s.left.Draw(s.left.Bounds(), left.Image(), image.Point{}); err != nil {
		return err
	}
	return s.right.Draw(s.right.Bounds(), right.Image(), image.Point{})
}

// Clear blanks both rendered lines.
func (s *Screen) Clear() error {
	if err := s.left.Halt(); err != nil {
		return err
	}
	return s.right.Halt()
}

// Close blanks the rendering. The terminal needs no other teardown.
func (s *Screen) Close() error {
	return s.Clear()
}
