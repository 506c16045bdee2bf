package sink

import (
	"image"

	"github.com/mirrorworks/mirror.go/pkg/pixel"
)

// Sink is the output side of a mirror device. It receives the rendered
// contents of both LED lines whenever a frame lands.
type Sink interface {
	// Emit pushes the current contents of both lines to the output.
	Emit(left, right *pixel.Buffer) error
	// Clear blanks the output.
	Clear() error
	// Close blanks the output and releases the underlying devices.
	Close() error
}

// scaledImage serializes a strip as a one-row image with every channel
// scaled by level. Level 0xff keeps values unchanged.
func scaledImage(b *pixel.Buffer, level byte) *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, b.Len(), 1))
	for x := 0; x < im.Rect.Max.X; x++ {
		im.SetNRGBA(x, 0, b.At(x).Scale(level).NRGBA())
	}
	return im
}
