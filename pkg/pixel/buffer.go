package pixel

import "image"

// Buffer is a fixed-length pixel strip allocated once and mutated in place.
// Accessors are bounds-checked: writes outside the strip are dropped and
// reads outside the strip return black.
type Buffer struct {
	pixels []Color
}

// NewBuffer allocates a buffer of n pixels, all black.
func NewBuffer(n int) *Buffer {
	return &Buffer{pixels: make([]Color, n)}
}

// Len returns the number of pixels.
func (b *Buffer) Len() int {
	return len(b.pixels)
}

// Set writes one pixel. Indexes outside the strip are ignored.
func (b *Buffer) Set(i int, c Color) {
	if i < 0 || i >= len(b.pixels) {
		return
	}
	b.pixels[i] = c
}

// At reads one pixel. Indexes outside the strip read as black.
func (b *Buffer) At(i int) Color {
	if i < 0 || i >= len(b.pixels) {
		return Black
	}
	return b.pixels[i]
}

// Fill writes c to every pixel.
func (b *Buffer) Fill(c Color) {
	for i := range b.pixels {
		b.pixels[i] = c
	}
}

// Clear turns every pixel off.
func (b *Buffer) Clear() {
	b.Fill(Black)
}

// Gradient fills the strip with a linear ramp from c0 to c1.
func (b *Buffer) Gradient(c0, c1 Color) {
	n := len(b.pixels)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n)
		b.pixels[i] = Color{
			R: byte(float64(c0.R) + (float64(c1.R)-float64(c0.R))*t),
			G: byte(float64(c0.G) + (float64(c1.G)-float64(c0.G))*t),
			B: byte(float64(c0.B) + (float64(c1.B)-float64(c0.B))*t),
		}
	}
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	c := NewBuffer(len(b.pixels))
	copy(c.pixels, b.pixels)
	return c
}

// Bytes returns the strip content as packed RGB triplets.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, 0, len(b.pixels)*3)
	for _, c := range b.pixels {
		out = append(out, c.R, c.G, c.B)
	}
	return out
}

// Image renders the strip as a one-row image.
func (b *Buffer) Image() *image.NRGBA {
	im := image.NewNRGBA(image.Rect(0, 0, len(b.pixels), 1))
	for x, c := range b.pixels {
		im.SetNRGBA(x, 0, c.NRGBA())
	}
	return im
}
