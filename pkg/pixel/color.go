package pixel

import "image/color"

// Color is a single RGB pixel value.
type Color struct {
	R, G, B byte
}

var (
	// Black is all channels off.
	Black = Color{}
	// White is all channels at full intensity.
	White = Color{R: 0xff, G: 0xff, B: 0xff}
)

// Gray expands one intensity value into all three channels.
func Gray(v byte) Color {
	return Color{R: v, G: v, B: v}
}

// Scale dims every channel by level, where 255 keeps the color unchanged.
func (c Color) Scale(level byte) Color {
	if level == 0xff {
		return c
	}
	return Color{
		R: byte(int(c.R) * int(level) / 0xff),
		G: byte(int(c.G) * int(level) / 0xff),
		B: byte(int(c.B) * int(level) / 0xff),
	}
}

// NRGBA converts to an opaque image color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}
