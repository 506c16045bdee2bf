package matrix

import (
	"github.com/mirrorworks/mirror.go/pkg/pixel"
)

// RenderBitmap paints a packed 1-bit full-screen frame onto the two line
// buffers. Both buffers are cleared first; set bits render full white.
// Coordinates that map outside a line are dropped.
func RenderBitmap(bitmap []byte, left, right *pixel.Buffer) {
	left.Clear()
	right.Clear()
	for i := 0; i < TotalPixels; i++ {
		if !Bit(bitmap, i) {
			continue
		}
		x, y := i%Width, i/Width
		line := LineFor(x)
		idx, ok := LedIndex(x, y, line)
		if !ok {
			continue
		}
		if line == LineLeft {
			left.Set(idx, pixel.White)
		} else {
			right.Set(idx, pixel.White)
		}
	}
}

// RenderGray paints an 8-bit grayscale full-screen frame: the first half of
// the payload lands on the left line in payload order, the second half on
// the right line.
func RenderGray(values []byte, left, right *pixel.Buffer) {
	for i, v := range values {
		if i >= TotalPixels {
			break
		}
		c := pixel.Gray(v)
		if i < LinePixels {
			left.Set(i, c)
		} else {
			right.Set(i-LinePixels, c)
		}
	}
}

// PackGray spreads a row-major raster of grayscale values into the wire
// layout consumed by RenderGray. Short rasters leave the tail dark.
func PackGray(raster []byte) []byte {
	values := make([]byte, TotalPixels)
	for i, v := range raster {
		if i >= TotalPixels {
			break
		}
		x, y := i%Width, i/Width
		line := LineFor(x)
		idx, ok := LedIndex(x, y, line)
		if !ok {
			continue
		}
		if line == LineLeft {
			values[idx] = v
		} else {
			values[LinePixels+idx] = v
		}
	}
	return values
}

// PackBitmap packs a row-major raster into a 1-bit frame, lighting every
// pixel at or above the threshold.
func PackBitmap(raster []byte, threshold byte) []byte {
	bitmap := make([]byte, BitmapBytes)
	for i, v := range raster {
		if i >= TotalPixels {
			break
		}
		if v >= threshold {
			SetBit(bitmap, i)
		}
	}
	return bitmap
}

// Raster reads the two line buffers back into a row-major grayscale screen,
// the inverse of the render functions for fully gray content.
func Raster(left, right *pixel.Buffer) []byte {
	raster := make([]byte, TotalPixels)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			line := LineFor(x)
			idx, ok := LedIndex(x, y, line)
			if !ok {
				continue
			}
			var c pixel.Color
			if line == LineLeft {
				c = left.At(idx)
			} else {
				c = right.At(idx)
			}
			raster[y*Width+x] = c.R
		}
	}
	return raster
}
