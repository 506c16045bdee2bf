// Package pattern generates full-screen test rasters, row-major with one
// grayscale byte per pixel.
package pattern

import (
	"github.com/mirrorworks/mirror.go/pkg/matrix"
)

// DefaultSquare is the checkerboard cell size.
const DefaultSquare = 4

// Fill returns a screen of one value.
func Fill(v byte) []byte {
	raster := make([]byte, matrix.TotalPixels)
	for i := range raster {
		raster[i] = v
	}
	return raster
}

// Pixel lights a single screen coordinate. Out-of-range coordinates return
// a dark screen.
func Pixel(x, y int) []byte {
	raster := make([]byte, matrix.TotalPixels)
	if x >= 0 && x < matrix.Width && y >= 0 && y < matrix.Height {
		raster[y*matrix.Width+x] = 0xff
	}
	return raster
}

// Checker returns an alternating checkerboard with square-sized cells, for
// checking pixel alignment.
func Checker(square int) []byte {
	if square <= 0 {
		square = DefaultSquare
	}
	raster := make([]byte, matrix.TotalPixels)
	for y := 0; y < matrix.Height; y++ {
		for x := 0; x < matrix.Width; x++ {
			if (y/square+x/square)%2 == 0 {
				raster[y*matrix.Width+x] = 0xff
			}
		}
	}
	return raster
}

// VerticalBars lights every other column, for checking column wiring.
func VerticalBars() []byte {
	raster := make([]byte, matrix.TotalPixels)
	for y := 0; y < matrix.Height; y++ {
		for x := 0; x < matrix.Width; x += 2 {
			raster[y*matrix.Width+x] = 0xff
		}
	}
	return raster
}

// HorizontalBars lights every other row, for checking row wiring.
func HorizontalBars() []byte {
	raster := make([]byte, matrix.TotalPixels)
	for y := 0; y < matrix.Height; y += 2 {
		for x := 0; x < matrix.Width; x++ {
			raster[y*matrix.Width+x] = 0xff
		}
	}
	return raster
}

// Gradient sweeps between two values across the screen width.
func Gradient(from, to byte) []byte {
	raster := make([]byte, matrix.TotalPixels)
	delta := int(to) - int(from)
	for x := 0; x < matrix.Width; x++ {
		v := byte(int(from) + delta*x/matrix.Width)
		for y := 0; y < matrix.Height; y++ {
			raster[y*matrix.Width+x] = v
		}
	}
	return raster
}

// Scale multiplies every value by level/255. Full level returns the raster
// unchanged.
func Scale(raster []byte, level byte) []byte {
	if level == 0xff {
		return raster
	}
	scaled := make([]byte, len(raster))
	for i, v := range raster {
		scaled[i] = byte(int(v) * int(level) / 0xff)
	}
	return scaled
}

// Borders outlines the top and left edge of every panel, for checking panel
// placement.
func Borders() []byte {
	raster := make([]byte, matrix.TotalPixels)
	for y := 0; y < matrix.Height; y++ {
		for x := 0; x < matrix.Width; x++ {
			if y%matrix.PanelSize == 0 || x%matrix.PanelSize == 0 {
				raster[y*matrix.Width+x] = 0xff
			}
		}
	}
	return raster
}
