package pattern

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mirrorworks/mirror.go/pkg/matrix"
)

func at(raster []byte, x, y int) byte {
	return raster[y*matrix.Width+x]
}

func TestFill(t *testing.T) {
	raster := Fill(7)
	require.Len(t, raster, matrix.TotalPixels)
	for i, v := range raster {
		require.Equalf(t, byte(7), v, "pixel %d", i)
	}
}

func TestPixel(t *testing.T) {
	raster := Pixel(3, 2)
	for i, v := range raster {
		if i == 2*matrix.Width+3 {
			require.Equalf(t, byte(0xff), v, "pixel %d", i)
		} else {
			require.Equalf(t, byte(0), v, "pixel %d", i)
		}
	}
	for _, v := range Pixel(-1, 99) {
		require.Equal(t, byte(0), v)
	}
}

func TestChecker(t *testing.T) {
	raster := Checker(0) // default cell size
	require.Equal(t, byte(0xff), at(raster, 0, 0))
	require.Equal(t, byte(0), at(raster, 4, 0))
	require.Equal(t, byte(0), at(raster, 0, 4))
	require.Equal(t, byte(0xff), at(raster, 4, 4))

	raster = Checker(8)
	require.Equal(t, byte(0xff), at(raster, 7, 7))
	require.Equal(t, byte(0), at(raster, 8, 7))
}

func TestBars(t *testing.T) {
	v := VerticalBars()
	h := HorizontalBars()
	for i := 0; i < matrix.PanelSize; i++ {
		require.Equalf(t, byte(0xff), at(v, 2*i, 5), "column %d", 2*i)
		require.Equalf(t, byte(0), at(v, 2*i+1, 5), "column %d", 2*i+1)
		require.Equalf(t, byte(0xff), at(h, 5, 2*i), "row %d", 2*i)
		require.Equalf(t, byte(0), at(h, 5, 2*i+1), "row %d", 2*i+1)
	}
}

func TestGradient(t *testing.T) {
	raster := Gradient(0, 255)
	require.Equal(t, byte(0), at(raster, 0, 0))
	require.Equal(t, byte(127), at(raster, 16, 0))
	require.Equal(t, byte(247), at(raster, 31, 63))

	// columns are uniform
	for y := 0; y < matrix.Height; y++ {
		require.Equal(t, at(raster, 10, 0), at(raster, 10, y))
	}

	down := Gradient(200, 100)
	require.Equal(t, byte(200), at(down, 0, 0))
	require.Equal(t, byte(104), at(down, 31, 0))
}

func TestScale(t *testing.T) {
	raster := Fill(200)
	half := Scale(raster, 128)
	require.Equal(t, byte(100), half[0])
	require.Equal(t, byte(200), raster[0])

	require.Equal(t, byte(0), Scale(raster, 0)[0])
	full := Scale(raster, 0xff)
	require.Equal(t, byte(200), full[0])
}

func TestBorders(t *testing.T) {
	raster := Borders()
	require.Equal(t, byte(0xff), at(raster, 0, 0))
	require.Equal(t, byte(0xff), at(raster, 16, 5))
	require.Equal(t, byte(0xff), at(raster, 5, 48))
	require.Equal(t, byte(0), at(raster, 1, 1))
	require.Equal(t, byte(0), at(raster, 15, 15))
}