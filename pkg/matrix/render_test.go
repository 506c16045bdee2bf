package matrix

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mirrorworks/mirror.go/pkg/pixel"
)

func TestRenderBitmapAllZero(t *testing.T) {
	left, right := pixel.NewBuffer(LinePixels), pixel.NewBuffer(LinePixels)
	left.Fill(pixel.White)
	right.Fill(pixel.White)
	RenderBitmap(make([]byte, BitmapBytes), left, right)
	for i := 0; i < LinePixels; i++ {
		require.Equalf(t, pixel.Black, left.At(i), "left %d", i)
		require.Equalf(t, pixel.Black, right.At(i), "right %d", i)
	}
}

func TestRenderBitmapOrigin(t *testing.T) {
	left, right := pixel.NewBuffer(LinePixels), pixel.NewBuffer(LinePixels)
	bm := make([]byte, BitmapBytes)
	bm[0] = 0x80 // pixel (0,0)
	RenderBitmap(bm, left, right)

	lit := 0
	for i := 0; i < LinePixels; i++ {
		if left.At(i) != pixel.Black {
			lit++
		}
		if right.At(i) != pixel.Black {
			lit++
		}
	}
	require.Equal(t, 1, lit)
	require.Equal(t, pixel.White, right.At(15))
}

func TestRenderBitmapClearsStale(t *testing.T) {
	left, right := pixel.NewBuffer(LinePixels), pixel.NewBuffer(LinePixels)
	bm := make([]byte, BitmapBytes)
	bm[0] = 0x80
	RenderBitmap(bm, left, right)
	require.Equal(t, pixel.White, right.At(15))

	bm[0] = 0
	bm[1] = 0x80 // pixel (8,0)
	RenderBitmap(bm, left, right)
	require.Equal(t, pixel.Black, right.At(15))
	idx, ok := LedIndex(8, 0, LineRight)
	require.True(t, ok)
	require.Equal(t, pixel.White, right.At(idx))
}

func TestRenderGraySplit(t *testing.T) {
	left, right := pixel.NewBuffer(LinePixels), pixel.NewBuffer(LinePixels)
	vals := make([]byte, TotalPixels)
	vals[0] = 200
	vals[LinePixels] = 65
	vals[TotalPixels-1] = 9
	RenderGray(vals, left, right)
	require.Equal(t, pixel.Gray(200), left.At(0))
	require.Equal(t, pixel.Black, left.At(1))
	require.Equal(t, pixel.Gray(65), right.At(0))
	require.Equal(t, pixel.Gray(9), right.At(LinePixels-1))
}

func TestPackGrayRoundTrip(t *testing.T) {
	raster := make([]byte, TotalPixels)
	for i := range raster {
		raster[i] = byte((i*7 + 13) % 251)
	}
	left, right := pixel.NewBuffer(LinePixels), pixel.NewBuffer(LinePixels)
	RenderGray(PackGray(raster), left, right)
	require.Equal(t, raster, Raster(left, right))
}

func TestPackGrayPlacesPixel(t *testing.T) {
	raster := make([]byte, TotalPixels)
	raster[0] = 0xc8 // screen (0,0)
	values := PackGray(raster)
	// (0,0) sits on the right line, so its value lands in the second half.
	require.Equal(t, byte(0), values[15])
	require.Equal(t, byte(0xc8), values[LinePixels+15])
}

func TestPackBitmapThreshold(t *testing.T) {
	raster := make([]byte, TotalPixels)
	raster[0] = 0x7f
	raster[1] = 0x80
	bitmap := PackBitmap(raster, 0x80)
	require.False(t, Bit(bitmap, 0))
	require.True(t, Bit(bitmap, 1))

	left, right := pixel.NewBuffer(LinePixels), pixel.NewBuffer(LinePixels)
	RenderBitmap(bitmap, left, right)
	idx, ok := LedIndex(1, 0, LineRight)
	require.True(t, ok)
	require.Equal(t, pixel.White, right.At(idx))
}
