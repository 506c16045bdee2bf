package link

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mirrorworks/mirror.go/pkg/matrix"
)

func TestEncodeQueries(t *testing.T) {
	require.Equal(t, []byte{0xaa, 0xbb, 0x05}, EncodePing())
	require.Equal(t, []byte{0xaa, 0xbb, 0x06}, EncodeInfo())
}

func TestEncodeBitmap(t *testing.T) {
	b := EncodeBitmap([]byte{0x80, 0x01})
	require.Len(t, b, 259)
	require.Equal(t, []byte{0xaa, 0xbb, 0x03, 0x80, 0x01}, b[:5])
	require.Equal(t, byte(0), b[258])

	require.Len(t, EncodeBitmap(padded(300, 0xff)), 259)
}

func TestEncodeGray(t *testing.T) {
	b := EncodeGray([]byte{9})
	require.Len(t, b, 2051)
	require.Equal(t, []byte{0xaa, 0xbb, 0x01, 9, 0}, b[:5])
}

func TestEncodeRaster(t *testing.T) {
	raster := make([]byte, matrix.TotalPixels)
	raster[0] = 0xff // screen (0,0)
	raster[1] = 0x40 // below the 1-bit threshold

	b := EncodeRaster(Gray, raster)
	require.Len(t, b, 2051)
	require.Equal(t, TypeGray, b[2])
	// (0,0) rides the right line, second half of the gray payload
	idx, ok := matrix.LedIndex(0, 0, matrix.LineRight)
	require.True(t, ok)
	require.Equal(t, byte(0xff), b[frameOverhead+matrix.LinePixels+idx])

	b = EncodeRaster(Panel, raster)
	require.Len(t, b, 259)
	require.Equal(t, TypeBitmap, b[2])
	require.Equal(t, byte(0x80), b[frameOverhead]) // only bit 0 survives
}
