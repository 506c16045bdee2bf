package link

import (
	"github.com/mirrorworks/mirror.go/pkg/matrix"
)

// Host-side frame builders, used by the console, the virtual device setup
// and the tests.

// EncodePing builds a panel dialect PING query.
func EncodePing() []byte {
	return []byte{Header0, Header1, TypePing}
}

// EncodeInfo builds a panel dialect INFO query.
func EncodeInfo() []byte {
	return []byte{Header0, Header1, TypeInfo}
}

// EncodeBitmap frames a packed 1-bit screen for the panel dialect. The
// bitmap is zero-padded or truncated to the fixed payload length.
func EncodeBitmap(bitmap []byte) []byte {
	return encode(TypeBitmap, bitmap, matrix.BitmapBytes)
}

// EncodeGray frames a full 8-bit grayscale screen for the gray dialect.
// Values are zero-padded or truncated to the fixed payload length.
func EncodeGray(values []byte) []byte {
	return encode(TypeGray, values, matrix.TotalPixels)
}

// rasterThreshold decides which raster values survive 1-bit reduction.
const rasterThreshold = 0x80

// EncodeRaster frames a row-major grayscale screen as the dialect's pixel
// frame: the full 8-bit frame when the dialect carries one, the packed
// 1-bit frame otherwise.
func EncodeRaster(d Dialect, raster []byte) []byte {
	if _, ok := d.PayloadLen(TypeGray); ok {
		return EncodeGray(matrix.PackGray(raster))
	}
	return EncodeBitmap(matrix.PackBitmap(raster, rasterThreshold))
}

func encode(typ byte, payload []byte, size int) []byte {
	b := make([]byte, frameOverhead+size)
	b[0], b[1], b[2] = Header0, Header1, typ
	copy(b[frameOverhead:], payload)
	return b
}
