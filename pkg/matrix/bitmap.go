package matrix

// Bit reads pixel i from a row-major, MSB-first packed bitmap.
func Bit(bitmap []byte, i int) bool {
	if i < 0 || i/8 >= len(bitmap) {
		return false
	}
	return bitmap[i/8]&(1<<uint(7-i%8)) != 0
}

// SetBit turns pixel i on in a row-major, MSB-first packed bitmap.
func SetBit(bitmap []byte, i int) {
	if i < 0 || i/8 >= len(bitmap) {
		return
	}
	bitmap[i/8] |= 1 << uint(7-i%8)
}
