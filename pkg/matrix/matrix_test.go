package matrix

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineFor(t *testing.T) {
	require.Equal(t, LineRight, LineFor(0))
	require.Equal(t, LineRight, LineFor(15))
	require.Equal(t, LineLeft, LineFor(16))
	require.Equal(t, LineLeft, LineFor(31))
}

func TestLedIndex(t *testing.T) {
	for _, tc := range []struct {
		x, y   int
		line   Line
		expect int
	}{
		{0, 0, LineRight, 15},
		{15, 0, LineRight, 0},
		{0, 1, LineRight, 16},
		{15, 1, LineRight, 31},
		{16, 0, LineLeft, 15},
		{31, 0, LineLeft, 0},
		{0, 16, LineRight, 271},
		{0, 63, LineRight, 1008},
		{31, 63, LineLeft, 1023},
	} {
		idx, ok := LedIndex(tc.x, tc.y, tc.line)
		require.Truef(t, ok, "(%d,%d) on %v", tc.x, tc.y, tc.line)
		require.Equalf(t, tc.expect, idx, "(%d,%d) on %v", tc.x, tc.y, tc.line)
	}
}

func TestLedIndexRejects(t *testing.T) {
	for _, tc := range []struct {
		x, y int
		line Line
	}{
		{0, 0, LineLeft},
		{16, 0, LineRight},
		{-1, 0, LineRight},
		{32, 0, LineLeft},
		{0, -1, LineRight},
		{0, 64, LineRight},
	} {
		_, ok := LedIndex(tc.x, tc.y, tc.line)
		require.Falsef(t, ok, "(%d,%d) on %v must not map", tc.x, tc.y, tc.line)
	}
}

func TestLedIndexCoversEveryPixelOnce(t *testing.T) {
	seen := map[Line]map[int]bool{LineLeft: {}, LineRight: {}}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			line := LineFor(x)
			idx, ok := LedIndex(x, y, line)
			require.Truef(t, ok, "(%d,%d)", x, y)
			require.Truef(t, idx >= 0 && idx < LinePixels, "(%d,%d) index %d", x, y, idx)
			require.Falsef(t, seen[line][idx], "(%d,%d) double-maps to %v %d", x, y, line, idx)
			seen[line][idx] = true

			other := LineLeft
			if line == LineLeft {
				other = LineRight
			}
			_, ok = LedIndex(x, y, other)
			require.Falsef(t, ok, "(%d,%d) also maps on %v", x, y, other)
		}
	}
	require.Len(t, seen[LineLeft], LinePixels)
	require.Len(t, seen[LineRight], LinePixels)
}
