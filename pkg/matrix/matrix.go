package matrix

// Logical matrix geometry: a 32x64 screen tiled from 16x16 panels, split
// vertically into two halves of four stacked panels each. Every half is
// driven by its own physical output line.
const (
	Width     = 32
	Height    = 64
	PanelSize = 16

	// PanelPixels is the pixel count of one panel.
	PanelPixels = PanelSize * PanelSize
	// LinePixels is the pixel count carried by one physical line.
	LinePixels = PanelSize * Height
	// TotalPixels is the pixel count of the whole screen.
	TotalPixels = Width * Height
	// BitmapBytes is the packed size of a 1-bit full-screen frame.
	BitmapBytes = TotalPixels / 8
)

// Line identifies one physical LED output line.
type Line int

const (
	// LineLeft is the output wired to the left connector.
	LineLeft Line = iota
	// LineRight is the output wired to the right connector.
	LineRight
)

func (l Line) String() string {
	if l == LineLeft {
		return "left"
	}
	return "right"
}

// LineFor returns the physical line carrying logical column x. The mirror is
// cross-wired: the left half of the screen hangs off the right connector and
// the right half off the left one.
func LineFor(x int) Line {
	if x < PanelSize {
		return LineRight
	}
	return LineLeft
}

// LedIndex maps a logical screen coordinate to the pixel index on one
// physical line. Panels mirror horizontally and chain their rows in a
// serpentine, with 256 pixels per panel stacked top to bottom. The second
// result is false when the coordinate is out of range or carried by the
// other line.
func LedIndex(x, y int, line Line) (int, bool) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return 0, false
	}
	if LineFor(x) != line {
		return 0, false
	}
	localX := (PanelSize - 1) - x%PanelSize // horizontal mirror
	localY := y % PanelSize
	idx := (y / PanelSize) * PanelPixels
	if localY&1 == 1 {
		idx += localY*PanelSize + (PanelSize - 1 - localX)
	} else {
		idx += localY*PanelSize + localX
	}
	return idx, true
}
