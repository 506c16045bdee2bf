package sim

import (
	"github.com/mirrorworks/mirror.go/pkg/matrix"
)

// Snapshot is a copy of the rendered screen, row-major with one grayscale
// byte per pixel. Pixels marshals as base64 in JSON.
type Snapshot struct {
	Seq    uint64 `json:"seq"`
	W      int    `json:"w"`
	H      int    `json:"h"`
	Pixels []byte `json:"pixels"`
}

// Lit counts pixels that are not fully dark.
func (s *Snapshot) Lit() int {
	n := 0
	for _, v := range s.Pixels {
		if v != 0 {
			n++
		}
	}
	return n
}

// Snapshot captures the current screen contents.
func (d *Device) Snapshot() *Snapshot {
	d.lock.Lock()
	defer d.lock.Unlock()
	return &Snapshot{
		Seq:    d.seq,
		W:      matrix.Width,
		H:      matrix.Height,
		Pixels: matrix.Raster(d.left, d.right),
	}
}
