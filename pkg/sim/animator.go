package sim

import (
	"context"
	"io"
	"time"

	"github.com/mirrorworks/mirror.go/pkg/link"
	"github.com/mirrorworks/mirror.go/pkg/pattern"
)

const defaultFrameInterval = time.Second

// demo patterns cycled by the animator, one per frame
var demoRasters = []func() []byte{
	func() []byte { return pattern.Checker(pattern.DefaultSquare) },
	pattern.VerticalBars,
	pattern.HorizontalBars,
	func() []byte { return pattern.Gradient(0, 255) },
	func() []byte { return pattern.Gradient(255, 0) },
	pattern.Borders,
}

// Animator periodically writes demo frames to a device, cycling through the
// panel test patterns.
type Animator struct {
	Out      io.Writer
	Dialect  link.Dialect
	Interval time.Duration

	step int
}

// Run implements Runnable.
func (a *Animator) Run(ctx context.Context) error {
	interval := a.Interval
	if interval <= 0 {
		interval = defaultFrameInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if err := a.Emit(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Emit writes the next demo frame.
func (a *Animator) Emit() error {
	raster := demoRasters[a.step%len(demoRasters)]()
	a.step++
	_, err := a.Out.Write(link.EncodeRaster(a.Dialect, raster))
	return err
}
