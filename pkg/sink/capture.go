package sink

import "github.com/mirrorworks/mirror.go/pkg/pixel"

// Capture keeps every emitted frame in memory. Tests use it in place of a
// hardware sink.
type Capture struct {
	Frames []CapturedFrame
	Clears int
	Closed bool
	// Err, when set, is returned by Emit and Clear.
	Err error
}

// CapturedFrame is the snapshot taken by one Emit call.
type CapturedFrame struct {
	Left  *pixel.Buffer
	Right *pixel.Buffer
}

// Emit records independent copies of both buffers.
func (c *Capture) Emit(left, right *pixel.Buffer) error {
	if c.Err != nil {
		return c.Err
	}
	c.Frames = append(c.Frames, CapturedFrame{Left: left.Clone(), Right: right.Clone()})
	return nil
}

// Clear counts blanking requests.
func (c *Capture) Clear() error {
	if c.Err != nil {
		return c.Err
	}
	c.Clears++
	return nil
}

// Close marks the sink closed.
func (c *Capture) Close() error {
	c.Closed = true
	return nil
}

// Last returns the most recently emitted frame, or nil before the first.
func (c *Capture) Last() *CapturedFrame {
	if len(c.Frames) == 0 {
		return nil
	}
	return &c.Frames[len(c.Frames)-1]
}
