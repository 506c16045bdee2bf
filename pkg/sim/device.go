// Package sim provides a virtual mirror device for tests, demos and
// visualization.
package sim

import (
	"bytes"
	"io"
	"sync"

	"github.com/mirrorworks/mirror.go/pkg/link"
	"github.com/mirrorworks/mirror.go/pkg/matrix"
	"github.com/mirrorworks/mirror.go/pkg/pixel"
)

// Device is an in-memory stand-in for the firmware. The host writes frame
// bytes and reads reply lines back over plain Reader/Writer calls; accepted
// frames render into internal line buffers.
type Device struct {
	lock      sync.Mutex
	parser    *link.Parser
	left      *pixel.Buffer
	right     *pixel.Buffer
	seq       uint64
	out       bytes.Buffer
	avail     chan struct{}
	closed    chan struct{}
	closeOnce sync.Once
}

// NewDevice creates a device speaking the given dialect. Like the firmware
// boot banner, the greeting lines (default "READY") are readable before any
// bytes are written.
func NewDevice(dialect link.Dialect, greeting ...string) *Device {
	d := &Device{
		parser: link.NewParser(dialect),
		left:   pixel.NewBuffer(matrix.LinePixels),
		right:  pixel.NewBuffer(matrix.LinePixels),
		avail:  make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
	if len(greeting) == 0 {
		greeting = []string{"READY"}
	}
	d.print(greeting...)
	return d
}

// Dialect returns the framing dialect the device speaks.
func (d *Device) Dialect() link.Dialect {
	return d.parser.Dialect()
}

// Write feeds host bytes through the framing parser. Accepted frames take
// effect before Write returns.
func (d *Device) Write(p []byte) (int, error) {
	select {
	case <-d.closed:
		return 0, io.ErrClosedPipe
	default:
	}
	d.lock.Lock()
	defer d.lock.Unlock()
	for _, b := range p {
		if frame := d.parser.Parse(b); frame != nil {
			d.apply(frame)
		}
	}
	return len(p), nil
}

// Read returns queued reply bytes, blocking until some are available. Once
// the device is closed and the queue drained it returns io.EOF.
func (d *Device) Read(p []byte) (int, error) {
	for {
		d.lock.Lock()
		if d.out.Len() > 0 {
			n, _ := d.out.Read(p)
			d.lock.Unlock()
			return n, nil
		}
		d.lock.Unlock()
		select {
		case <-d.avail:
		case <-d.closed:
			return 0, io.EOF
		}
	}
}

// Close releases blocked readers.
func (d *Device) Close() error {
	d.closeOnce.Do(func() { close(d.closed) })
	return nil
}

// Seq returns the number of frames applied so far.
func (d *Device) Seq() uint64 {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.seq
}

func (d *Device) apply(frame *link.Frame) {
	switch frame.Type {
	case link.TypePing:
		d.printLocked(link.ReplyPong)
	case link.TypeInfo:
		d.printLocked(link.InfoLines...)
	case link.TypeBitmap:
		matrix.RenderBitmap(frame.Payload, d.left, d.right)
		d.seq++
	case link.TypeGray:
		matrix.RenderGray(frame.Payload, d.left, d.right)
		d.seq++
	}
}

func (d *Device) print(lines ...string) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.printLocked(lines...)
}

func (d *Device) printLocked(lines ...string) {
	for _, line := range lines {
		d.out.WriteString(line + "\n")
	}
	select {
	case d.avail <- struct{}{}:
	default:
	}
}
