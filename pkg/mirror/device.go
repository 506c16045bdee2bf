package mirror

import (
	"io"
	"time"

	"github.com/golang/glog"

	fx "github.com/mirrorworks/mirror.go/pkg/framework"
	"github.com/mirrorworks/mirror.go/pkg/link"
	"github.com/mirrorworks/mirror.go/pkg/matrix"
	"github.com/mirrorworks/mirror.go/pkg/pixel"
	"github.com/mirrorworks/mirror.go/pkg/sink"
)

// Device is the mirror panel driver. It consumes the byte stream from the
// host, parses it with the configured dialect, keeps both strip buffers
// and pushes rendered frames to the sink. All state is owned by the loop
// goroutine; the transport session only posts messages.
type Device struct {
	// StaleAfter blanks the output when no frame landed for this long.
	// Zero disables the monitor.
	StaleAfter time.Duration
	// Banner lines are written to the host whenever the link comes up.
	Banner []string

	open   OpenFunc
	out    sink.Sink
	parser *link.Parser
	left   *pixel.Buffer
	right  *pixel.Buffer

	replyTo   io.Writer
	lastFrame time.Time
	frames    uint64
}

// NewDevice creates a device speaking dialect over transports obtained
// from open, emitting to out.
func NewDevice(dialect link.Dialect, open OpenFunc, out sink.Sink) *Device {
	return &Device{
		open:   open,
		out:    out,
		parser: link.NewParser(dialect),
		left:   pixel.NewBuffer(matrix.LinePixels),
		right:  pixel.NewBuffer(matrix.LinePixels),
	}
}

// AddToLoop implements LoopAdder.
func (d *Device) AddToLoop(loop *fx.Loop) {
	loop.AddController(fx.PhaseControl, d)
	if d.StaleAfter > 0 {
		loop.AddController(fx.PhaseIdle, fx.ControlFunc(d.dropStale))
	}
}

// Control implements Controller. It drains every chunk received since the
// previous iteration through the parser and dispatches completed frames.
// When the batch exceeds the dialect's drain threshold the whole batch is
// discarded and the parser reset, so the device converges on fresh data
// instead of replaying a stale backlog.
func (d *Device) Control(cc fx.ControlContext) error {
	var chunks [][]byte
	var backlog int
	for _, msg := range cc.TakeMessages() {
		switch m := msg.(type) {
		case *linkMsg:
			d.replyTo = m.writer
			if m.writer != nil {
				d.reply(d.Banner...)
			}
		case *rxMsg:
			chunks = append(chunks, m.data)
			backlog += len(m.data)
		}
	}
	if max := d.parser.Dialect().DrainThreshold(); max > 0 && backlog > max {
		glog.Warningf("receiver %d bytes behind, dropping backlog", backlog)
		d.parser.Reset()
		return nil
	}
	for _, chunk := range chunks {
		for _, b := range chunk {
			if frame := d.parser.Parse(b); frame != nil {
				d.dispatch(cc, frame)
			}
		}
	}
	return nil
}

func (d *Device) dispatch(cc fx.ControlContext, frame *link.Frame) {
	switch frame.Type {
	case link.TypePing:
		d.reply(link.ReplyPong)
	case link.TypeInfo:
		d.reply(link.InfoLines...)
	case link.TypeBitmap:
		matrix.RenderBitmap(frame.Payload, d.left, d.right)
		d.emit(cc)
	case link.TypeGray:
		matrix.RenderGray(frame.Payload, d.left, d.right)
		d.emit(cc)
	}
}

func (d *Device) emit(cc fx.ControlContext) {
	d.lastFrame = cc.Time()
	d.frames++
	if err := d.out.Emit(d.left, d.right); err != nil {
		glog.Errorf("emit frame %d: %v", d.frames, err)
		return
	}
	glog.V(2).Infof("frame %d shown", d.frames)
}

func (d *Device) reply(lines ...string) {
	if d.replyTo == nil {
		return
	}
	for _, line := range lines {
		if _, err := io.WriteString(d.replyTo, line+"\n"); err != nil {
			glog.Warningf("reply %q: %v", line, err)
			return
		}
	}
}

// dropStale blanks the display once the last frame is older than
// StaleAfter. The recorded time is erased so an idle link does not keep
// clearing.
func (d *Device) dropStale(cc fx.ControlContext) error {
	if d.lastFrame.IsZero() || cc.Time().Sub(d.lastFrame) <= d.StaleAfter {
		return nil
	}
	glog.Warningf("no frame for %s, blanking", d.StaleAfter)
	d.lastFrame = time.Time{}
	d.left.Clear()
	d.right.Clear()
	return d.out.Clear()
}

// Close releases the sink.
func (d *Device) Close() error {
	return d.out.Close()
}
