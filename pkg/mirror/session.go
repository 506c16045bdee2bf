package mirror

import (
	"context"
	"io"
	"time"

	"github.com/golang/glog"

	fx "github.com/mirrorworks/mirror.go/pkg/framework"
)

// OpenFunc opens the transport carrying the frame stream.
type OpenFunc func() (io.ReadWriteCloser, error)

// reopenDelay paces transport reopen attempts.
const reopenDelay = time.Second

// rxMsg carries one received chunk into the loop.
type rxMsg struct {
	data []byte
}

// linkMsg announces the transport coming up (writer set) or down (nil).
type linkMsg struct {
	writer io.Writer
}

// Run implements Runnable. It keeps one transport session open at a time,
// ferrying received chunks into the loop, and reopens the transport after
// a failure. Cancelling the context closes the session.
func (d *Device) Run(ctx context.Context) error {
	loopCtl := fx.LoopCtlFrom(ctx)
	for {
		port, err := d.open()
		if err != nil {
			glog.Warningf("open transport: %v", err)
		} else {
			loopCtl.PostMessage(&linkMsg{writer: port})
			loopCtl.TriggerNext()
			err = fx.RunWithContextCloser(ctx, port, func() error {
				return d.pump(port, loopCtl)
			})
			loopCtl.PostMessage(&linkMsg{})
			loopCtl.TriggerNext()
			if ctx.Err() != nil {
				return err
			}
			glog.Warningf("transport lost: %v", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reopenDelay):
		}
	}
}

// pump blocks reading the session until the transport fails or is closed.
func (d *Device) pump(r io.Reader, loopCtl fx.LoopControl) error {
	buf := make([]byte, 128)
	for {
		n, err := r.Read(buf)
		if err != nil {
			return err
		}
		if n == 0 {
			// read timeout with nothing pending
			continue
		}
		data := make([]byte, n)
		copy(data, buf[:n])
		loopCtl.PostMessage(&rxMsg{data: data})
		loopCtl.TriggerNext()
	}
}
