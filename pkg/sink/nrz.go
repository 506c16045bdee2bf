package sink

import (
	"image"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
	"periph.io/x/host/v3"

	"github.com/mirrorworks/mirror.go/pkg/framework"
	"github.com/mirrorworks/mirror.go/pkg/matrix"
	"github.com/mirrorworks/mirror.go/pkg/pixel"
)

// nrzFreq is the symbol rate for WS2812-class strips driven over SPI.
const nrzFreq = 2500 * physic.KiloHertz

// NRZOpts selects the SPI ports driving the two LED lines.
type NRZOpts struct {
	LeftPort  string
	RightPort string
	// Level scales every emitted channel, 0xff meaning full brightness.
	// The zero value is treated as full brightness.
	Level byte
}

// NRZ drives the two LED lines as WS2812 strips over SPI.
type NRZ struct {
	level     byte
	left      display.Drawer
	right     display.Drawer
	leftPort  spi.PortCloser
	rightPort spi.PortCloser
}

// NewNRZ initializes the host, opens both SPI ports and blanks the strips.
func NewNRZ(opts NRZOpts) (*NRZ, error) {
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	if opts.Level == 0 {
		opts.Level = 0xff
	}
	left, leftPort, err := openStrip(opts.LeftPort)
	if err != nil {
		return nil, err
	}
	right, rightPort, err := openStrip(opts.RightPort)
	if err != nil {
		leftPort.Close()
		return nil, err
	}
	glog.Infof("nrz sink ready: left=%s right=%s", left, right)
	return &NRZ{
		level:     opts.Level,
		left:      left,
		right:     right,
		leftPort:  leftPort,
		rightPort: rightPort,
	}, nil
}

func openStrip(name string) (display.Drawer, spi.PortCloser, error) {
	port, err := spireg.Open(name)
	if err != nil {
		return nil, nil, err
	}
	o := nrzled.Opts{
		NumPixels: matrix.LinePixels,
		Channels:  3,
		Freq:      nrzFreq,
	}
	d, err := nrzled.NewSPI(port, &o)
	if err != nil {
		port.Close()
		return nil, nil, err
	}
	if err = d.Halt(); err != nil {
		port.Close()
		return nil, nil, err
	}
	return d, port, nil
}

// Emit draws both buffers on their strips.
func (s *NRZ) Emit(left, right *pixel.Buffer) error {
	if err := s.draw(s.left, left); err != nil {
		return err
	}
	return s.draw(s.right, right)
}

// Clear turns every LED off.
func (s *NRZ) Clear() error {
	if err := s.left.Halt(); err != nil {
		return err
	}
	return s.right.Halt()
}

// Close blanks both strips and releases the SPI ports.
func (s *NRZ) Close() error {
	errs := &framework.AggregatedError{}
	return errs.
		Add(s.left.Halt(), s.right.Halt()).
		Add(s.leftPort.Close(), s.rightPort.Close()).
		Aggregate()
}

func (s *NRZ) draw(d display.Drawer, b *pixel.Buffer) error {
	return d.Draw(d.Bounds(), scaledImage(b, s.level), image.Point{})
}
