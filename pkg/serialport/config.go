package serialport

import (
	"flag"
	"time"

	"github.com/golang/glog"
	"go.bug.st/serial"
)

// Config defines the configurations for the serial link.
type Config struct {
	Device string
	Baud   int
}

var defaultConfig = Config{
	Device: "/dev/ttyUSB0",
	Baud:   460800,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Device, "device", defaultConfig.Device, "Serial device path.")
	flag.IntVar(&defaultConfig.Baud, "baud", defaultConfig.Baud, "Serial baud rate.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a config with defaults.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// readTimeout bounds every Read so read loops can observe cancellation
// between chunks.
const readTimeout = time.Second

// Open opens the configured device as a raw 8N1 byte stream and drops
// whatever accumulated in the input buffer while nobody was reading.
func (c *Config) Open() (serial.Port, error) {
	mode := &serial.Mode{
		BaudRate: c.Baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := serial.Open(c.Device, mode)
	if err != nil {
		return nil, err
	}
	if err = port.SetReadTimeout(readTimeout); err != nil {
		port.Close()
		return nil, err
	}
	if err = port.ResetInputBuffer(); err != nil {
		port.Close()
		return nil, err
	}
	glog.Infof("opened %s at %d baud", c.Device, c.Baud)
	return port, nil
}
