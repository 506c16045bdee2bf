package sim

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/mirrorworks/mirror.go/pkg/link"
)

// Config represents configuration for the virtual device.
type Config struct {
	Type    string
	ID      string
	Dialect string

	// MQTTBrokerURL specifies the MQTT broker to publish frames to,
	// e.g. mqtt://host:port/topic-prefix. Empty disables publishing.
	MQTTBrokerURL string

	// ListenAddr is the HTTP address serving the WebSocket frame stream.
	// Empty disables the endpoint.
	ListenAddr string

	// FrameMs is the demo animation frame interval in milliseconds.
	// Zero disables the animator.
	FrameMs int
}

var defaultConfig = Config{
	Type:          "mirror",
	Dialect:       "gray",
	MQTTBrokerURL: "mqtt://localhost:1883/mirror/",
	ListenAddr:    ":8780",
	FrameMs:       1000,
}

func init() {
	if val := os.Getenv("MIRROR_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	if defaultConfig.ID == "" {
		defaultConfig.ID = MachineID()
	}
	flag.StringVar(&defaultConfig.Type, "type", defaultConfig.Type, "Device type")
	flag.StringVar(&defaultConfig.ID, "id", defaultConfig.ID, "Device ID")
	flag.StringVar(&defaultConfig.Dialect, "dialect", defaultConfig.Dialect, "Framing dialect (panel|gray)")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL, empty to disable")
	flag.StringVar(&defaultConfig.ListenAddr, "listen", defaultConfig.ListenAddr, "WebSocket listen address, empty to disable")
	flag.IntVar(&defaultConfig.FrameMs, "frame-ms", defaultConfig.FrameMs, "Demo frame interval (ms), 0 to disable")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a default config.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewDevice creates the virtual device from config.
func (c *Config) NewDevice() (*Device, error) {
	dialect, err := link.DialectByName(c.Dialect)
	if err != nil {
		return nil, err
	}
	return NewDevice(dialect), nil
}

// NewPublisher creates the MQTT publisher for a device, or nil when
// publishing is disabled.
func (c *Config) NewPublisher(dev *Device) (*Publisher, error) {
	if c.MQTTBrokerURL == "" {
		return nil, nil
	}
	if c.Type == "" || c.ID == "" {
		return nil, fmt.Errorf("device type and id must be specified")
	}
	return NewPublisher(c.MQTTBrokerURL, dev, c.Type, c.ID)
}

// NewAnimator creates the demo frame source for a device, or nil when the
// animation is disabled.
func (c *Config) NewAnimator(dev *Device) *Animator {
	if c.FrameMs <= 0 {
		return nil
	}
	return &Animator{
		Out:      dev,
		Dialect:  dev.Dialect(),
		Interval: time.Duration(c.FrameMs) * time.Millisecond,
	}
}

// MustNewDevice creates the virtual device and fails on error.
func (c *Config) MustNewDevice() *Device {
	dev, err := c.NewDevice()
	if err != nil {
		glog.Exitln(err)
	}
	return dev
}
