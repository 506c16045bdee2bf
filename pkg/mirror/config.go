package mirror

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang/glog"
	"gopkg.in/yaml.v3"

	"github.com/mirrorworks/mirror.go/pkg/link"
	"github.com/mirrorworks/mirror.go/pkg/sink"
)

// Config defines the configurations for a mirror device.
type Config struct {
	File       string   `yaml:"-"`
	Dialect    string   `yaml:"dialect"`
	Driver     string   `yaml:"driver"`
	SPILeft    string   `yaml:"spi_left"`
	SPIRight   string   `yaml:"spi_right"`
	Brightness int      `yaml:"brightness"`
	StaleMs    int      `yaml:"stale_ms"`
	ScreenSpan int      `yaml:"screen_span"`
	Banner     []string `yaml:"banner"`
}

var defaultConfig = Config{
	Dialect:    "panel",
	Driver:     "screen",
	SPILeft:    "SPI0.0",
	SPIRight:   "SPI1.0",
	Brightness: 0xff,
	ScreenSpan: 64,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.File, "config", defaultConfig.File, "Optional YAML file overriding the flags.")
	flag.StringVar(&defaultConfig.Dialect, "dialect", defaultConfig.Dialect, "Protocol dialect: panel | gray.")
	flag.StringVar(&defaultConfig.Driver, "driver", defaultConfig.Driver, "Output driver: spi | screen | capture.")
	flag.StringVar(&defaultConfig.SPILeft, "spi-left", defaultConfig.SPILeft, "SPI port of the left strip.")
	flag.StringVar(&defaultConfig.SPIRight, "spi-right", defaultConfig.SPIRight, "SPI port of the right strip.")
	flag.IntVar(&defaultConfig.Brightness, "brightness", defaultConfig.Brightness, "Output brightness, 0-255.")
	flag.IntVar(&defaultConfig.StaleMs, "stale-ms", defaultConfig.StaleMs, "Blank the display after this many idle milliseconds, 0 to disable.")
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

// LoadFile overlays the YAML file named by File, when one is set.
func (c *Config) LoadFile() error {
	if c.File == "" {
		return nil
	}
	b, err := os.ReadFile(c.File)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, c)
}

// NewSink builds the output selected by Driver.
func (c *Config) NewSink() (sink.Sink, error) {
	switch c.Driver {
	case "spi":
		return sink.NewNRZ(sink.NRZOpts{
			LeftPort:  c.SPILeft,
			RightPort: c.SPIRight,
			Level:     clampLevel(c.Brightness),
		})
	case "screen":
		return sink.NewScreen(c.ScreenSpan), nil
	case "capture":
		return &sink.Capture{}, nil
	}
	return nil, fmt.Errorf("unknown driver %q", c.Driver)
}

// NewDevice builds a device from the config, reading from transports
// obtained through open.
func (c *Config) NewDevice(open OpenFunc) (*Device, error) {
	if err := c.LoadFile(); err != nil {
		return nil, err
	}
	dialect, err := link.DialectByName(c.Dialect)
	if err != nil {
		return nil, err
	}
	out, err := c.NewSink()
	if err != nil {
		return nil, err
	}
	dev := NewDevice(dialect, open, out)
	dev.StaleAfter = time.Duration(c.StaleMs) * time.Millisecond
	dev.Banner = c.Banner
	return dev, nil
}

// MustNewDevice builds a device from the config or exits.
func (c *Config) MustNewDevice(open OpenFunc) *Device {
	dev, err := c.NewDevice(open)
	if err != nil {
		glog.Exitln(err)
	}
	return dev
}

func clampLevel(v int) byte {
	if v < 0 {
		return 0
	}
	if v > 0xff {
		return 0xff
	}
	return byte(v)
}
