package led

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/abiosoft/ishell"
	"github.com/google/shlex"

	"github.com/mirrorworks/mirror.go/pkg/cli/sh"
	"github.com/mirrorworks/mirror.go/pkg/link"
	"github.com/mirrorworks/mirror.go/pkg/matrix"
	"github.com/mirrorworks/mirror.go/pkg/pattern"
)

func parseByte(c *ishell.Context, name, arg string) (byte, bool) {
	val, err := strconv.ParseUint(arg, 0, 8)
	if err != nil {
		c.Err(fmt.Errorf("Invalid %s: %v", name, err))
		return 0, false
	}
	return byte(val), true
}

func sendRaster(c *ishell.Context, raster []byte) {
	s := sh.ShellFrom(c)
	sh.DoSend(c, link.EncodeRaster(s.Session.Dialect, pattern.Scale(raster, s.Session.Level)))
}

var (
	// PingCmd checks the device link.
	PingCmd = ishell.Cmd{
		Name:    "ping",
		Aliases: []string{"p"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoQuery(c, link.EncodePing(), 1)
		}),
	}

	// InfoCmd queries the device identity block.
	InfoCmd = ishell.Cmd{
		Name:    "info",
		Aliases: []string{"i"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoQuery(c, link.EncodeInfo(), len(link.InfoLines))
		}),
	}

	// PixelCmd lights a single pixel.
	PixelCmd = ishell.Cmd{
		Name:    "pixel",
		Aliases: []string{"px"},
		Help:    "X Y",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("X and Y required"))
				return
			}
			x, err := strconv.Atoi(c.Args[0])
			if err != nil || x < 0 || x >= matrix.Width {
				c.Err(fmt.Errorf("Invalid X: want 0..%d", matrix.Width-1))
				return
			}
			y, err := strconv.Atoi(c.Args[1])
			if err != nil || y < 0 || y >= matrix.Height {
				c.Err(fmt.Errorf("Invalid Y: want 0..%d", matrix.Height-1))
				return
			}
			sendRaster(c, pattern.Pixel(x, y))
		}),
	}

	// FillCmd fills the screen with one value.
	FillCmd = ishell.Cmd{
		Name:    "fill",
		Aliases: []string{"f"},
		Help:    "[VALUE]",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			v := byte(0xff)
			if len(c.Args) > 0 {
				var ok bool
				if v, ok = parseByte(c, "VALUE", c.Args[0]); !ok {
					return
				}
			}
			sendRaster(c, pattern.Fill(v))
		}),
	}

	// ClearCmd blanks the screen.
	ClearCmd = ishell.Cmd{
		Name: "clear",
		Help: "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sendRaster(c, pattern.Fill(0))
		}),
	}

	// CheckerCmd shows the checkerboard alignment pattern.
	CheckerCmd = ishell.Cmd{
		Name:    "checker",
		Aliases: []string{"chk"},
		Help:    "[SQUARE]",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			square := pattern.DefaultSquare
			if len(c.Args) > 0 {
				v, err := strconv.Atoi(c.Args[0])
				if err != nil || v <= 0 {
					c.Err(fmt.Errorf("Invalid SQUARE: %s", c.Args[0]))
					return
				}
				square = v
			}
			sendRaster(c, pattern.Checker(square))
		}),
	}

	// StripesCmd shows the wiring test bars.
	StripesCmd = ishell.Cmd{
		Name:    "stripes",
		Aliases: []string{"bars"},
		Help:    "[v|h]",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			raster := pattern.VerticalBars()
			if len(c.Args) > 0 {
				switch c.Args[0] {
				case "v":
				case "h":
					raster = pattern.HorizontalBars()
				default:
					c.Err(fmt.Errorf("Invalid direction: want v or h"))
					return
				}
			}
			sendRaster(c, raster)
		}),
	}

	// GradientCmd sweeps brightness across the screen.
	GradientCmd = ishell.Cmd{
		Name:    "gradient",
		Aliases: []string{"grad"},
		Help:    "[VALUE0 VALUE1]",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			from, to := byte(0), byte(0xff)
			if len(c.Args) >= 2 {
				var ok bool
				if from, ok = parseByte(c, "VALUE0", c.Args[0]); !ok {
					return
				}
				if to, ok = parseByte(c, "VALUE1", c.Args[1]); !ok {
					return
				}
			}
			sendRaster(c, pattern.Gradient(from, to))
		}),
	}

	// BordersCmd outlines the panels.
	BordersCmd = ishell.Cmd{
		Name: "borders",
		Help: "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sendRaster(c, pattern.Borders())
		}),
	}

	// LevelCmd sets the brightness applied to pattern frames.
	LevelCmd = ishell.Cmd{
		Name:    "level",
		Aliases: []string{"lvl"},
		Help:    "VALUE",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("VALUE required"))
				return
			}
			v, ok := parseByte(c, "VALUE", c.Args[0])
			if !ok {
				return
			}
			sh.ShellFrom(c).Session.Level = v
		}),
	}

	// WatchCmd dumps raw reply lines from the device.
	WatchCmd = ishell.Cmd{
		Name:    "watch",
		Aliases: []string{"w"},
		Help:    "[SECONDS]",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			secs := 10
			if len(c.Args) > 0 {
				v, err := strconv.Atoi(c.Args[0])
				if err != nil || v <= 0 {
					c.Err(fmt.Errorf("Invalid SECONDS: %s", c.Args[0]))
					return
				}
				secs = v
			}
			s := sh.ShellFrom(c)
			deadline := time.After(time.Duration(secs) * time.Second)
			for {
				select {
				case line, ok := <-s.Session.Lines():
					if !ok {
						c.Err(fmt.Errorf("link closed"))
						return
					}
					c.Println(line)
				case <-deadline:
					return
				}
			}
		}),
	}

	// ScriptCmd plays a file of console commands.
	ScriptCmd = ishell.Cmd{
		Name:    "script",
		Aliases: []string{"run"},
		Help:    "FILE",
		Func: func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("FILE required"))
				return
			}
			data, err := os.ReadFile(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			s := sh.ShellFrom(c)
			for n, raw := range strings.Split(string(data), "\n") {
				line := strings.TrimSpace(raw)
				if line == "" || strings.HasPrefix(line, "#") {
					continue
				}
				fields, err := shlex.Split(line)
				if err != nil {
					c.Err(fmt.Errorf("line %d: %v", n+1, err))
					return
				}
				if err := s.Shell.Process(fields...); err != nil {
					c.Err(fmt.Errorf("line %d: %v", n+1, err))
					return
				}
			}
		},
	}
)

func init() {
	sh.AddCmds(
		&PingCmd,
		&InfoCmd,
		&PixelCmd,
		&FillCmd,
		&ClearCmd,
		&CheckerCmd,
		&StripesCmd,
		&GradientCmd,
		&BordersCmd,
		&LevelCmd,
		&WatchCmd,
		&ScriptCmd,
	)
}
