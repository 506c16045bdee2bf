package sh

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"

	"github.com/abiosoft/ishell"
	serial "go.bug.st/serial"

	"github.com/mirrorworks/mirror.go/pkg/link"
	"github.com/mirrorworks/mirror.go/pkg/serialport"
)

// Shell provides ishell backed interactive shell.
type Shell struct {
	Interactive bool
	OutputJSON  bool
	AutoConnect bool

	Shell   *ishell.Shell
	Config  *serialport.Config
	Dialect link.Dialect
	Session *Session
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	// flags

	evalOnly    bool
	outputJSON  bool
	dialectName = "panel"

	// commands
	commands = []*ishell.Cmd{
		&PortsCmd,
		&ConnectCmd,
		&DisconnectCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
	flag.StringVar(&dialectName, "dialect", dialectName, "Framing dialect (panel|gray).")
}

// AddCmds is used by other commands providers during init func.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a new shell.
func New(conf *serialport.Config) *Shell {
	dialect, err := link.DialectByName(dialectName)
	if err != nil {
		log.Fatalln(err)
	}
	s := &Shell{
		Interactive: !evalOnly,
		OutputJSON:  outputJSON,

		Shell:   ishell.New(),
		Config:  conf,
		Dialect: dialect,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected wraps command func requires an open device.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Session == nil {
			c.Err(fmt.Errorf("not connected"))
			return
		}
		fn(c)
	}
}

// PrintLines prints device reply lines honoring the output mode.
func (s *Shell) PrintLines(c *ishell.Context, lines []string) {
	if s.OutputJSON {
		out, err := json.Marshal(lines)
		if err != nil {
			c.Err(err)
			return
		}
		c.Println(string(out))
		return
	}
	for _, line := range lines {
		c.Println(line)
	}
}

// DoQuery sends a frame, waits for the expected reply lines and prints them.
func DoQuery(c *ishell.Context, frame []byte, nlines int) {
	s := ShellFrom(c)
	lines, err := s.Session.Query(frame, nlines, queryTimeout)
	if err != nil {
		c.Err(err)
		return
	}
	s.PrintLines(c, lines)
}

// DoSend sends a frame without waiting for a reply.
func DoSend(c *ishell.Context, frame []byte) {
	if err := ShellFrom(c).Session.Send(frame); err != nil {
		c.Err(err)
	}
}

// WithAutoConnect sets AutoConnect.
func (s *Shell) WithAutoConnect(en bool) *Shell {
	s.AutoConnect = en
	return s
}

// Connect opens the configured serial device.
func (s *Shell) Connect() error {
	port, err := s.Config.Open()
	if err != nil {
		return err
	}
	if s.Session != nil {
		s.Session.Close()
	}
	s.Session = NewSession(port, s.Dialect)
	s.Shell.SetPrompt(fmt.Sprintf("%s > ", s.Config.Device))
	return nil
}

// Disconnect closes the current device.
func (s *Shell) Disconnect() {
	if s.Session != nil {
		s.Session.Close()
		s.Session = nil
		s.Shell.SetPrompt(unconnectedPrompt)
	}
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if s.AutoConnect {
		if s.Interactive {
			s.Shell.Printf("Connecting %s ...\n", s.Config.Device)
		}
		if err := s.Connect(); err != nil {
			if !s.Interactive {
				log.Fatalf("connect %q failed: %v", s.Config.Device, err)
			}
			// stay in the shell, reachable via ports/connect
			s.Shell.Printf("connect %q failed: %v\n", s.Config.Device, err)
		}
	}

	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

var (
	// PortsCmd lists serial ports on this host.
	PortsCmd = ishell.Cmd{
		Name:    "ports",
		Aliases: []string{"list", "l"},
		Help:    "",
		Func: func(c *ishell.Context) {
			names, err := serial.GetPortsList()
			if err != nil {
				c.Err(err)
				return
			}
			s := ShellFrom(c)
			if s.OutputJSON {
				if names == nil {
					names = []string{}
				}
				out, err := json.Marshal(names)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			if len(names) == 0 {
				c.Println("No serial ports found")
				return
			}
			for _, name := range names {
				c.Println(name)
			}
		},
	}

	// ConnectCmd opens a device.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "[DEVICE]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			if len(c.Args) > 0 {
				s.Config.Device = c.Args[0]
			}
			if err := s.Connect(); err != nil {
				c.Err(err)
				return
			}
		},
	}

	// DisconnectCmd closes the current device.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(serialport.NewConfig()).WithAutoConnect(true).Run(flag.Args()...)
}
