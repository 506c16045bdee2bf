package sh

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mirrorworks/mirror.go/pkg/link"
)

const queryTimeout = time.Second

// Session is an open device link: frames go down raw, reply lines come back
// through a background reader.
type Session struct {
	Dialect link.Dialect

	// Level is the brightness applied to pattern frames, full by default.
	Level byte

	port  io.ReadWriteCloser
	lines chan string
}

// NewSession wraps an open port and starts the reply reader.
func NewSession(port io.ReadWriteCloser, dialect link.Dialect) *Session {
	s := &Session{
		Dialect: dialect,
		Level:   0xff,
		port:    port,
		lines:   make(chan string, 64),
	}
	go s.readLines()
	return s
}

// Close closes the underlying port, stopping the reader.
func (s *Session) Close() error {
	return s.port.Close()
}

// Send writes a frame without waiting for a reply.
func (s *Session) Send(frame []byte) error {
	_, err := s.port.Write(frame)
	return err
}

// Lines returns the stream of device reply lines.
func (s *Session) Lines() <-chan string {
	return s.lines
}

// Query sends a frame and collects the expected number of reply lines.
// Stale lines queued before the query are dropped.
func (s *Session) Query(frame []byte, nlines int, timeout time.Duration) ([]string, error) {
	s.drain()
	if err := s.Send(frame); err != nil {
		return nil, err
	}
	var out []string
	deadline := time.After(timeout)
	for len(out) < nlines {
		select {
		case line, ok := <-s.lines:
			if !ok {
				return out, fmt.Errorf("link closed")
			}
			out = append(out, line)
		case <-deadline:
			return out, fmt.Errorf("reply timeout")
		}
	}
	return out, nil
}

func (s *Session) drain() {
	for {
		select {
		case _, ok := <-s.lines:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (s *Session) readLines() {
	defer close(s.lines)
	buf := make([]byte, 128)
	var pending []byte
	for {
		n, err := s.port.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue // read timeout
		}
		pending = append(pending, buf[:n]...)
		for {
			i := bytes.IndexByte(pending, '\n')
			if i < 0 {
				break
			}
			line := strings.TrimRight(string(pending[:i]), "\r")
			pending = pending[i+1:]
			select {
			case s.lines <- line:
			default:
				// nobody listening, drop
			}
		}
	}
}
