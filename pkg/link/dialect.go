package link

import (
	"fmt"

	"github.com/mirrorworks/mirror.go/pkg/matrix"
)

// Wire header shared by both dialects.
const (
	Header0 byte = 0xaa
	Header1 byte = 0xbb
)

// Frame types. TypeGray belongs to the gray dialect, the others to the
// panel dialect.
const (
	TypeGray   byte = 0x01
	TypeBitmap byte = 0x03
	TypePing   byte = 0x05
	TypeInfo   byte = 0x06
)

// frameOverhead is the header pair plus the type byte.
const frameOverhead = 3

// ReplyPong is the acknowledgment sent for a PING query.
const ReplyPong = "PONG"

// InfoLines is the identification block sent for an INFO query.
var InfoLines = []string{"MIRROR-LED-32x64", "VERSION:2.0", "PANELS:8", "OK"}

// Dialect describes one wire protocol variant. The parser is generic over
// the frame grammar; the dialect contributes the type table and the session
// recovery threshold.
type Dialect interface {
	// Name identifies the dialect in logs and flag values.
	Name() string
	// PayloadLen returns the payload length of a frame type, or false for
	// a type the dialect does not speak. A zero-length frame completes at
	// the type byte.
	PayloadLen(typ byte) (int, bool)
	// MaxFrameLen returns the on-wire length of the longest frame.
	MaxFrameLen() int
	// DrainThreshold returns the pending input volume above which a
	// session discards everything buffered and resets the parser, or 0
	// when the dialect has no such guard.
	DrainThreshold() int
}

// Panel is the multi-command dialect of the split-panel firmware: PING and
// INFO queries plus a 1-bit full-screen bitmap frame.
var Panel Dialect = panelDialect{}

// Gray is the single-command dialect carrying full-screen 8-bit grayscale
// frames.
var Gray Dialect = grayDialect{}

// DialectByName resolves a dialect flag value.
func DialectByName(name string) (Dialect, error) {
	switch name {
	case Panel.Name():
		return Panel, nil
	case Gray.Name():
		return Gray, nil
	}
	return nil, fmt.Errorf("unknown dialect %q", name)
}

type panelDialect struct{}

func (panelDialect) Name() string { return "panel" }

func (panelDialect) PayloadLen(typ byte) (int, bool) {
	switch typ {
	case TypePing, TypeInfo:
		return 0, true
	case TypeBitmap:
		return matrix.BitmapBytes, true
	}
	return 0, false
}

func (panelDialect) MaxFrameLen() int { return frameOverhead + matrix.BitmapBytes }

func (panelDialect) DrainThreshold() int { return 0 }

type grayDialect struct{}

func (grayDialect) Name() string { return "gray" }

func (grayDialect) PayloadLen(typ byte) (int, bool) {
	if typ == TypeGray {
		return matrix.TotalPixels, true
	}
	return 0, false
}

func (grayDialect) MaxFrameLen() int { return frameOverhead + matrix.TotalPixels }

func (grayDialect) DrainThreshold() int { return 2 * (frameOverhead + matrix.TotalPixels) }
