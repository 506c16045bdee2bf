package link

// Frame is one complete validated packet ready for dispatch. Query frames
// carry a nil payload.
type Frame struct {
	Type    byte
	Payload []byte
}

// Parser is a single-dialect frame parser consuming a raw byte stream one
// byte at a time. Bytes that do not fit the grammar silently resynchronize
// the parser to the header hunt; there is no error path and no reaction to
// malformed input. Payload bytes are accumulated verbatim, so header values
// inside a payload carry no special meaning.
type Parser struct {
	dialect Dialect
	state   parseState
	typ     byte
	payload []byte
	recvLen int
}

// NewParser creates a parser for one dialect.
func NewParser(d Dialect) *Parser {
	return &Parser{dialect: d}
}

type parseState int

const (
	stateHeader0 parseState = iota // hunting for the first header byte
	stateHeader1                   // first header byte seen
	stateType                      // header matched, type byte pending
	statePayload                   // accumulating a payload
)

// Dialect returns the dialect this parser speaks.
func (p *Parser) Dialect() Dialect {
	return p.dialect
}

// Reset drops any partially received frame and resumes hunting for a
// header. Safe to call at any point.
func (p *Parser) Reset() {
	p.state = stateHeader0
	p.typ = 0
	p.payload = nil
	p.recvLen = 0
}

// Parse consumes one byte and returns a completed frame, or nil while more
// input is needed.
func (p *Parser) Parse(b byte) *Frame {
	switch p.state {
	case stateHeader0:
		if b == Header0 {
			p.state = stateHeader1
		}
	case stateHeader1:
		if b == Header1 {
			p.state = stateType
		} else {
			p.state = stateHeader0
		}
	case stateType:
		n, ok := p.dialect.PayloadLen(b)
		if !ok {
			p.Reset()
			return nil
		}
		if n == 0 {
			p.Reset()
			return &Frame{Type: b}
		}
		p.typ = b
		p.payload = make([]byte, n)
		p.recvLen = 0
		p.state = statePayload
	case statePayload:
		if p.recvLen >= len(p.payload) {
			p.Reset()
			return nil
		}
		p.payload[p.recvLen] = b
		p.recvLen++
		if p.recvLen == len(p.payload) {
			return p.frameReady()
		}
	}
	return nil
}

func (p *Parser) frameReady() *Frame {
	f := &Frame{Type: p.typ, Payload: p.payload}
	p.Reset()
	return f
}
