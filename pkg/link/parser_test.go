package link

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type parserTestSequence struct {
	in    []byte
	final *Frame
}

type parserTestSequenceBuilder struct {
	seq []parserTestSequence
}

func parserTestSequences() *parserTestSequenceBuilder {
	return &parserTestSequenceBuilder{}
}

// feed appends a step consuming bytes. Only the last byte of a step may
// complete a frame.
func (b *parserTestSequenceBuilder) feed(in ...byte) *parserTestSequenceBuilder {
	b.seq = append(b.seq, parserTestSequence{in: in})
	return b
}

// reset appends an explicit parser reset step.
func (b *parserTestSequenceBuilder) reset() *parserTestSequenceBuilder {
	b.seq = append(b.seq, parserTestSequence{})
	return b
}

// frame records the frame expected from the last byte of the previous step.
func (b *parserTestSequenceBuilder) frame(typ byte, payload []byte) *parserTestSequenceBuilder {
	b.seq[len(b.seq)-1].final = &Frame{Type: typ, Payload: payload}
	return b
}

func (b *parserTestSequenceBuilder) build() []parserTestSequence {
	return b.seq
}

func padded(size int, lead ...byte) []byte {
	p := make([]byte, size)
	copy(p, lead)
	return p
}

func TestParser(t *testing.T) {
	testCases := []struct {
		name    string
		dialect Dialect
		seq     []parserTestSequence
	}{
		{
			name:    "panel ping",
			dialect: Panel,
			seq: parserTestSequences().
				feed(0xaa, 0xbb, 0x05).frame(TypePing, nil).
				build(),
		},
		{
			name:    "panel queries between junk",
			dialect: Panel,
			seq: parserTestSequences().
				feed(0x00, 0x41, 0xfe).
				feed(0xaa, 0xbb, 0x05).frame(TypePing, nil).
				feed(0x01, 0x02, 0x03).
				feed(0xaa, 0xbb, 0x06).frame(TypeInfo, nil).
				build(),
		},
		{
			name:    "panel bitmap",
			dialect: Panel,
			seq: parserTestSequences().
				feed(EncodeBitmap([]byte{0x80})...).frame(TypeBitmap, padded(256, 0x80)).
				build(),
		},
		{
			name:    "near header never dispatches",
			dialect: Panel,
			seq: parserTestSequences().
				feed(0xaa, 0x01, 0x05).
				feed(0xaa, 0x01, 0x03, 0x11, 0x22).
				feed(0xaa, 0xbb, 0x05).frame(TypePing, nil).
				build(),
		},
		{
			name:    "second header byte mismatch drops both",
			dialect: Panel,
			seq: parserTestSequences().
				feed(0xaa, 0xaa, 0xbb, 0x05).
				feed(0xaa, 0xbb, 0x05).frame(TypePing, nil).
				build(),
		},
		{
			name:    "panel unknown type resets",
			dialect: Panel,
			seq: parserTestSequences().
				feed(0xaa, 0xbb, 0x07).
				feed(0xaa, 0xbb, 0x05).frame(TypePing, nil).
				build(),
		},
		{
			name:    "panel rejects gray frame type",
			dialect: Panel,
			seq: parserTestSequences().
				feed(0xaa, 0xbb, 0x01).
				feed(0xaa, 0xbb, 0x06).frame(TypeInfo, nil).
				build(),
		},
		{
			name:    "gray frame",
			dialect: Gray,
			seq: parserTestSequences().
				feed(EncodeGray([]byte{200, 1, 2})...).frame(TypeGray, padded(2048, 200, 1, 2)).
				build(),
		},
		{
			name:    "gray rejects query types",
			dialect: Gray,
			seq: parserTestSequences().
				feed(0xaa, 0xbb, 0x05).
				feed(0xaa, 0xbb, 0x06).
				feed(0xaa, 0xbb, 0x03).
				feed(EncodeGray(nil)...).frame(TypeGray, padded(2048)).
				build(),
		},
		{
			name:    "gray payload may contain header bytes",
			dialect: Gray,
			seq: parserTestSequences().
				feed(EncodeGray(padded(2048, 0xaa, 0xbb, 0x01, 0xaa, 0xbb))...).
				frame(TypeGray, padded(2048, 0xaa, 0xbb, 0x01, 0xaa, 0xbb)).
				build(),
		},
		{
			name:    "reset mid accumulation then full packet",
			dialect: Panel,
			seq: parserTestSequences().
				feed(0xaa, 0xbb, 0x03, 0x01, 0x02, 0x03).
				reset().
				feed(EncodeBitmap([]byte{0x80})...).frame(TypeBitmap, padded(256, 0x80)).
				build(),
		},
		{
			name:    "aborted type then full packet",
			dialect: Gray,
			seq: parserTestSequences().
				feed(0xaa, 0xbb, 0x09).
				feed(EncodeGray([]byte{7})...).frame(TypeGray, padded(2048, 7)).
				build(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewParser(tc.dialect)
			for n, s := range tc.seq {
				if len(s.in) == 0 {
					p.Reset()
					continue
				}
				var f *Frame
				for i, b := range s.in {
					f = p.Parse(b)
					if i+1 < len(s.in) {
						require.Nilf(t, f, "seq[%d][%d] unexpected frame", n, i)
					}
				}
				require.Equalf(t, s.final, f, "seq[%d] final mismatch", n)
			}
		})
	}
}

func TestParserResetsAfterQuery(t *testing.T) {
	p := NewParser(Panel)
	var f *Frame
	for _, b := range EncodePing() {
		f = p.Parse(b)
	}
	require.Equal(t, &Frame{Type: TypePing}, f)
	require.Equal(t, stateHeader0, p.state)
	require.Zero(t, p.recvLen)
	require.Nil(t, p.payload)
}

func TestParserPayloadNeverExceedsDialectMax(t *testing.T) {
	for _, d := range []Dialect{Panel, Gray} {
		p := NewParser(d)
		max := d.MaxFrameLen() - frameOverhead
		var stream []byte
		stream = append(stream, 0xaa, 0xaa, 0xbb, 0x03, 0xff, 0x00)
		stream = append(stream, EncodePing()...)
		stream = append(stream, EncodeBitmap(padded(256, 0xff))...)
		stream = append(stream, EncodeGray(padded(2048, 0xaa))...)
		stream = append(stream, 0xbb, 0xbb, 0xaa)
		for i, b := range stream {
			p.Parse(b)
			require.LessOrEqualf(t, len(p.payload), max, "%s byte %d", d.Name(), i)
			require.LessOrEqualf(t, p.recvLen, len(p.payload), "%s byte %d", d.Name(), i)
		}
	}
}

func TestDialects(t *testing.T) {
	n, ok := Panel.PayloadLen(TypeBitmap)
	require.True(t, ok)
	require.Equal(t, 256, n)
	for _, typ := range []byte{TypePing, TypeInfo} {
		n, ok = Panel.PayloadLen(typ)
		require.True(t, ok)
		require.Zero(t, n)
	}
	_, ok = Panel.PayloadLen(TypeGray)
	require.False(t, ok)
	require.Equal(t, 259, Panel.MaxFrameLen())
	require.Zero(t, Panel.DrainThreshold())

	n, ok = Gray.PayloadLen(TypeGray)
	require.True(t, ok)
	require.Equal(t, 2048, n)
	for _, typ := range []byte{TypePing, TypeInfo, TypeBitmap, 0x00, 0xff} {
		_, ok = Gray.PayloadLen(typ)
		require.Falsef(t, ok, "type %#x", typ)
	}
	require.Equal(t, 2051, Gray.MaxFrameLen())
	require.Equal(t, 4102, Gray.DrainThreshold())
}

func TestDialectByName(t *testing.T) {
	d, err := DialectByName("panel")
	require.NoError(t, err)
	require.Equal(t, Panel, d)
	d, err = DialectByName("gray")
	require.NoError(t, err)
	require.Equal(t, Gray, d)
	_, err = DialectByName("rgb")
	require.Error(t, err)
}
