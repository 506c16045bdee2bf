package sh

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mirrorworks/mirror.go/pkg/link"
	"github.com/mirrorworks/mirror.go/pkg/pattern"
	"github.com/mirrorworks/mirror.go/pkg/sim"
)

func newTestSession(t *testing.T, dialect link.Dialect) (*Session, *sim.Device) {
	dev := sim.NewDevice(dialect)
	sess := NewSession(dev, dialect)
	select {
	case line := <-sess.Lines():
		require.Equal(t, "READY", line)
	case <-time.After(2 * time.Second):
		t.Fatal("no boot greeting")
	}
	return sess, dev
}

func TestSessionQuery(t *testing.T) {
	sess, _ := newTestSession(t, link.Panel)
	defer sess.Close()

	lines, err := sess.Query(link.EncodePing(), 1, time.Second)
	require.NoError(t, err)
	require.Equal(t, []string{"PONG"}, lines)

	lines, err = sess.Query(link.EncodeInfo(), len(link.InfoLines), time.Second)
	require.NoError(t, err)
	require.Equal(t, link.InfoLines, lines)
}

func TestSessionQueryTimeout(t *testing.T) {
	sess, _ := newTestSession(t, link.Panel)
	defer sess.Close()

	// pixel frames never produce a reply
	frame := link.EncodeRaster(sess.Dialect, pattern.Pixel(0, 0))
	_, err := sess.Query(frame, 1, 50*time.Millisecond)
	require.EqualError(t, err, "reply timeout")
}

func TestSessionSendRenders(t *testing.T) {
	sess, dev := newTestSession(t, link.Gray)
	defer sess.Close()

	require.NoError(t, sess.Send(link.EncodeRaster(sess.Dialect, pattern.Fill(70))))
	require.EqualValues(t, 1, dev.Seq())
	require.Equal(t, byte(70), dev.Snapshot().Pixels[0])
}

func TestSessionClosedLink(t *testing.T) {
	sess, dev := newTestSession(t, link.Panel)
	require.NoError(t, dev.Close())

	_, err := sess.Query(link.EncodePing(), 1, 50*time.Millisecond)
	require.Error(t, err)

	// the reader shuts the line stream down
	select {
	case _, ok := <-sess.Lines():
		require.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("line stream not closed")
	}
}
