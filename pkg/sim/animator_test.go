package sim

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mirrorworks/mirror.go/pkg/link"
	"github.com/mirrorworks/mirror.go/pkg/pattern"
)

func TestAnimatorEmit(t *testing.T) {
	dev := NewDevice(link.Gray)
	a := &Animator{Out: dev, Dialect: dev.Dialect()}

	require.NoError(t, a.Emit())
	require.EqualValues(t, 1, dev.Seq())
	// the first demo frame is the checkerboard
	require.Equal(t, pattern.Checker(pattern.DefaultSquare), dev.Snapshot().Pixels)

	for i := 0; i < len(demoRasters); i++ {
		require.NoError(t, a.Emit())
	}
	require.EqualValues(t, 1+len(demoRasters), dev.Seq())
}

func TestAnimatorPanelDialect(t *testing.T) {
	dev := NewDevice(link.Panel)
	a := &Animator{Out: dev, Dialect: dev.Dialect()}
	require.NoError(t, a.Emit())

	// the 1-bit dialect keeps the checkerboard intact
	require.Equal(t, pattern.Checker(pattern.DefaultSquare), dev.Snapshot().Pixels)
}

func TestAnimatorRun(t *testing.T) {
	dev := NewDevice(link.Gray)
	a := &Animator{Out: dev, Dialect: dev.Dialect(), Interval: time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for dev.Seq() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()
	require.Equal(t, context.Canceled, <-done)
	require.GreaterOrEqual(t, dev.Seq(), uint64(3))
}
