package sim

import (
	"net/http"
	"time"

	"github.com/golang/glog"
	"golang.org/x/net/websocket"
)

const defaultStreamInterval = 50 * time.Millisecond

// Streamer serves device snapshots over a WebSocket: one JSON snapshot on
// connect, then one whenever a new frame lands.
type Streamer struct {
	Device *Device

	// Interval bounds how often a connection polls for new frames.
	Interval time.Duration
}

// Handler returns the HTTP handler upgrading connections.
func (s *Streamer) Handler() http.Handler {
	return websocket.Handler(s.serve)
}

func (s *Streamer) serve(ws *websocket.Conn) {
	defer ws.Close()
	interval := s.Interval
	if interval <= 0 {
		interval = defaultStreamInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	var lastSeq uint64
	sent := false
	for {
		if seq := s.Device.Seq(); !sent || seq != lastSeq {
			snap := s.Device.Snapshot()
			if err := websocket.JSON.Send(ws, snap); err != nil {
				glog.V(2).Infof("frame stream closed: %v", err)
				return
			}
			lastSeq, sent = snap.Seq, true
		}
		select {
		case <-ticker.C:
		case <-s.Device.closed:
			return
		}
	}
}
