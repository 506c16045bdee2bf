package sim

import (
	"context"
	"encoding/json"

	fx "github.com/mirrorworks/mirror.go/pkg/framework"
	"github.com/mirrorworks/mirror.go/pkg/matrix"
	"github.com/mirrorworks/mirror.go/pkg/mqtt"
)

// Meta is the retained registration record describing a published device.
type Meta struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Dialect string `json:"dialect"`
	W       int    `json:"w"`
	H       int    `json:"h"`
}

// Publisher announces a device over MQTT and streams its frames: a retained
// meta record on <type>/<id>/meta, one snapshot per applied frame on
// <type>/<id>/frame.
type Publisher struct {
	Queue  *mqtt.Queue
	Device *Device

	name     string
	metaJSON []byte
	lastSeq  uint64
	sent     bool
}

// NewPublisher creates a Publisher against the broker at brokerURL.
func NewPublisher(brokerURL string, dev *Device, typ, id string) (*Publisher, error) {
	meta, err := json.Marshal(&Meta{
		ID:      id,
		Type:    typ,
		Dialect: dev.Dialect().Name(),
		W:       matrix.Width,
		H:       matrix.Height,
	})
	if err != nil {
		panic(err)
	}
	opts, topicPrefix, err := mqtt.ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	name := typ + "/" + id
	opts.SetBinaryWill(topicPrefix+name+"/meta", nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID("mirror:" + id)
	}
	p := &Publisher{
		Queue:    mqtt.NewQueue(opts, topicPrefix),
		Device:   dev,
		name:     name,
		metaJSON: meta,
	}
	p.Queue.OnConnect = func(*mqtt.Queue) { p.onConnected() }
	return p, nil
}

// AddToLoop implements LoopAdder.
func (p *Publisher) AddToLoop(loop *fx.Loop) {
	loop.AddRunnable(p)
	loop.AddController(fx.PhaseOutput, fx.ControlFunc(p.publishFrames))
}

// Run implements Runnable. It holds the connection for the lifetime of the
// loop and clears the retained meta on the way out.
func (p *Publisher) Run(ctx context.Context) error {
	if token := p.Queue.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	<-ctx.Done()
	p.Queue.PubWith(p.name+"/meta", nil, 1, true)
	p.Queue.Close()
	return nil
}

func (p *Publisher) onConnected() {
	p.Queue.PubWith(p.name+"/meta", p.metaJSON, 1, true)
}

func (p *Publisher) publishFrames(fx.ControlContext) error {
	if seq := p.Device.Seq(); p.sent && seq == p.lastSeq {
		return nil
	}
	snap := p.Device.Snapshot()
	encoded, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	p.Queue.Pub(p.name+"/frame", encoded)
	p.lastSeq, p.sent = snap.Seq, true
	return nil
}
