package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/mirrorworks/mirror.go/pkg/mqtt"
	"github.com/mirrorworks/mirror.go/pkg/sim"
)

var (
	mqttURL = "mqtt://localhost:1883/mirror/"
)

func init() {
	if val := os.Getenv("MIRROR_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}

	q.Sub("#", mqtt.Handler(func(topic string, payload []byte) {
		if strings.HasSuffix(topic, "/meta") {
			if len(payload) == 0 {
				log.Printf("%s: gone", topic)
				return
			}
			log.Printf("%s: %s", topic, string(payload))
			return
		}
		var snap sim.Snapshot
		if err := json.Unmarshal(payload, &snap); err != nil {
			log.Printf("%s: bad message: %v", topic, err)
			return
		}
		log.Printf("%s: seq=%d %dx%d lit=%d", topic, snap.Seq, snap.W, snap.H, snap.Lit())
	}))
	<-(chan struct{})(nil)
}
