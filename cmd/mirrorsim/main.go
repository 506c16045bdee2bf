package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"net/http"

	"github.com/golang/glog"

	fx "github.com/mirrorworks/mirror.go/pkg/framework"
	"github.com/mirrorworks/mirror.go/pkg/sim"
)

func init() {
	sim.SetupFlags()
}

func main() {
	flag.Parse()

	conf := sim.NewConfig()
	dev := conf.MustNewDevice()

	loop := fx.NewLoop()
	pub, err := conf.NewPublisher(dev)
	if err != nil {
		glog.Exitln(err)
	}
	if pub != nil {
		loop.Add(pub)
	}
	if anim := conf.NewAnimator(dev); anim != nil {
		loop.AddRunnable(anim)
	}
	if conf.ListenAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/frames", (&sim.Streamer{Device: dev}).Handler())
		go func() {
			glog.Infof("frame stream on ws://%s/frames", conf.ListenAddr)
			glog.Exitln(http.ListenAndServe(conf.ListenAddr, mux))
		}()
	}

	runner := fx.NewRunner().HandleSignals()
	runner.Go(loop)
	err = runner.Wait()
	dev.Close()
	if err != nil {
		glog.Exitln(err)
	}
}
