package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"io"

	"github.com/golang/glog"

	fx "github.com/mirrorworks/mirror.go/pkg/framework"
	"github.com/mirrorworks/mirror.go/pkg/mirror"
	"github.com/mirrorworks/mirror.go/pkg/serialport"
)

func init() {
	conf := mirror.Default()
	conf.Banner = []string{"MIRROR-LED-32x64", "READY"}
	mirror.SetupFlags()
	serialport.SetupFlags()
}

func main() {
	flag.Parse()

	port := serialport.NewConfig()
	dev := mirror.NewConfig().MustNewDevice(func() (io.ReadWriteCloser, error) {
		return port.Open()
	})

	runner := fx.NewRunner().HandleSignals()
	runner.Go(fx.NewLoop().Add(dev))
	err := runner.Wait()
	if cerr := dev.Close(); cerr != nil {
		glog.Errorf("close: %v", cerr)
	}
	if err != nil {
		glog.Exitln(err)
	}
}
