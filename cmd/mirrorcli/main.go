package main

import (
	"github.com/mirrorworks/mirror.go/pkg/cli/sh"
	"github.com/mirrorworks/mirror.go/pkg/serialport"

	_ "github.com/mirrorworks/mirror.go/pkg/cli/cmds/led"
)

//go-build: CGO_ENABLED=0

func init() {
	serialport.SetupFlags()
}

func main() {
	sh.Main()
}
