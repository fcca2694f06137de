package main

//go-build: CGO_ENABLED=0

import (
	"github.com/midimiti/midirelay/pkg/cli/sh"
	"github.com/midimiti/midirelay/pkg/transport/mqttmidi"
)

func init() {
	mqttmidi.SetupFlags()
}

func main() {
	sh.Main()
}
