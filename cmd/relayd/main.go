package main

//go-build: CGO_ENABLED=1

import (
	"flag"

	"github.com/golang/glog"

	"github.com/midimiti/midirelay/pkg/control"
	"github.com/midimiti/midirelay/pkg/gpio"
	"github.com/midimiti/midirelay/pkg/relay"
	"github.com/midimiti/midirelay/pkg/transport"
	"github.com/midimiti/midirelay/pkg/transport/blemidi"
	"github.com/midimiti/midirelay/pkg/transport/mqttmidi"
	"github.com/midimiti/midirelay/pkg/transport/serialmidi"
	"github.com/midimiti/midirelay/pkg/transport/usbmidi"
	"github.com/midimiti/midirelay/pkg/transport/wsmidi"
)

func init() {
	control.SetupFlags()
	relay.SetupFlags()
	usbmidi.SetupFlags()
	blemidi.SetupFlags()
	serialmidi.SetupFlags()
	mqttmidi.SetupFlags()
	wsmidi.SetupFlags()
}

func main() {
	flag.Parse()
	defer glog.Flush()

	glog.Info("midirelay: 4 relays driven by MIDI messages")
	glog.Info("mapping: notes 60-63 -> relay 1-4, cc 1-4 with threshold 64, program 0-3 exclusive select")

	relayConf, err := relay.NewConfig()
	if err != nil {
		glog.Exitf("%v", err)
	}
	var outputs [relay.NumRelays]gpio.Output
	for i, pin := range relayConf.Pins {
		outputs[i] = &gpio.SimOutput{Pin: pin}
	}
	relays := relay.NewController(outputs)
	mapper := control.NewMapper(relays)

	var transports []transport.Transport

	if conf := usbmidi.NewConfig(); conf.Enabled {
		t, err := conf.NewTransport()
		if err != nil {
			glog.Exitf("usb midi: %v", err)
		}
		transports = append(transports, t)
	}
	if conf := blemidi.NewConfig(); conf.Enabled {
		transports = append(transports, conf.NewTransport())
	}
	if conf := serialmidi.NewConfig(); conf.Device != "" {
		t, err := conf.NewTransport()
		if err != nil {
			glog.Exitf("serial midi: %v", err)
		}
		defer t.Close()
		transports = append(transports, t)
	}
	if conf := mqttmidi.NewConfig(); conf.BrokerURL != "" {
		t, err := mqttmidi.Connect(conf)
		if err != nil {
			glog.Exitf("mqtt: %v", err)
		}
		defer t.Close()
		transports = append(transports, t)
		relays.Listener = mqttmidi.NewStatusPublisher(t.Client(), conf.Prefix).StateChanged
	}
	if conf := wsmidi.NewConfig(); conf.URL != "" {
		transports = append(transports, conf.NewTransport())
	}
	if len(transports) == 0 {
		glog.Exit("no transports enabled")
	}

	loop := control.NewConfig().NewLoop(mapper, transports...)
	runner := control.NewRunner().HandleSignals()
	if err := runner.Go(loop).Wait(); err != nil {
		glog.Exitf("%v", err)
	}
}
