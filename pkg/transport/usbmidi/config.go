package usbmidi

import (
	"flag"
)

// Config defines the configuration for the USB MIDI transport.
type Config struct {
	Enabled bool
	Port    string
}

var defaultConfig = Config{
	Enabled: true,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.BoolVar(&defaultConfig.Enabled, "usb", defaultConfig.Enabled,
		"Enable the USB (system MIDI port) transport.")
	flag.StringVar(&defaultConfig.Port, "midi-port", defaultConfig.Port,
		"MIDI input port name substring, empty for the first available port.")
}

// NewConfig creates the default configuration.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewTransport creates the transport backed by a system MIDI port.
func (c *Config) NewTransport() (*Transport, error) {
	drv, err := NewPortDriver(c.Port)
	if err != nil {
		return nil, err
	}
	return New(drv), nil
}
