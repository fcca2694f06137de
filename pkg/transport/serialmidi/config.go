package serialmidi

import (
	"flag"
)

// Config defines the configuration for the serial MIDI transport.
type Config struct {
	Device string
	Baud   int
}

var defaultConfig = Config{
	Baud: MIDIBaud,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Device, "serial-device", defaultConfig.Device,
		"Serial device for DIN MIDI input, empty to disable.")
	flag.IntVar(&defaultConfig.Baud, "serial-baud", defaultConfig.Baud,
		"Serial baud rate.")
}

// NewConfig creates the default configuration.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewTransport opens the configured serial device.
func (c *Config) NewTransport() (*Transport, error) {
	return Open(c.Device, c.Baud)
}
