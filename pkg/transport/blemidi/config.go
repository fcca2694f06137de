package blemidi

import (
	"flag"
)

// Config defines the configuration for the BLE MIDI transport.
type Config struct {
	Enabled bool
}

var defaultConfig = Config{}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.BoolVar(&defaultConfig.Enabled, "ble", defaultConfig.Enabled,
		"Enable the BLE MIDI transport (stub server unless a driver is wired).")
}

// NewConfig creates the default configuration.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewTransport creates the transport over a stub server.
func (c *Config) NewTransport() *Transport {
	return New(NewStubServer())
}
