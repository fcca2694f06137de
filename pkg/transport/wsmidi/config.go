package wsmidi

import (
	"flag"
)

// Config defines the configuration for the websocket transport.
type Config struct {
	URL string
}

var defaultConfig = Config{}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.URL, "ws-url", defaultConfig.URL,
		"Websocket URL delivering MIDI frames, empty to disable.")
}

// NewConfig creates the default configuration.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewTransport creates the transport.
func (c *Config) NewTransport() *Transport {
	return New(c.URL)
}
