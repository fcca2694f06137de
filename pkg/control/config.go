package control

import (
	"flag"
	"time"

	"github.com/midimiti/midirelay/pkg/transport"
)

// Config defines the configuration for the polling loop.
type Config struct {
	Interval time.Duration
}

var defaultConfig = Config{
	Interval: DefaultInterval,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.DurationVar(&defaultConfig.Interval, "poll-interval", defaultConfig.Interval,
		"Sleep between polling iterations.")
}

// NewConfig creates the default configuration.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewLoop creates the Loop.
func (c *Config) NewLoop(mapper *Mapper, transports ...transport.Transport) *Loop {
	l := NewLoop(mapper, transports...)
	if c.Interval > 0 {
		l.Interval = c.Interval
	}
	return l
}
