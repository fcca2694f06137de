package relay

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

var pinsFlag string

// SetupFlags registers relay flags.
func SetupFlags() {
	flag.StringVar(&pinsFlag, "relay-pins", "",
		"comma-separated output pins for relays 1..4 (default 16,17,18,19)")
}

// Config holds relay settings from flags.
type Config struct {
	Pins [NumRelays]int
}

// NewConfig builds the config from parsed flags.
func NewConfig() (*Config, error) {
	conf := &Config{Pins: DefaultPins}
	if pinsFlag == "" {
		return conf, nil
	}
	fields := strings.Split(pinsFlag, ",")
	if len(fields) != NumRelays {
		return nil, fmt.Errorf("relay-pins: want %d pins, got %d", NumRelays, len(fields))
	}
	for i, f := range fields {
		pin, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("relay-pins: %q: %w", f, err)
		}
		conf.Pins[i] = pin
	}
	return conf, nil
}
