package mqttmidi

import (
	"flag"

	"github.com/denisbrodbeck/machineid"
)

// Config defines the configuration for the MQTT transport.
type Config struct {
	BrokerURL string
	Prefix    string
	ClientID  string
}

var defaultConfig = Config{}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.BrokerURL, "mqtt-broker", defaultConfig.BrokerURL,
		"MQTT broker URL (e.g. tcp://localhost:1883), empty to disable.")
	flag.StringVar(&defaultConfig.Prefix, "mqtt-prefix", defaultConfig.Prefix,
		"MQTT topic prefix, defaults to midirelay/<machine-id>.")
	flag.StringVar(&defaultConfig.ClientID, "mqtt-client-id", defaultConfig.ClientID,
		"MQTT client id, empty picks a per-tool default.")
}

// NewConfig creates the default configuration, filling in the machine-bound
// topic prefix so multiple devices can share one broker. ClientID stays
// empty unless configured; each tool picks its own default.
func NewConfig() *Config {
	conf := defaultConfig
	if conf.Prefix == "" {
		conf.Prefix = "midirelay/" + deviceID()
	}
	return &conf
}

// deviceID identifies this machine. Falls back to a fixed id when the
// machine id is unavailable (e.g. in containers).
func deviceID() string {
	id, err := machineid.ProtectedID("midirelay")
	if err != nil {
		return "default"
	}
	return id[:12]
}
