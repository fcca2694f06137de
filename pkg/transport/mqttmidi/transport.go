// Package mqttmidi receives MIDI messages over MQTT and publishes relay
// status snapshots.
package mqttmidi

import (
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/midimiti/midirelay/pkg/midi"
	"github.com/midimiti/midirelay/pkg/transport"
)

// Topic suffixes under the configured prefix.
const (
	MIDITopic   = "midi"
	StatusTopic = "relays"
)

// Transport subscribes to <prefix>/midi. Each payload is one MIDI message of
// 1..3 bytes, zero-padded like a BLE frame; longer payloads are truncated.
type Transport struct {
	client paho.Client
	topic  string
	queue  *transport.Queue
}

// Connect creates the MQTT client and subscribes. The subscription is
// re-established by the connect handler after every reconnect.
func Connect(conf *Config) (*Transport, error) {
	t := &Transport{
		topic: conf.Prefix + "/" + MIDITopic,
		queue: transport.NewQueue("mqtt", 0),
	}
	clientID := conf.ClientID
	if clientID == "" {
		clientID = "relayd-" + deviceID()
	}
	opts := paho.NewClientOptions().
		AddBroker(conf.BrokerURL).
		SetClientID(clientID).
		SetAutoReconnect(true)
	opts.SetOnConnectHandler(func(c paho.Client) {
		if token := c.Subscribe(t.topic, 0, t.onMessage); token.Wait() && token.Error() != nil {
			glog.Errorf("mqtt: subscribe %s: %v", t.topic, token.Error())
			return
		}
		glog.Infof("mqtt: subscribed to %s", t.topic)
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		glog.Warningf("mqtt: connection lost: %v", err)
	})
	t.client = paho.NewClient(opts)
	if token := t.client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", conf.BrokerURL, token.Error())
	}
	return t, nil
}

// Client exposes the underlying client for sharing with the status
// publisher.
func (t *Transport) Client() paho.Client { return t.client }

// Name implements transport.Transport.
func (t *Transport) Name() string { return "mqtt" }

// Ready implements transport.Transport.
func (t *Transport) Ready() bool { return t.client.IsConnectionOpen() }

// Task implements transport.Transport. The paho client services itself.
func (t *Transport) Task() {}

// TryRead implements transport.Transport.
func (t *Transport) TryRead() (*midi.Raw, error) {
	return t.queue.TryRead()
}

// Close disconnects from the broker.
func (t *Transport) Close() {
	t.client.Disconnect(250)
}

func (t *Transport) onMessage(_ paho.Client, msg paho.Message) {
	payload := msg.Payload()
	if len(payload) == 0 {
		return
	}
	t.queue.Push(midi.RawFrom(payload))
}
