package mqttmidi

import (
	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/midimiti/midirelay/pkg/relay"
)

// StatusPublisher publishes the relay state snapshot to <prefix>/relays as a
// retained message whenever it changes, so late subscribers see the current
// states immediately. Wire StateChanged as the controller's Listener.
type StatusPublisher struct {
	client paho.Client
	topic  string
}

// NewStatusPublisher creates a publisher on an existing client.
func NewStatusPublisher(client paho.Client, prefix string) *StatusPublisher {
	return &StatusPublisher{
		client: client,
		topic:  prefix + "/" + StatusTopic,
	}
}

// StateChanged implements relay.StateListener.
func (p *StatusPublisher) StateChanged(states [relay.NumRelays]bool) {
	if !p.client.IsConnectionOpen() {
		return
	}
	token := p.client.Publish(p.topic, 0, true, relay.FormatStates(states))
	go func() {
		if token.Wait() && token.Error() != nil {
			glog.Warningf("mqtt: publish status: %v", token.Error())
		}
	}()
}
